package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/pos-terminal/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) Send(ctx context.Context, msg *models.EmailMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *EmailService) GetSendGridClient() *sendgrid.Client {
	client, _ := m.Called().Get(0).(*sendgrid.Client)

	return client
}
