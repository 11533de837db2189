package service_test

import (
	"errors"
	"testing"

	appErrors "github.com/aaravmahajanofficial/pos-terminal/internal/errors"
	"github.com/aaravmahajanofficial/pos-terminal/internal/models"
	service "github.com/aaravmahajanofficial/pos-terminal/internal/services"
	"github.com/aaravmahajanofficial/pos-terminal/pkg/sendgrid/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func receiptSale() models.SaleRequest {
	return models.SaleRequest{
		Header: models.SaleHeader{
			CustomerName:   ptr("Ana <b>Reyes</b>"),
			AmountRendered: dec("100"),
			Voucher:        dec("0"),
			GrandTotal:     dec("70"),
			Change:         dec("30"),
		},
		Lines: []models.SaleLine{
			{SKU: "A", ItemName: "Apple", UnitCost: dec("10"), Quantity: 2, Total: dec("20"), Discount: dec("0")},
			{SKU: "B", ItemName: "Bread", UnitCost: dec("50"), Quantity: 1, Total: dec("50"), Discount: dec("0")},
		},
	}
}

func TestReceiptService_SendReceipt(t *testing.T) {
	receipt := &models.SaleReceipt{InvoiceNo: "INV-0042", PaymentID: "77"}

	t.Run("Success - Renders Both Bodies", func(t *testing.T) {
		// Arrange
		email := new(mocks.EmailService)
		svc := service.NewReceiptService(email, "Corner Store")

		var sent *models.EmailMessage
		email.On("Send", mock.Anything, mock.AnythingOfType("*models.EmailMessage")).
			Run(func(args mock.Arguments) { sent = args.Get(1).(*models.EmailMessage) }).
			Return(nil).Once()

		// Act
		err := svc.SendReceipt(t.Context(), "ana@example.com", receiptSale(), receipt)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, sent)
		assert.Equal(t, "ana@example.com", sent.To)
		assert.Equal(t, "Ana <b>Reyes</b>", sent.ToName)
		assert.Equal(t, "Your receipt INV-0042", sent.Subject)
		assert.Contains(t, sent.Content, "Apple")
		assert.Contains(t, sent.Content, "Change   30.00")
		assert.Contains(t, sent.HTMLContent, "<td>Bread</td>")
		assert.Contains(t, sent.HTMLContent, "Total 70.00")
	})

	t.Run("Failure - Provider Error", func(t *testing.T) {
		// Arrange
		email := new(mocks.EmailService)
		svc := service.NewReceiptService(email, "Corner Store")

		email.On("Send", mock.Anything, mock.Anything).Return(errors.New("failed to send email, status code: 401")).Once()

		// Act
		err := svc.SendReceipt(t.Context(), "ana@example.com", receiptSale(), receipt)

		// Assert
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeThirdPartyError))
	})
}
