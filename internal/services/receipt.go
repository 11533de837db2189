package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	appErrors "github.com/aaravmahajanofficial/pos-terminal/internal/errors"
	"github.com/aaravmahajanofficial/pos-terminal/internal/models"
	"github.com/aaravmahajanofficial/pos-terminal/pkg/sendgrid"
)

type ReceiptService interface {
	SendReceipt(ctx context.Context, to string, sale models.SaleRequest, receipt *models.SaleReceipt) error
}

type receiptService struct {
	email sendgrid.EmailService
	store string
}

func NewReceiptService(email sendgrid.EmailService, storeName string) ReceiptService {
	return &receiptService{email: email, store: storeName}
}

var receiptHTML = template.Must(template.New("receipt").Parse(`<h2>{{.Store}}</h2>
<p>Invoice {{.Receipt.InvoiceNo}}</p>
<table>
{{range .Sale.Lines}}<tr><td>{{.ItemName}}</td><td>{{.Quantity}} x {{.UnitCost.StringFixed 2}}</td><td>{{.Total.StringFixed 2}}</td></tr>
{{end}}</table>
<p>Total {{.Sale.Header.GrandTotal.StringFixed 2}}<br>Tendered {{.Sale.Header.AmountRendered.StringFixed 2}}<br>Voucher {{.Sale.Header.Voucher.StringFixed 2}}<br>Change {{.Sale.Header.Change.StringFixed 2}}</p>`))

func (s *receiptService) SendReceipt(ctx context.Context, to string, sale models.SaleRequest, receipt *models.SaleReceipt) error {

	var text strings.Builder

	fmt.Fprintf(&text, "%s\nInvoice %s\n\n", s.store, receipt.InvoiceNo)

	for _, line := range sale.Lines {
		fmt.Fprintf(&text, "%-24s %3d x %10s %10s\n", line.ItemName, line.Quantity, line.UnitCost.StringFixed(2), line.Total.StringFixed(2))
	}

	fmt.Fprintf(&text, "\nTotal    %s\nTendered %s\nVoucher  %s\nChange   %s\n",
		sale.Header.GrandTotal.StringFixed(2),
		sale.Header.AmountRendered.StringFixed(2),
		sale.Header.Voucher.StringFixed(2),
		sale.Header.Change.StringFixed(2),
	)

	var html bytes.Buffer

	err := receiptHTML.Execute(&html, struct {
		Store   string
		Sale    models.SaleRequest
		Receipt *models.SaleReceipt
	}{s.store, sale, receipt})
	if err != nil {
		return appErrors.InternalError("Failed to render receipt").WithError(err)
	}

	msg := &models.EmailMessage{
		To:          to,
		Subject:     fmt.Sprintf("Your receipt %s", receipt.InvoiceNo),
		Content:     text.String(),
		HTMLContent: html.String(),
	}

	if sale.Header.CustomerName != nil {
		msg.ToName = *sale.Header.CustomerName
	}

	if err := s.email.Send(ctx, msg); err != nil {
		return appErrors.ThirdPartyError("Failed to send receipt").WithError(err)
	}

	return nil
}
