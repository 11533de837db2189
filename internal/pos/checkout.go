package pos

import (
	"context"
	"errors"
	"time"

	appErrors "github.com/aaravmahajanofficial/pos-terminal/internal/errors"
	"github.com/aaravmahajanofficial/pos-terminal/internal/models"
)

// SaleBackend records a header and its lines in one atomic call.
type SaleBackend interface {
	SubmitSale(ctx context.Context, header models.SaleHeader, lines []models.SaleLine) (*models.SaleReceipt, error)
}

type SessionChecker interface {
	IsSessionValid(ctx context.Context, sessionID, cashierID string) (bool, error)
}

// RejectedError is an explicit refusal from the backend. Reason is shown to the operator as-is.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return e.Reason
}

// Identity is the signed-in cashier operating the terminal.
type Identity struct {
	CashierID string
	SessionID string
}

type Submitter struct {
	backend        SaleBackend
	sessions       SessionChecker
	sessionTimeout time.Duration
	submitTimeout  time.Duration
}

func NewSubmitter(backend SaleBackend, sessions SessionChecker, sessionTimeout, submitTimeout time.Duration) *Submitter {
	return &Submitter{
		backend:        backend,
		sessions:       sessions,
		sessionTimeout: sessionTimeout,
		submitTimeout:  submitTimeout,
	}
}

// CheckPreconditions runs the local gates that must pass before any network call.
func CheckPreconditions(draft *SaleDraft, cart *Cart) error {

	if draft.payment == nil || !draft.payment.IsPositive() {
		return appErrors.PaymentRequiredError("Payment is required")
	}

	if draft.change.IsNegative() {
		return appErrors.InsufficientPaymentError("Payment is insufficient").
			WithDetail("short by " + draft.change.Neg().StringFixed(2))
	}

	if cart.IsEmpty() {
		return appErrors.EmptyCartError("Cart is empty")
	}

	return nil
}

// BuildSaleRequest snapshots the draft and cart. The result shares no memory with either.
func BuildSaleRequest(draft *SaleDraft, cart *Cart, cashierID string) models.SaleRequest {

	header := models.SaleHeader{
		IdempotencyKey: draft.idempotencyKey,
		GrandTotal:     draft.grandTotal,
		Change:         draft.change,
		CashierID:      cashierID,
	}

	if draft.customerName != nil {
		name := *draft.customerName
		header.CustomerName = &name
	}

	if draft.customerID != nil {
		id := *draft.customerID
		header.CustomerID = &id
	}

	if draft.payment != nil {
		header.AmountRendered = *draft.payment
	}

	if draft.voucher != nil {
		header.Voucher = *draft.voucher
	}

	if draft.backdate != nil {
		at := *draft.backdate
		header.TransactedAt = &at
	}

	cartLines := cart.Lines()
	lines := make([]models.SaleLine, 0, len(cartLines))

	for _, line := range cartLines {
		lines = append(lines, models.SaleLine{
			SKU:      line.SKU,
			ItemName: line.ItemName,
			UnitCost: line.UnitPrice,
			Total:    line.Total,
			Discount: line.Discount,
			Quantity: line.Quantity,
		})
	}

	return models.SaleRequest{Header: header, Lines: lines}
}

// Submit checks the session, then sends the sale once. Nothing is retried.
func (s *Submitter) Submit(ctx context.Context, identity Identity, req models.SaleRequest) (*models.SaleReceipt, error) {

	valid, err := Bounded(ctx, s.sessionTimeout, func(ctx context.Context) (bool, error) {
		return s.sessions.IsSessionValid(ctx, identity.SessionID, identity.CashierID)
	})
	if err != nil {
		return nil, appErrors.SessionInvalidError("Could not verify session, please sign in again").WithError(err)
	}

	if !valid {
		return nil, appErrors.SessionInvalidError("Session has expired, please sign in again")
	}

	receipt, err := Bounded(ctx, s.submitTimeout, func(ctx context.Context) (*models.SaleReceipt, error) {
		return s.backend.SubmitSale(ctx, req.Header, req.Lines)
	})
	if err != nil {
		return nil, submissionFailure(err)
	}

	if receipt == nil {
		return nil, appErrors.SubmissionRejectedError("Backend returned no receipt")
	}

	return receipt, nil
}

func submissionFailure(err error) error {

	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return appErrors.SubmissionRejectedError(rejected.Reason).WithError(err)
	}

	if errors.Is(err, ErrDeadline) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return appErrors.SubmissionTimeoutError("Sale submission timed out, verify the sale before retrying").WithError(err)
	}

	return appErrors.SubmissionRejectedError(err.Error()).WithError(err)
}
