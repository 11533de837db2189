package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/pos-terminal/internal/api/middleware"
	"github.com/aaravmahajanofficial/pos-terminal/internal/config"
	appErrors "github.com/aaravmahajanofficial/pos-terminal/internal/errors"
	"github.com/aaravmahajanofficial/pos-terminal/internal/metrics"
	"github.com/aaravmahajanofficial/pos-terminal/internal/models"
	"github.com/aaravmahajanofficial/pos-terminal/internal/pos"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type TerminalService interface {
	View(ctx context.Context, sessionID string) models.TerminalView
	UpdateFields(ctx context.Context, sessionID string, req *models.UpdateFieldsRequest) (models.TerminalView, error)
	AddLine(ctx context.Context, sessionID string, req *models.AddLineRequest) (models.TerminalView, error)
	RemoveLine(ctx context.Context, sessionID, sku string) (models.TerminalView, error)
	SelectCustomer(ctx context.Context, sessionID string, customerID uuid.UUID) (models.TerminalView, error)
	Clear(ctx context.Context, sessionID string) (models.TerminalView, error)
	Checkout(ctx context.Context, identity pos.Identity) (*models.CheckoutResponse, error)
	Release(sessionID string)
	EvictIdle(cutoff time.Time) int
	RunEvictor(ctx context.Context, idle time.Duration)
}

type terminalEntry struct {
	terminal *pos.Terminal
	lastSeen time.Time
}

type terminalService struct {
	mu        sync.Mutex
	terminals map[string]*terminalEntry
	catalog   pos.CatalogLookup
	customers CustomerService
	submitter *pos.Submitter
	receipts  ReceiptService
	cfg       config.Checkout
	tracer    trace.Tracer
}

// NewTerminalService keeps one terminal per signed-in session. receipts may be nil when email is not
// configured.
func NewTerminalService(catalog pos.CatalogLookup, customers CustomerService, backend pos.SaleBackend, sessions pos.SessionChecker, receipts ReceiptService, cfg config.Checkout) TerminalService {
	return &terminalService{
		terminals: make(map[string]*terminalEntry),
		catalog:   catalog,
		customers: customers,
		submitter: pos.NewSubmitter(backend, sessions, cfg.SessionCheckTimeout, cfg.SubmitTimeout),
		receipts:  receipts,
		cfg:       cfg,
		tracer:    otel.Tracer("github.com/aaravmahajanofficial/pos-terminal/internal/services"),
	}
}

func (s *terminalService) terminal(sessionID string) *pos.Terminal {

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.terminals[sessionID]
	if !ok {
		entry = &terminalEntry{terminal: pos.NewTerminal(s.catalog, s.submitter)}
		s.terminals[sessionID] = entry
	}

	entry.lastSeen = time.Now()

	return entry.terminal
}

// Release drops the session's terminal. An unfinished draft is discarded.
func (s *terminalService) Release(sessionID string) {
	s.mu.Lock()
	delete(s.terminals, sessionID)
	s.mu.Unlock()
}

// EvictIdle drops terminals not used since cutoff. A terminal with a checkout outstanding is kept.
func (s *terminalService) EvictIdle(cutoff time.Time) int {

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0

	for sessionID, entry := range s.terminals {
		if entry.lastSeen.Before(cutoff) && !entry.terminal.Busy() {
			delete(s.terminals, sessionID)
			evicted++
		}
	}

	return evicted
}

// RunEvictor sweeps terminals idle for longer than idle until ctx is done. Sessions live at most one
// token TTL, so idle should be at least that.
func (s *terminalService) RunEvictor(ctx context.Context, idle time.Duration) {

	ticker := time.NewTicker(max(idle/4, time.Minute))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.EvictIdle(time.Now().Add(-idle)); n > 0 {
				slog.Info("Evicted idle terminals", slog.Int("count", n))
			}
		}
	}
}

// View does not allocate a terminal for a session that has none.
func (s *terminalService) View(ctx context.Context, sessionID string) models.TerminalView {

	s.mu.Lock()
	entry, ok := s.terminals[sessionID]
	if ok {
		entry.lastSeen = time.Now()
	}
	s.mu.Unlock()

	if !ok {
		return pos.NewTerminal(s.catalog, s.submitter).View()
	}

	return entry.terminal.View()
}

func (s *terminalService) UpdateFields(ctx context.Context, sessionID string, req *models.UpdateFieldsRequest) (models.TerminalView, error) {
	return s.terminal(sessionID).UpdateFields(req)
}

func (s *terminalService) AddLine(ctx context.Context, sessionID string, req *models.AddLineRequest) (models.TerminalView, error) {

	logger := middleware.LoggerFromContext(ctx)
	t := s.terminal(sessionID)

	line, err := t.AddToCart(ctx, req)
	if err != nil {
		return models.TerminalView{}, err
	}

	metrics.CartLineAdded()

	if line.Total.IsNegative() {
		logger.Warn("Cart line total is negative",
			slog.String("sku", line.SKU),
			slog.String("total", line.Total.String()),
			slog.String("discount", line.Discount.String()),
		)
	}

	return t.View(), nil
}

func (s *terminalService) RemoveLine(ctx context.Context, sessionID, sku string) (models.TerminalView, error) {

	t := s.terminal(sessionID)

	removed, err := t.RemoveLine(sku)
	if err != nil {
		return models.TerminalView{}, err
	}

	if !removed {
		middleware.LoggerFromContext(ctx).Debug("Remove ignored, sku not in cart", slog.String("sku", sku))
	}

	return t.View(), nil
}

func (s *terminalService) SelectCustomer(ctx context.Context, sessionID string, customerID uuid.UUID) (models.TerminalView, error) {

	customer, err := s.customers.GetCustomer(ctx, customerID)
	if err != nil {
		return models.TerminalView{}, err
	}

	return s.terminal(sessionID).SelectCustomer(customer)
}

func (s *terminalService) Clear(ctx context.Context, sessionID string) (models.TerminalView, error) {

	t := s.terminal(sessionID)

	if err := t.ClearAll(); err != nil {
		return models.TerminalView{}, err
	}

	return t.View(), nil
}

// Checkout is detached from the caller's cancellation: once sent, a sale is only bounded by the
// configured ceilings.
func (s *terminalService) Checkout(ctx context.Context, identity pos.Identity) (*models.CheckoutResponse, error) {

	logger := middleware.LoggerFromContext(ctx)

	ctx, span := s.tracer.Start(ctx, "terminal.checkout",
		trace.WithAttributes(attribute.String("pos.cashier_id", identity.CashierID)),
	)
	defer span.End()

	start := time.Now()

	completed, err := s.terminal(identity.SessionID).Done(context.WithoutCancel(ctx), identity)

	metrics.ObserveCheckout(checkoutOutcome(err), time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Warn("Checkout failed", slog.String("outcome", checkoutOutcome(err)), slog.Any("error", err))

		if appErrors.HasCode(err, appErrors.ErrCodeSessionInvalid) {
			s.Release(identity.SessionID)
		}

		return nil, err
	}

	span.SetAttributes(
		attribute.String("pos.invoice_no", completed.Receipt.InvoiceNo),
		attribute.Int("pos.lines", len(completed.Sale.Lines)),
	)

	logger.Info("Sale recorded",
		slog.String("invoiceNo", completed.Receipt.InvoiceNo),
		slog.String("paymentId", completed.Receipt.PaymentID),
		slog.String("idempotencyKey", completed.Sale.Header.IdempotencyKey.String()),
		slog.String("grandTotal", completed.Sale.Header.GrandTotal.StringFixed(2)),
	)

	if completed.ReceiptEmail != nil && s.receipts != nil {
		go s.sendReceipt(context.WithoutCancel(ctx), logger, *completed.ReceiptEmail, completed)
	}

	return &models.CheckoutResponse{Receipt: completed.Receipt, Refocus: pos.RefocusField}, nil
}

func (s *terminalService) sendReceipt(ctx context.Context, logger *slog.Logger, to string, completed *pos.Completed) {

	ctx, cancel := context.WithTimeout(ctx, s.cfg.ReceiptTimeout)
	defer cancel()

	if err := s.receipts.SendReceipt(ctx, to, completed.Sale, completed.Receipt); err != nil {
		logger.Error("Receipt email failed", slog.String("invoiceNo", completed.Receipt.InvoiceNo), slog.Any("error", err))
		return
	}

	logger.Info("Receipt emailed", slog.String("invoiceNo", completed.Receipt.InvoiceNo))
}

func checkoutOutcome(err error) string {

	if err == nil {
		return metrics.OutcomeSuccess
	}

	appErr, ok := appErrors.IsAppError(err)
	if !ok {
		return metrics.OutcomeError
	}

	switch appErr.Code {
	case appErrors.ErrCodeSubmissionRejected:
		return metrics.OutcomeRejected
	case appErrors.ErrCodeSubmissionTimeout:
		return metrics.OutcomeTimeout
	case appErrors.ErrCodeSessionInvalid:
		return metrics.OutcomeSession
	case appErrors.ErrCodeCheckoutInProgress:
		return metrics.OutcomeInFlight
	case appErrors.ErrCodePaymentRequired, appErrors.ErrCodeInsufficientPayment, appErrors.ErrCodeEmptyCart:
		return metrics.OutcomePrecheck
	default:
		return metrics.OutcomeError
	}
}
