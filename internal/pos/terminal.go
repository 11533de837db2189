package pos

import (
	"context"
	"sync"

	appErrors "github.com/aaravmahajanofficial/pos-terminal/internal/errors"
	"github.com/aaravmahajanofficial/pos-terminal/internal/models"
)

// RefocusField is the input the operator lands on after a completed sale.
const RefocusField = FieldBarcode

// Completed describes a sale the backend confirmed.
type Completed struct {
	Receipt      *models.SaleReceipt
	Sale         models.SaleRequest
	ReceiptEmail *string
}

// Terminal owns the cart, draft and field input of one session. Only one checkout may be outstanding
// at a time, and every mutation is refused while it is.
type Terminal struct {
	mu        sync.Mutex
	cart      *Cart
	draft     *SaleDraft
	fields    *FieldModel
	catalog   CatalogLookup
	submitter *Submitter
	inFlight  bool
}

func NewTerminal(catalog CatalogLookup, submitter *Submitter) *Terminal {

	draft := NewSaleDraft()

	return &Terminal{
		cart:      NewCart(),
		draft:     draft,
		fields:    NewFieldModel(draft),
		catalog:   catalog,
		submitter: submitter,
	}
}

func (t *Terminal) UpdateFields(req *models.UpdateFieldsRequest) (models.TerminalView, error) {

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.inFlight {
		return models.TerminalView{}, checkoutBusy()
	}

	if err := t.fields.Apply(req); err != nil {
		return models.TerminalView{}, err
	}

	Reconcile(t.draft, t.cart)

	return t.viewLocked(), nil
}

// AddToCart applies any overrides in req to the item fields, then adds the current item. The item
// fields are cleared only when the line was added.
func (t *Terminal) AddToCart(ctx context.Context, req *models.AddLineRequest) (models.CartLine, error) {

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.inFlight {
		return models.CartLine{}, checkoutBusy()
	}

	if req != nil {
		overrides := &models.UpdateFieldsRequest{
			Barcode:  req.Barcode,
			Quantity: req.Quantity,
			Discount: req.Discount,
		}

		if err := t.fields.Apply(overrides); err != nil {
			return models.CartLine{}, err
		}
	}

	quantity := 0
	if q := t.fields.Quantity(); q != nil {
		quantity = *q
	}

	line, err := t.cart.AddLine(ctx, t.fields.Barcode(), quantity, t.fields.Discount(), t.catalog)
	if err != nil {
		return models.CartLine{}, err
	}

	t.draft.touch()
	Reconcile(t.draft, t.cart)
	t.fields.ResetItem()

	return line, nil
}

// RemoveLine reports whether a line existed for sku.
func (t *Terminal) RemoveLine(sku string) (bool, error) {

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.inFlight {
		return false, checkoutBusy()
	}

	removed := t.cart.RemoveLine(sku)
	if removed {
		t.draft.touch()
		Reconcile(t.draft, t.cart)
	}

	return removed, nil
}

// ClearAll abandons the current sale.
func (t *Terminal) ClearAll() error {

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.inFlight {
		return checkoutBusy()
	}

	t.resetLocked()

	return nil
}

func (t *Terminal) SelectCustomer(customer *models.Customer) (models.TerminalView, error) {

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.inFlight {
		return models.TerminalView{}, checkoutBusy()
	}

	t.draft.SelectCustomer(customer.ID, customer.Name)

	if customer.Email != "" && t.draft.customerEmail == nil {
		email := customer.Email
		t.draft.SetCustomerEmail(&email)
	}

	return t.viewLocked(), nil
}

func (t *Terminal) View() models.TerminalView {

	t.mu.Lock()
	defer t.mu.Unlock()

	return t.viewLocked()
}

// Busy reports whether a checkout is outstanding.
func (t *Terminal) Busy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.inFlight
}

// Done submits the draft. The lock is released for the network round trip; state is cleared only once
// the backend confirms the sale.
func (t *Terminal) Done(ctx context.Context, identity Identity) (*Completed, error) {

	t.mu.Lock()

	if t.inFlight {
		t.mu.Unlock()
		return nil, checkoutBusy()
	}

	Reconcile(t.draft, t.cart)

	if err := CheckPreconditions(t.draft, t.cart); err != nil {
		t.mu.Unlock()
		return nil, err
	}

	sale := BuildSaleRequest(t.draft, t.cart, identity.CashierID)

	var email *string
	if e := t.draft.customerEmail; e != nil {
		value := *e
		email = &value
	}

	t.inFlight = true
	t.mu.Unlock()

	receipt, err := t.submitter.Submit(ctx, identity, sale)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.inFlight = false

	if err != nil {
		return nil, err
	}

	t.resetLocked()

	return &Completed{Receipt: receipt, Sale: sale, ReceiptEmail: email}, nil
}

func (t *Terminal) resetLocked() {
	t.cart.Clear()
	t.draft.Reset()
	t.fields.ResetItem()
	Reconcile(t.draft, t.cart)
}

func (t *Terminal) viewLocked() models.TerminalView {

	view := models.TerminalView{
		Fields:     t.fields.View(),
		Lines:      t.cart.Lines(),
		GrandTotal: t.draft.grandTotal,
		Change:     t.draft.change,
		InFlight:   t.inFlight,
	}

	if id := t.draft.customerID; id != nil {
		value := *id
		view.CustomerID = &value
	}

	return view
}

func checkoutBusy() error {
	return appErrors.CheckoutInProgressError("A checkout is already in progress")
}
