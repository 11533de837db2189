package pos

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleDraft is the single not-yet-committed sale of a terminal. grandTotal and change are derived and
// only written by Reconcile.
type SaleDraft struct {
	customerName   *string
	customerID     *uuid.UUID
	customerEmail  *string
	payment        *decimal.Decimal
	voucher        *decimal.Decimal
	backdate       *time.Time
	grandTotal     decimal.Decimal
	change         decimal.Decimal
	idempotencyKey uuid.UUID
}

func NewSaleDraft() *SaleDraft {
	return &SaleDraft{idempotencyKey: uuid.New()}
}

// Reset returns the draft to a walk-in sale with nothing tendered.
func (d *SaleDraft) Reset() {
	*d = SaleDraft{idempotencyKey: uuid.New()}
}

func (d *SaleDraft) CustomerName() *string       { return d.customerName }
func (d *SaleDraft) CustomerID() *uuid.UUID      { return d.customerID }
func (d *SaleDraft) CustomerEmail() *string      { return d.customerEmail }
func (d *SaleDraft) Payment() *decimal.Decimal   { return d.payment }
func (d *SaleDraft) Voucher() *decimal.Decimal   { return d.voucher }
func (d *SaleDraft) Backdate() *time.Time        { return d.backdate }
func (d *SaleDraft) GrandTotal() decimal.Decimal { return d.grandTotal }
func (d *SaleDraft) Change() decimal.Decimal     { return d.change }
func (d *SaleDraft) IdempotencyKey() uuid.UUID   { return d.idempotencyKey }

// SetCustomerName sets a free-typed name; a nil or empty name means walk-in. The customer id is left alone.
func (d *SaleDraft) SetCustomerName(name *string) {
	if name != nil && *name == "" {
		name = nil
	}

	if equalPtr(d.customerName, name, func(a, b string) bool { return a == b }) {
		return
	}

	d.customerName = name
	d.touch()
}

// SelectCustomer records an explicit customer lookup.
func (d *SaleDraft) SelectCustomer(id uuid.UUID, name string) {
	if d.customerID != nil && *d.customerID == id && d.customerName != nil && *d.customerName == name {
		return
	}

	d.customerID = &id
	d.customerName = &name
	d.touch()
}

func (d *SaleDraft) SetCustomerEmail(email *string) {
	if email != nil && *email == "" {
		email = nil
	}

	if equalPtr(d.customerEmail, email, func(a, b string) bool { return a == b }) {
		return
	}

	d.customerEmail = email
	d.touch()
}

func (d *SaleDraft) SetPayment(amount *decimal.Decimal) {
	if equalPtr(d.payment, amount, decimal.Decimal.Equal) {
		return
	}

	d.payment = amount
	d.touch()
}

func (d *SaleDraft) SetVoucher(amount *decimal.Decimal) {
	if equalPtr(d.voucher, amount, decimal.Decimal.Equal) {
		return
	}

	d.voucher = amount
	d.touch()
}

func (d *SaleDraft) SetBackdate(at *time.Time) {
	if equalPtr(d.backdate, at, time.Time.Equal) {
		return
	}

	d.backdate = at
	d.touch()
}

func (d *SaleDraft) setDerived(grandTotal, change decimal.Decimal) {
	d.grandTotal = grandTotal
	d.change = change
}

// touch rotates the idempotency key. Setters skip it when the value is unchanged, so a retry of an
// unchanged draft keeps its key.
func (d *SaleDraft) touch() {
	d.idempotencyKey = uuid.New()
}

func equalPtr[T any](a, b *T, eq func(T, T) bool) bool {
	if a == nil || b == nil {
		return a == b
	}

	return eq(*a, *b)
}
