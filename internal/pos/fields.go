package pos

import (
	"errors"
	"fmt"
	"html"
	"reflect"
	"strconv"
	"strings"
	"time"

	appErrors "github.com/aaravmahajanofficial/pos-terminal/internal/errors"
	"github.com/aaravmahajanofficial/pos-terminal/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
)

const (
	FieldBarcode       = "barcode"
	FieldQuantity      = "quantity"
	FieldDiscount      = "discount"
	FieldPayment       = "payment"
	FieldVoucher       = "voucher"
	FieldCustomerName  = "customer_name"
	FieldCustomerEmail = "customer_email"
	FieldBackdate      = "backdate"
	FieldGrandTotal    = "grand_total"
	FieldChange        = "change"
)

// fieldSchema is the shape every operator edit must satisfy before it is committed.
type fieldSchema struct {
	Barcode       string           `field:"barcode" validate:"max=64"`
	Quantity      *int             `field:"quantity" validate:"omitempty,gte=0"`
	Discount      decimal.Decimal  `field:"discount" validate:"gte=0"`
	Payment       *decimal.Decimal `field:"payment" validate:"omitempty,gte=0"`
	Voucher       *decimal.Decimal `field:"voucher" validate:"omitempty,gte=0"`
	CustomerName  *string          `field:"customer_name" validate:"omitempty,max=120"`
	CustomerEmail *string          `field:"customer_email" validate:"omitempty,email"`
}

var (
	fieldValidator = newFieldValidator()
	namePolicy     = bluemonday.StrictPolicy()
	amountCleaner  = strings.NewReplacer(",", "", " ", "", "₱", "", "$", "")
)

func newFieldValidator() *validator.Validate {
	v := validator.New()

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}

		return nil
	}, decimal.Decimal{})

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("field")
	})

	return v
}

// CoerceAmount parses operator-typed money. Anything non-numeric becomes zero.
func CoerceAmount(raw string) decimal.Decimal {
	amount, err := decimal.NewFromString(amountCleaner.Replace(strings.TrimSpace(raw)))
	if err != nil {
		return decimal.Zero
	}

	return amount.Round(2)
}

// FieldModel holds transient operator input. Item fields live here; header fields are validated here and
// written through to the draft.
type FieldModel struct {
	barcode  string
	quantity *int
	discount decimal.Decimal
	draft    *SaleDraft
}

func NewFieldModel(draft *SaleDraft) *FieldModel {
	return &FieldModel{draft: draft}
}

// Set applies a single raw value by field name.
func (f *FieldModel) Set(field, raw string) error {

	req := &models.UpdateFieldsRequest{}

	switch field {
	case FieldBarcode:
		req.Barcode = &raw
	case FieldQuantity:
		req.Quantity = &raw
	case FieldDiscount:
		req.Discount = &raw
	case FieldPayment:
		req.Payment = &raw
	case FieldVoucher:
		req.Voucher = &raw
	case FieldCustomerName:
		req.CustomerName = &raw
	case FieldCustomerEmail:
		req.CustomerEmail = &raw
	case FieldBackdate:
		req.Backdate = &raw
	case FieldGrandTotal:
		req.GrandTotal = &raw
	case FieldChange:
		req.Change = &raw
	default:
		return appErrors.AddValidationError(field, "unknown field")
	}

	return f.Apply(req)
}

// Apply validates every provided value and commits them together, or commits none.
func (f *FieldModel) Apply(req *models.UpdateFieldsRequest) error {

	if req.GrandTotal != nil {
		return appErrors.ReadOnlyFieldError(FieldGrandTotal)
	}

	if req.Change != nil {
		return appErrors.ReadOnlyFieldError(FieldChange)
	}

	staged := fieldSchema{
		Barcode:       f.barcode,
		Quantity:      f.quantity,
		Discount:      f.discount,
		Payment:       f.draft.payment,
		Voucher:       f.draft.voucher,
		CustomerName:  f.draft.customerName,
		CustomerEmail: f.draft.customerEmail,
	}
	backdate := f.draft.backdate

	if req.Barcode != nil {
		staged.Barcode = NormalizeSKU(*req.Barcode)
	}

	if req.Quantity != nil {
		quantity, err := parseQuantity(*req.Quantity)
		if err != nil {
			return err
		}
		staged.Quantity = quantity
	}

	if req.Discount != nil {
		staged.Discount = CoerceAmount(*req.Discount)
	}

	if req.Payment != nil {
		staged.Payment = optionalAmount(*req.Payment)
	}

	if req.Voucher != nil {
		staged.Voucher = optionalAmount(*req.Voucher)
	}

	if req.CustomerName != nil {
		staged.CustomerName = optionalText(html.UnescapeString(namePolicy.Sanitize(*req.CustomerName)))
	}

	if req.CustomerEmail != nil {
		staged.CustomerEmail = optionalText(*req.CustomerEmail)
	}

	if req.Backdate != nil {
		at, err := parseBackdate(*req.Backdate)
		if err != nil {
			return err
		}
		backdate = at
	}

	if err := fieldValidator.Struct(staged); err != nil {
		return validationFailure(err)
	}

	f.barcode = staged.Barcode
	f.quantity = staged.Quantity
	f.discount = staged.Discount

	if req.Payment != nil {
		f.draft.SetPayment(staged.Payment)
	}

	if req.Voucher != nil {
		f.draft.SetVoucher(staged.Voucher)
	}

	if req.CustomerName != nil {
		f.draft.SetCustomerName(staged.CustomerName)
	}

	if req.CustomerEmail != nil {
		f.draft.SetCustomerEmail(staged.CustomerEmail)
	}

	if req.Backdate != nil {
		f.draft.SetBackdate(backdate)
	}

	return nil
}

func (f *FieldModel) Barcode() string           { return f.barcode }
func (f *FieldModel) Quantity() *int            { return f.quantity }
func (f *FieldModel) Discount() decimal.Decimal { return f.discount }

// ResetItem clears the per-item inputs after a successful add.
func (f *FieldModel) ResetItem() {
	f.barcode = ""
	f.quantity = nil
	f.discount = decimal.Zero
}

func (f *FieldModel) View() models.FieldsView {

	view := models.FieldsView{
		Barcode:       f.barcode,
		Quantity:      f.quantity,
		Discount:      f.discount,
		Payment:       decimal.Zero,
		Voucher:       decimal.Zero,
		CustomerName:  f.draft.customerName,
		CustomerEmail: f.draft.customerEmail,
		Backdate:      f.draft.backdate,
	}

	if f.draft.payment != nil {
		view.Payment = *f.draft.payment
	}

	if f.draft.voucher != nil {
		view.Voucher = *f.draft.voucher
	}

	return view
}

func parseQuantity(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	quantity, err := strconv.Atoi(raw)
	if err != nil {
		return nil, appErrors.AddValidationError(FieldQuantity, "must be a whole number").WithError(err)
	}

	return &quantity, nil
}

func parseBackdate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, appErrors.AddValidationError(FieldBackdate, "must be an RFC 3339 timestamp").WithError(err)
	}

	return &at, nil
}

func optionalAmount(raw string) *decimal.Decimal {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	amount := CoerceAmount(raw)

	return &amount
}

func optionalText(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	return &raw
}

func validationFailure(err error) error {

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return appErrors.InternalError("Unexpected validation error").WithError(err)
	}

	details := make([]string, 0, len(validationErrs))

	for _, fe := range validationErrs {
		switch fe.Tag() {
		case "gte":
			details = append(details, fmt.Sprintf("%s must not be negative", fe.Field()))
		case "max":
			details = append(details, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		case "email":
			details = append(details, fmt.Sprintf("%s must be a valid email address", fe.Field()))
		default:
			details = append(details, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}

	return appErrors.ValidationError("Invalid field input").WithDetail(strings.Join(details, "; ")).WithError(err)
}
