package pos

import (
	"context"
	"errors"
	"strings"

	appErrors "github.com/aaravmahajanofficial/pos-terminal/internal/errors"
	"github.com/aaravmahajanofficial/pos-terminal/internal/models"
	"github.com/shopspring/decimal"
)

// ErrItemNotFound is returned by a CatalogLookup for an unknown sku.
var ErrItemNotFound = errors.New("item not found")

type CatalogLookup interface {
	Lookup(ctx context.Context, sku string) (*models.CatalogItem, error)
}

// Cart owns the lines of the active sale, kept in insertion order.
type Cart struct {
	lines []*models.CartLine
	index map[string]int
}

func NewCart() *Cart {
	return &Cart{index: make(map[string]int)}
}

// AddLine merges quantity, discount and (qty*unitPrice - discount) onto the line for sku, or appends a
// new line. Nothing changes when the input is rejected.
func (c *Cart) AddLine(ctx context.Context, sku string, quantity int, discount decimal.Decimal, lookup CatalogLookup) (models.CartLine, error) {

	sku = NormalizeSKU(sku)

	if quantity <= 0 {
		return models.CartLine{}, appErrors.InvalidQuantityError("Quantity must be a positive whole number")
	}

	if discount.IsNegative() {
		return models.CartLine{}, appErrors.InvalidDiscountError("Discount cannot be negative")
	}

	if sku == "" {
		return models.CartLine{}, appErrors.ItemNotFoundError(sku)
	}

	item, err := lookup.Lookup(ctx, sku)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return models.CartLine{}, appErrors.ItemNotFoundError(sku).WithError(err)
		}

		if _, ok := appErrors.IsAppError(err); ok {
			return models.CartLine{}, err
		}

		return models.CartLine{}, appErrors.InternalError("Catalog lookup failed").WithError(err)
	}

	if item == nil {
		return models.CartLine{}, appErrors.ItemNotFoundError(sku)
	}

	qty := decimal.NewFromInt(int64(quantity))

	if i, exists := c.index[sku]; exists {
		line := c.lines[i]
		line.Quantity += quantity
		line.Discount = line.Discount.Add(discount)
		line.Total = line.Total.Add(qty.Mul(line.UnitPrice).Sub(discount))

		return *line, nil
	}

	line := &models.CartLine{
		SKU:       sku,
		ItemName:  item.ItemName,
		UnitPrice: item.UnitPrice,
		Quantity:  quantity,
		Discount:  discount,
		Total:     qty.Mul(item.UnitPrice).Sub(discount),
	}

	c.index[sku] = len(c.lines)
	c.lines = append(c.lines, line)

	return *line, nil
}

// RemoveLine reports whether a line was removed; an absent sku is not an error.
func (c *Cart) RemoveLine(sku string) bool {

	sku = NormalizeSKU(sku)

	i, exists := c.index[sku]
	if !exists {
		return false
	}

	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	delete(c.index, sku)

	for j := i; j < len(c.lines); j++ {
		c.index[c.lines[j].SKU] = j
	}

	return true
}

func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[string]int)
}

func (c *Cart) TotalOf(sku string) (decimal.Decimal, bool) {
	line, ok := c.Line(sku)
	if !ok {
		return decimal.Zero, false
	}

	return line.Total, true
}

func (c *Cart) Line(sku string) (models.CartLine, bool) {
	i, exists := c.index[NormalizeSKU(sku)]
	if !exists {
		return models.CartLine{}, false
	}

	return *c.lines[i], true
}

// Lines returns copies in display order.
func (c *Cart) Lines() []models.CartLine {
	lines := make([]models.CartLine, 0, len(c.lines))

	for _, line := range c.lines {
		lines = append(lines, *line)
	}

	return lines
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func NormalizeSKU(sku string) string {
	return strings.TrimSpace(sku)
}
