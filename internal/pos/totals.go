package pos

import (
	"github.com/aaravmahajanofficial/pos-terminal/internal/models"
	"github.com/shopspring/decimal"
)

func GrandTotal(lines []models.CartLine) decimal.Decimal {

	total := decimal.Zero

	for _, line := range lines {
		total = total.Add(line.Total)
	}

	return total
}

// Change treats an absent payment or voucher as zero. The result is negative when under-tendered.
func Change(payment, voucher *decimal.Decimal, grandTotal decimal.Decimal) decimal.Decimal {

	tendered := decimal.Zero

	if payment != nil {
		tendered = tendered.Add(*payment)
	}

	if voucher != nil {
		tendered = tendered.Add(*voucher)
	}

	return tendered.Sub(grandTotal)
}

// Reconcile recomputes the draft's derived fields from the cart. It is safe to call any number of times.
func Reconcile(draft *SaleDraft, cart *Cart) {
	grandTotal := GrandTotal(cart.Lines())
	draft.setDerived(grandTotal, Change(draft.payment, draft.voucher, grandTotal))
}
