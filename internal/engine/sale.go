package engine

import (
	"math"

	"github.com/khatapp/khata/internal/model"
)

// totalTolerance absorbs float rounding when comparing a recorded total
// against the recomputed line sum.
const totalTolerance = 1e-6

// ApplySale validates and commits a sale.
//
// Requirements checked before any mutation:
//   - the transaction passes struct validation
//   - the customer contact exists
//   - every line item's product exists
//   - every line item's quantity is covered by current stock
//   - the recorded total equals the sum of quantity x price
//
// On success the transaction is appended to the sales history unmodified
// and each line item's product stock is decremented. The "append + decrement"
// pair lands in one returned document, so persistence is all-or-nothing.
func (e *Engine) ApplySale(doc model.Document, tx model.Transaction) (model.Document, error) {
	if err := model.Validate("transaction", tx); err != nil {
		return doc, err
	}
	if doc.ContactIndex(tx.ContactID) < 0 {
		return doc, NewNotFoundError("contact", tx.ContactID)
	}
	var sum float64
	requested := make(map[string]int, len(tx.Items))
	for _, item := range tx.Items {
		idx := doc.ProductIndex(item.ProductID)
		if idx < 0 {
			return doc, NewNotFoundError("product", item.ProductID)
		}
		// Cumulative across lines, so the same product on two lines
		// cannot overdraw stock.
		requested[item.ProductID] += item.Quantity
		if requested[item.ProductID] > doc.Products[idx].Stock {
			return doc, NewInsufficientStockError(item.ProductID, requested[item.ProductID], doc.Products[idx].Stock)
		}
		sum += float64(item.Quantity) * item.Price
	}
	if math.Abs(sum-tx.Total) > totalTolerance {
		return doc, NewValidationError("total %.2f does not match line sum %.2f", tx.Total, sum)
	}

	next := doc.Clone()
	for _, item := range tx.Items {
		idx := next.ProductIndex(item.ProductID)
		next.Products[idx].Stock -= item.Quantity
	}
	next.Transactions = append(next.Transactions, tx)
	return next, nil
}
