package engine

import (
	"math"

	"github.com/khatapp/khata/internal/model"
)

// ApplyPurchase validates and commits a supplier purchase.
//
// Purchases only add stock, so there is no stock-floor check. For each
// line item, in item order:
//   - product stock is incremented by the quantity
//   - purchasePrice is unconditionally set to the item's costPrice
//     (last write wins when a product appears on multiple lines)
//   - mrp and salesPrice are overwritten only when priceUpdates carries them
//
// The purchase is then appended to the history unmodified.
func (e *Engine) ApplyPurchase(doc model.Document, p model.Purchase) (model.Document, error) {
	if err := model.Validate("purchase", p); err != nil {
		return doc, err
	}
	if doc.ContactIndex(p.ContactID) < 0 {
		return doc, NewNotFoundError("contact", p.ContactID)
	}
	var sum float64
	for _, item := range p.Items {
		if doc.ProductIndex(item.ProductID) < 0 {
			return doc, NewNotFoundError("product", item.ProductID)
		}
		sum += float64(item.Quantity) * item.CostPrice
	}
	if math.Abs(sum-p.Total) > totalTolerance {
		return doc, NewValidationError("total %.2f does not match line sum %.2f", p.Total, sum)
	}

	next := doc.Clone()
	for _, item := range p.Items {
		idx := next.ProductIndex(item.ProductID)
		prod := &next.Products[idx]
		prod.Stock += item.Quantity
		prod.PurchasePrice = item.CostPrice
		if item.PriceUpdates != nil {
			if item.PriceUpdates.MRP != nil {
				prod.MRP = *item.PriceUpdates.MRP
			}
			if item.PriceUpdates.SalesPrice != nil {
				prod.SalesPrice = *item.PriceUpdates.SalesPrice
			}
		}
	}
	next.Purchases = append(next.Purchases, p)
	return next, nil
}
