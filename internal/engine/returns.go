package engine

import (
	"math"

	"github.com/khatapp/khata/internal/model"
)

// ApplySalesReturn validates and commits a customer return against an
// original sale. Stock moves in the inverse direction of the sale: each
// returned quantity is added back to the product's stock.
//
// The return is reconciled against the original transaction: for every
// line item, the cumulative returned quantity across all returns for the
// same original (including this one) must not exceed the quantity the
// original recorded for that product.
func (e *Engine) ApplySalesReturn(doc model.Document, ret model.Return) (model.Document, error) {
	original, ok := doc.TransactionByID(ret.OriginalID)
	if !ok {
		return doc, e.rejectReturn(doc, ret, NewNotFoundError("transaction", ret.OriginalID))
	}
	originalQty := make(map[string]int, len(original.Items))
	for _, item := range original.Items {
		originalQty[item.ProductID] += item.Quantity
	}
	if err := e.checkReturn(doc, ret, originalQty, doc.SalesReturns); err != nil {
		return doc, err
	}

	next := doc.Clone()
	for _, item := range ret.Items {
		idx := next.ProductIndex(item.ProductID)
		next.Products[idx].Stock += item.Quantity
	}
	next.SalesReturns = append(next.SalesReturns, ret)
	return next, nil
}

// ApplyPurchaseReturn validates and commits a return to a supplier against
// an original purchase. Stock is decremented; the operation fails with
// InsufficientStock if any line would drive stock negative.
//
// Reconciliation against the original purchase mirrors ApplySalesReturn.
func (e *Engine) ApplyPurchaseReturn(doc model.Document, ret model.Return) (model.Document, error) {
	original, ok := doc.PurchaseByID(ret.OriginalID)
	if !ok {
		return doc, e.rejectReturn(doc, ret, NewNotFoundError("purchase", ret.OriginalID))
	}
	originalQty := make(map[string]int, len(original.Items))
	for _, item := range original.Items {
		originalQty[item.ProductID] += item.Quantity
	}
	if err := e.checkReturn(doc, ret, originalQty, doc.PurchaseReturns); err != nil {
		return doc, err
	}
	requested := make(map[string]int, len(ret.Items))
	for _, item := range ret.Items {
		idx := doc.ProductIndex(item.ProductID)
		requested[item.ProductID] += item.Quantity
		if requested[item.ProductID] > doc.Products[idx].Stock {
			return doc, NewInsufficientStockError(item.ProductID, requested[item.ProductID], doc.Products[idx].Stock)
		}
	}

	next := doc.Clone()
	for _, item := range ret.Items {
		idx := next.ProductIndex(item.ProductID)
		next.Products[idx].Stock -= item.Quantity
	}
	next.PurchaseReturns = append(next.PurchaseReturns, ret)
	return next, nil
}

// rejectReturn runs struct validation first so malformed payloads surface
// as validation errors rather than reference errors.
func (e *Engine) rejectReturn(doc model.Document, ret model.Return, refErr error) error {
	if err := model.Validate("return", ret); err != nil {
		return err
	}
	return refErr
}

// checkReturn verifies a return payload against the original quantities
// and the prior returns recorded for the same original.
func (e *Engine) checkReturn(doc model.Document, ret model.Return, originalQty map[string]int, history []model.Return) error {
	if err := model.Validate("return", ret); err != nil {
		return err
	}

	// Quantities already returned against this original.
	returned := make(map[string]int)
	for _, prior := range history {
		if prior.OriginalID != ret.OriginalID {
			continue
		}
		for _, item := range prior.Items {
			returned[item.ProductID] += item.Quantity
		}
	}

	var sum float64
	for _, item := range ret.Items {
		if doc.ProductIndex(item.ProductID) < 0 {
			return NewNotFoundError("product", item.ProductID)
		}
		orig, ok := originalQty[item.ProductID]
		if !ok {
			return NewValidationError("product %s is not part of original %s", item.ProductID, ret.OriginalID)
		}
		remaining := orig - returned[item.ProductID]
		if item.Quantity > remaining {
			return NewConflictError(item.ProductID, item.Quantity, remaining)
		}
		sum += float64(item.Quantity) * item.Price
	}
	if math.Abs(sum-ret.Total) > totalTolerance {
		return NewValidationError("total %.2f does not match line sum %.2f", ret.Total, sum)
	}
	return nil
}
