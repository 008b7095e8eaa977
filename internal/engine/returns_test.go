package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khatapp/khata/internal/model"
	"github.com/khatapp/khata/internal/testutil"
)

func returnOf(originalID string, items ...model.ReturnItem) model.Return {
	total := 0.0
	for _, it := range items {
		total += float64(it.Quantity) * it.Price
	}
	return model.Return{
		ID:         "ret-1",
		Date:       "2026-08-02T10:00:00Z",
		OriginalID: originalID,
		ContactID:  "cust",
		Items:      items,
		Total:      total,
	}
}

// soldDocument seeds a document with one committed sale of 6 units of p1
// at price 5 (transaction id "sale-1"), leaving stock at 4.
func soldDocument(t *testing.T, eng *Engine) model.Document {
	t.Helper()
	doc := testutil.SeededDocument(testutil.ProductFixture("p1", 10))
	next, err := eng.ApplySale(doc, saleOf(model.SaleItem{ProductID: "p1", Quantity: 6, Price: 5}))
	require.NoError(t, err)
	return next
}

func TestApplySalesReturn_AddsStockBack(t *testing.T) {
	eng := New()
	doc := soldDocument(t, eng)

	next, err := eng.ApplySalesReturn(doc, returnOf("sale-1",
		model.ReturnItem{ProductID: "p1", Quantity: 2, Price: 5, Reason: "damaged"},
	))
	require.NoError(t, err)
	assert.Equal(t, 6, next.Products[0].Stock)
	require.Len(t, next.SalesReturns, 1)
}

func TestApplySalesReturn_CumulativeReconciliation(t *testing.T) {
	eng := New()
	doc := soldDocument(t, eng)

	// First return 4 of the 6 sold.
	doc, err := eng.ApplySalesReturn(doc, returnOf("sale-1",
		model.ReturnItem{ProductID: "p1", Quantity: 4, Price: 5, Reason: "damaged"},
	))
	require.NoError(t, err)

	// 3 more would exceed the original quantity (4 + 3 > 6).
	second := returnOf("sale-1",
		model.ReturnItem{ProductID: "p1", Quantity: 3, Price: 5, Reason: "damaged"},
	)
	second.ID = "ret-2"
	_, err = eng.ApplySalesReturn(doc, second)
	require.Error(t, err)
	assert.True(t, IsConflict(err))

	var te *TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 3, te.Requested)
	assert.Equal(t, 2, te.Available)

	// Exactly the remaining 2 is fine.
	second.Items[0].Quantity = 2
	second.Total = 10
	next, err := eng.ApplySalesReturn(doc, second)
	require.NoError(t, err)
	assert.Equal(t, 10, next.Products[0].Stock)
}

func TestApplySalesReturn_UnknownOriginal(t *testing.T) {
	eng := New()
	doc := soldDocument(t, eng)

	_, err := eng.ApplySalesReturn(doc, returnOf("ghost",
		model.ReturnItem{ProductID: "p1", Quantity: 1, Price: 5, Reason: "damaged"},
	))
	assert.True(t, IsNotFound(err))
}

func TestApplySalesReturn_ProductNotInOriginal(t *testing.T) {
	eng := New()
	doc := soldDocument(t, eng)
	doc.Products = append(doc.Products, testutil.ProductFixture("p2", 3))

	_, err := eng.ApplySalesReturn(doc, returnOf("sale-1",
		model.ReturnItem{ProductID: "p2", Quantity: 1, Price: 5, Reason: "damaged"},
	))
	assert.Equal(t, ErrCodeValidation, CodeOf(err))
}

func TestApplySalesReturn_MissingReason(t *testing.T) {
	eng := New()
	doc := soldDocument(t, eng)

	_, err := eng.ApplySalesReturn(doc, returnOf("sale-1",
		model.ReturnItem{ProductID: "p1", Quantity: 1, Price: 5},
	))
	assert.True(t, model.IsValidationError(err))
}

// purchasedDocument seeds a document with one committed purchase of 6
// units of p1 at cost 3 (purchase id "pur-1").
func purchasedDocument(t *testing.T, eng *Engine, startStock int) model.Document {
	t.Helper()
	doc := testutil.SeededDocument(testutil.ProductFixture("p1", startStock))
	next, err := eng.ApplyPurchase(doc, purchaseOf(
		model.PurchaseItem{ProductID: "p1", Quantity: 6, CostPrice: 3},
	))
	require.NoError(t, err)
	return next
}

func TestApplyPurchaseReturn_RemovesStock(t *testing.T) {
	eng := New()
	doc := purchasedDocument(t, eng, 0) // stock now 6

	ret := returnOf("pur-1",
		model.ReturnItem{ProductID: "p1", Quantity: 2, Price: 3, Reason: "wrong colour"},
	)
	ret.ContactID = "supp"
	next, err := eng.ApplyPurchaseReturn(doc, ret)
	require.NoError(t, err)
	assert.Equal(t, 4, next.Products[0].Stock)
	require.Len(t, next.PurchaseReturns, 1)
}

func TestApplyPurchaseReturn_InsufficientStock(t *testing.T) {
	eng := New()
	doc := purchasedDocument(t, eng, 0) // stock 6

	// Sell 5 of them so only 1 remains on hand.
	doc, err := eng.ApplySale(doc, saleOf(model.SaleItem{ProductID: "p1", Quantity: 5, Price: 5}))
	require.NoError(t, err)

	// Returning 2 to the supplier would need stock we no longer hold,
	// even though the original purchase had 6.
	ret := returnOf("pur-1",
		model.ReturnItem{ProductID: "p1", Quantity: 2, Price: 3, Reason: "wrong colour"},
	)
	ret.ContactID = "supp"
	_, err = eng.ApplyPurchaseReturn(doc, ret)
	assert.True(t, IsInsufficientStock(err))
	assert.Equal(t, 1, doc.Products[0].Stock)
}

func TestApplyPurchaseReturn_CumulativeReconciliation(t *testing.T) {
	eng := New()
	doc := purchasedDocument(t, eng, 10) // stock 16

	ret := returnOf("pur-1",
		model.ReturnItem{ProductID: "p1", Quantity: 5, Price: 3, Reason: "wrong colour"},
	)
	ret.ContactID = "supp"
	doc, err := eng.ApplyPurchaseReturn(doc, ret)
	require.NoError(t, err)

	// 5 + 2 > 6 purchased.
	ret.ID = "ret-2"
	ret.Items[0].Quantity = 2
	ret.Total = 6
	_, err = eng.ApplyPurchaseReturn(doc, ret)
	assert.True(t, IsConflict(err))
}
