package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khatapp/khata/internal/model"
	"github.com/khatapp/khata/internal/testutil"
)

func purchaseOf(items ...model.PurchaseItem) model.Purchase {
	total := 0.0
	for _, it := range items {
		total += float64(it.Quantity) * it.CostPrice
	}
	return model.Purchase{
		ID:        "pur-1",
		Date:      "2026-08-01T10:00:00Z",
		ContactID: "supp",
		Items:     items,
		Total:     total,
	}
}

func TestApplyPurchase_AddsStockAndSetsPurchasePrice(t *testing.T) {
	eng := New()
	doc := testutil.SeededDocument(testutil.ProductFixture("p1", 0))

	next, err := eng.ApplyPurchase(doc, purchaseOf(
		model.PurchaseItem{ProductID: "p1", Quantity: 5, CostPrice: 3},
	))
	require.NoError(t, err)

	prod := next.Products[0]
	assert.Equal(t, 5, prod.Stock)
	assert.Equal(t, 3.0, prod.PurchasePrice)
	// Catalog prices are untouched without priceUpdates.
	assert.Equal(t, 15.0, prod.MRP)
	assert.Equal(t, 10.0, prod.SalesPrice)
	require.Len(t, next.Purchases, 1)
}

func TestApplyPurchase_PriceUpdates(t *testing.T) {
	eng := New()
	doc := testutil.SeededDocument(testutil.ProductFixture("p1", 0))

	mrp := 20.0
	next, err := eng.ApplyPurchase(doc, purchaseOf(
		model.PurchaseItem{
			ProductID:    "p1",
			Quantity:     5,
			CostPrice:    3,
			PriceUpdates: &model.PriceUpdates{MRP: &mrp},
		},
	))
	require.NoError(t, err)

	prod := next.Products[0]
	assert.Equal(t, 20.0, prod.MRP)
	assert.Equal(t, 10.0, prod.SalesPrice) // not in priceUpdates, unchanged
	assert.Equal(t, 3.0, prod.PurchasePrice)
	assert.Equal(t, 5, prod.Stock)
}

func TestApplyPurchase_LastCostPriceWins(t *testing.T) {
	eng := New()
	doc := testutil.SeededDocument(testutil.ProductFixture("p1", 0))

	next, err := eng.ApplyPurchase(doc, purchaseOf(
		model.PurchaseItem{ProductID: "p1", Quantity: 2, CostPrice: 3},
		model.PurchaseItem{ProductID: "p1", Quantity: 4, CostPrice: 4},
	))
	require.NoError(t, err)

	assert.Equal(t, 6, next.Products[0].Stock)
	assert.Equal(t, 4.0, next.Products[0].PurchasePrice)
}

func TestApplyPurchase_UnknownProduct(t *testing.T) {
	eng := New()
	doc := testutil.SeededDocument()

	_, err := eng.ApplyPurchase(doc, purchaseOf(
		model.PurchaseItem{ProductID: "ghost", Quantity: 1, CostPrice: 2},
	))
	assert.True(t, IsNotFound(err))
}

func TestApplyPurchase_UnknownContact(t *testing.T) {
	eng := New()
	doc := testutil.SeededDocument(testutil.ProductFixture("p1", 0))

	p := purchaseOf(model.PurchaseItem{ProductID: "p1", Quantity: 1, CostPrice: 2})
	p.ContactID = "ghost"
	_, err := eng.ApplyPurchase(doc, p)
	assert.True(t, IsNotFound(err))
}

func TestApplyPurchase_TotalMismatch(t *testing.T) {
	eng := New()
	doc := testutil.SeededDocument(testutil.ProductFixture("p1", 0))

	p := purchaseOf(model.PurchaseItem{ProductID: "p1", Quantity: 2, CostPrice: 3})
	p.Total = 7 // line sum is 6
	_, err := eng.ApplyPurchase(doc, p)
	assert.Equal(t, ErrCodeValidation, CodeOf(err))
	assert.Equal(t, 0, doc.Products[0].Stock)
}

func TestApplyPurchase_InvalidPayload(t *testing.T) {
	eng := New()
	doc := testutil.SeededDocument(testutil.ProductFixture("p1", 0))

	p := purchaseOf(model.PurchaseItem{ProductID: "p1", Quantity: 0, CostPrice: 3})
	_, err := eng.ApplyPurchase(doc, p)
	assert.True(t, model.IsValidationError(err))
}
