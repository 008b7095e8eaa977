package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khatapp/khata/internal/model"
	"github.com/khatapp/khata/internal/testutil"
)

func TestLowStock(t *testing.T) {
	doc := testutil.SeededDocument(
		testutil.ProductFixture("p1", 0),
		testutil.ProductFixture("p2", 4),
		testutil.ProductFixture("p3", 5),
		testutil.ProductFixture("p4", 100),
	)

	low := LowStock(doc, 0) // falls back to the default threshold of 5
	require.Len(t, low, 2)
	assert.Equal(t, "p1", low[0].ID)
	assert.Equal(t, "p2", low[1].ID)

	assert.Len(t, LowStock(doc, 6), 3)
	assert.Len(t, LowStock(doc, 1), 1) // only p1 at zero
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, daysInMonth(2026, 8))
	assert.Equal(t, 28, daysInMonth(2026, 2))
	assert.Equal(t, 29, daysInMonth(2028, 2)) // leap year
	assert.Equal(t, 30, daysInMonth(2026, 9))
	assert.Equal(t, 31, daysInMonth(2026, 12))
}

func TestSummarizeAttendance_AbsentIsRemainderOfMonth(t *testing.T) {
	doc := testutil.SeededDocument()
	doc.Attendance = []model.MonthlyAttendance{
		{EmployeeID: "emp", Year: 2026, Month: 9, Records: map[int]bool{1: true, 2: true, 3: false}},
	}

	got := SummarizeAttendance(doc, 2026, 9)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Present) // explicit false does not count
	assert.Equal(t, 28, got[0].Absent) // 30 - 2
}

func TestSummarizeAttendance_FilterAndSort(t *testing.T) {
	doc := testutil.SeededDocument()
	doc.Attendance = []model.MonthlyAttendance{
		{EmployeeID: "zed", Year: 2026, Month: 8, Records: map[int]bool{1: true}},
		{EmployeeID: "amy", Year: 2026, Month: 8, Records: map[int]bool{1: true}},
		{EmployeeID: "amy", Year: 2026, Month: 7, Records: map[int]bool{1: true}},
	}

	all := SummarizeAttendance(doc, 0, 0)
	require.Len(t, all, 3)
	assert.Equal(t, "amy", all[0].EmployeeID)
	assert.Equal(t, 7, all[0].Month)
	assert.Equal(t, "zed", all[2].EmployeeID)

	filtered := SummarizeAttendance(doc, 2026, 7)
	require.Len(t, filtered, 1)
	assert.Equal(t, "amy", filtered[0].EmployeeID)
}

func TestDashboard(t *testing.T) {
	eng := New()
	doc := testutil.SeededDocument(
		testutil.ProductFixture("p1", 10),
		testutil.ProductFixture("p2", 2),
	)

	doc, err := eng.ApplySale(doc, saleOf(model.SaleItem{ProductID: "p1", Quantity: 2, Price: 10}))
	require.NoError(t, err)
	doc, err = eng.ApplyPurchase(doc, purchaseOf(model.PurchaseItem{ProductID: "p2", Quantity: 1, CostPrice: 3}))
	require.NoError(t, err)

	stats := Dashboard(doc, 0)
	assert.Equal(t, 2, stats.Products)
	assert.Equal(t, 3, stats.Contacts)
	assert.Equal(t, 1, stats.Sales)
	assert.Equal(t, 1, stats.Purchases)
	assert.Equal(t, 1, stats.LowStock) // p2 at 3 after the purchase
	assert.Equal(t, 20.0, stats.SalesTotal)
	assert.Equal(t, 3.0, stats.PurchaseTotal)
}

func TestProductHistory_SignedAndOrdered(t *testing.T) {
	eng := New()
	doc := testutil.SeededDocument(testutil.ProductFixture("p1", 10))

	sale := saleOf(model.SaleItem{ProductID: "p1", Quantity: 3, Price: 10})
	sale.Date = "2026-08-02T10:00:00Z"
	doc, err := eng.ApplySale(doc, sale)
	require.NoError(t, err)

	pur := purchaseOf(model.PurchaseItem{ProductID: "p1", Quantity: 5, CostPrice: 4})
	pur.Date = "2026-08-01T10:00:00Z"
	doc, err = eng.ApplyPurchase(doc, pur)
	require.NoError(t, err)

	ret := returnOf("sale-1", model.ReturnItem{ProductID: "p1", Quantity: 1, Price: 10, Reason: "damaged"})
	ret.Date = "2026-08-03T10:00:00Z"
	doc, err = eng.ApplySalesReturn(doc, ret)
	require.NoError(t, err)

	history := ProductHistory(doc, "p1")
	require.Len(t, history, 3)

	assert.Equal(t, "purchase", history[0].Kind)
	assert.Equal(t, 5, history[0].Quantity)
	assert.Equal(t, "sale", history[1].Kind)
	assert.Equal(t, -3, history[1].Quantity)
	assert.Equal(t, "sales-return", history[2].Kind)
	assert.Equal(t, 1, history[2].Quantity)

	assert.Empty(t, ProductHistory(doc, "other"))
}
