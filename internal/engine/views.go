package engine

import (
	"sort"
	"time"

	"github.com/khatapp/khata/internal/model"
)

// DefaultLowStockThreshold is the stock level below which a product is
// flagged on the dashboard.
const DefaultLowStockThreshold = 5

// All views in this file are pure reads over a document snapshot. They
// can be recomputed at any time and never touch the store.

// LowStock returns the products whose stock is below the threshold.
// A threshold <= 0 falls back to DefaultLowStockThreshold.
func LowStock(doc model.Document, threshold int) []model.Product {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	out := []model.Product{}
	for _, p := range doc.Products {
		if p.Stock < threshold {
			out = append(out, p)
		}
	}
	return out
}

// AttendanceSummary is the per-employee present/absent day count for one
// month. Absent counts every remaining day of the month, matching the
// sparse records-default-absent semantics.
type AttendanceSummary struct {
	EmployeeID string `json:"employeeId"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Present    int    `json:"present"`
	Absent     int    `json:"absent"`
}

// SummarizeAttendance computes summaries for every employee-month entry,
// or only for the given year/month when both are non-zero.
func SummarizeAttendance(doc model.Document, year, month int) []AttendanceSummary {
	out := []AttendanceSummary{}
	for _, a := range doc.Attendance {
		if year != 0 && month != 0 && (a.Year != year || a.Month != month) {
			continue
		}
		present := 0
		for _, p := range a.Records {
			if p {
				present++
			}
		}
		out = append(out, AttendanceSummary{
			EmployeeID: a.EmployeeID,
			Year:       a.Year,
			Month:      a.Month,
			Present:    present,
			Absent:     daysInMonth(a.Year, a.Month) - present,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EmployeeID != out[j].EmployeeID {
			return out[i].EmployeeID < out[j].EmployeeID
		}
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

func daysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DashboardStats aggregates the headline numbers shown on the dashboard.
type DashboardStats struct {
	Products      int     `json:"products"`
	Contacts      int     `json:"contacts"`
	Sales         int     `json:"sales"`
	Purchases     int     `json:"purchases"`
	LowStock      int     `json:"lowStock"`
	SalesTotal    float64 `json:"salesTotal"`
	PurchaseTotal float64 `json:"purchaseTotal"`
}

// Dashboard computes the headline aggregates from a document snapshot.
func Dashboard(doc model.Document, lowStockThreshold int) DashboardStats {
	stats := DashboardStats{
		Products:  len(doc.Products),
		Contacts:  len(doc.Contacts),
		Sales:     len(doc.Transactions),
		Purchases: len(doc.Purchases),
		LowStock:  len(LowStock(doc, lowStockThreshold)),
	}
	for _, t := range doc.Transactions {
		stats.SalesTotal += t.Total
	}
	for _, p := range doc.Purchases {
		stats.PurchaseTotal += p.Total
	}
	return stats
}

// StockMovement is one entry in a product's movement history. Quantity is
// signed: positive for stock coming in, negative for stock going out.
type StockMovement struct {
	Date     string  `json:"date"`
	Kind     string  `json:"kind"` // sale | purchase | sales-return | purchase-return
	RefID    string  `json:"refId"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// ProductHistory lists every stock movement for one product across sales,
// purchases, and returns, ordered by date (stable within equal dates).
func ProductHistory(doc model.Document, productID string) []StockMovement {
	out := []StockMovement{}
	for _, t := range doc.Transactions {
		for _, item := range t.Items {
			if item.ProductID == productID {
				out = append(out, StockMovement{Date: t.Date, Kind: "sale", RefID: t.ID, Quantity: -item.Quantity, Price: item.Price})
			}
		}
	}
	for _, p := range doc.Purchases {
		for _, item := range p.Items {
			if item.ProductID == productID {
				out = append(out, StockMovement{Date: p.Date, Kind: "purchase", RefID: p.ID, Quantity: item.Quantity, Price: item.CostPrice})
			}
		}
	}
	for _, r := range doc.SalesReturns {
		for _, item := range r.Items {
			if item.ProductID == productID {
				out = append(out, StockMovement{Date: r.Date, Kind: "sales-return", RefID: r.ID, Quantity: item.Quantity, Price: item.Price})
			}
		}
	}
	for _, r := range doc.PurchaseReturns {
		for _, item := range r.Items {
			if item.ProductID == productID {
				out = append(out, StockMovement{Date: r.Date, Kind: "purchase-return", RefID: r.ID, Quantity: -item.Quantity, Price: item.Price})
			}
		}
	}
	// ISO-8601 dates sort lexically.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
