// Package testutil provides deterministic fixtures shared by the engine,
// store, and harness tests.
package testutil

import (
	"time"

	"github.com/khatapp/khata/internal/model"
)

// FixedTime is the wall clock used by deterministic tests.
var FixedTime = time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)

// Now returns FixedTime; inject via engine.WithNow for stable timestamps.
func Now() time.Time {
	return FixedTime
}

// ProductFixture builds a valid product with the given id and stock.
func ProductFixture(id string, stock int) model.Product {
	return model.Product{
		ID:            id,
		Brand:         "Acme",
		Name:          "Widget " + id,
		Art:           "A-" + id,
		Design:        "plain",
		Colour:        "red",
		UOM:           "pcs",
		HSNCode:       "9403",
		MRP:           15,
		SalesPrice:    10,
		PurchasePrice: 6,
		Stock:         stock,
	}
}

// ContactFixture builds a valid contact with the given id and type.
func ContactFixture(id string, kind model.ContactType) model.Contact {
	return model.Contact{
		ID:      id,
		Name:    "Contact " + id,
		Type:    kind,
		Email:   id + "@example.com",
		Phone:   "+91 98765 43210",
		Address: "12 MG Road",
		City:    "Pune",
		State:   "MH",
	}
}

// SeededDocument builds a document with one customer ("cust"), one
// supplier ("supp"), one employee ("emp"), and the given products.
func SeededDocument(products ...model.Product) model.Document {
	doc := model.NewDocument()
	doc.Products = append(doc.Products, products...)
	doc.Contacts = append(doc.Contacts,
		ContactFixture("cust", model.ContactCustomer),
		ContactFixture("supp", model.ContactSupplier),
		ContactFixture("emp", model.ContactEmployee),
	)
	return doc
}
