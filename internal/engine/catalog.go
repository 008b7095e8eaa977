package engine

import (
	"github.com/khatapp/khata/internal/model"
)

// UpsertProduct inserts a product or replaces the one with the same id.
func (e *Engine) UpsertProduct(doc model.Document, p model.Product) (model.Document, error) {
	model.NormalizeEntity(&p)
	if err := model.Validate("product", p); err != nil {
		return doc, err
	}

	next := doc.Clone()
	if idx := next.ProductIndex(p.ID); idx >= 0 {
		next.Products[idx] = p
	} else {
		next.Products = append(next.Products, p)
	}
	return next, nil
}

// DeleteProduct removes a product from the catalog. History referencing
// the product is kept as-is; only future sales and purchases are blocked
// by the engine's existence checks.
func (e *Engine) DeleteProduct(doc model.Document, id string) (model.Document, error) {
	idx := doc.ProductIndex(id)
	if idx < 0 {
		return doc, NewNotFoundError("product", id)
	}
	next := doc.Clone()
	next.Products = append(next.Products[:idx], next.Products[idx+1:]...)
	return next, nil
}

// UpsertContact inserts a contact or replaces the one with the same id.
func (e *Engine) UpsertContact(doc model.Document, c model.Contact) (model.Document, error) {
	model.NormalizeEntity(&c)
	if err := model.Validate("contact", c); err != nil {
		return doc, err
	}

	next := doc.Clone()
	if idx := next.ContactIndex(c.ID); idx >= 0 {
		next.Contacts[idx] = c
	} else {
		next.Contacts = append(next.Contacts, c)
	}
	return next, nil
}

// DeleteContact removes a contact. As with products, recorded history
// keeps its contactId references.
func (e *Engine) DeleteContact(doc model.Document, id string) (model.Document, error) {
	idx := doc.ContactIndex(id)
	if idx < 0 {
		return doc, NewNotFoundError("contact", id)
	}
	next := doc.Clone()
	next.Contacts = append(next.Contacts[:idx], next.Contacts[idx+1:]...)
	return next, nil
}
