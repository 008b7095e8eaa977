package engine

import (
	"github.com/khatapp/khata/internal/model"
)

// QuotationPatch carries the fields of a partial quotation update.
// Nil fields are left untouched by PatchQuotation.
type QuotationPatch struct {
	Date       *string                `json:"date,omitempty"`
	ContactID  *string                `json:"contactId,omitempty"`
	ValidUntil *string                `json:"validUntil,omitempty"`
	Status     *model.QuotationStatus `json:"status,omitempty"`
	Items      []model.SaleItem       `json:"items,omitempty"`
	Total      *float64               `json:"total,omitempty"`
	Notes      *string                `json:"notes,omitempty"`
}

// UpsertQuotation inserts a quotation or replaces the one with the same id.
// Quotations never touch stock; they are the only entity with in-place
// field updates.
func (e *Engine) UpsertQuotation(doc model.Document, q model.Quotation) (model.Document, error) {
	model.NormalizeEntity(&q)
	if err := model.Validate("quotation", q); err != nil {
		return doc, err
	}
	if doc.ContactIndex(q.ContactID) < 0 {
		return doc, NewNotFoundError("contact", q.ContactID)
	}

	next := doc.Clone()
	if idx := next.QuotationIndex(q.ID); idx >= 0 {
		next.Quotations[idx] = q
	} else {
		next.Quotations = append(next.Quotations, q)
	}
	return next, nil
}

// PatchQuotation merges the non-nil patch fields into the quotation with
// the given id. Status transitions are unconstrained: any status may
// follow any other.
func (e *Engine) PatchQuotation(doc model.Document, id string, patch QuotationPatch) (model.Document, error) {
	idx := doc.QuotationIndex(id)
	if idx < 0 {
		return doc, NewNotFoundError("quotation", id)
	}

	merged := doc.Quotations[idx]
	merged.Items = append([]model.SaleItem(nil), merged.Items...)
	if patch.Date != nil {
		merged.Date = *patch.Date
	}
	if patch.ContactID != nil {
		merged.ContactID = *patch.ContactID
	}
	if patch.ValidUntil != nil {
		merged.ValidUntil = *patch.ValidUntil
	}
	if patch.Status != nil {
		merged.Status = *patch.Status
	}
	if patch.Items != nil {
		merged.Items = append([]model.SaleItem(nil), patch.Items...)
	}
	if patch.Total != nil {
		merged.Total = *patch.Total
	}
	if patch.Notes != nil {
		merged.Notes = *patch.Notes
	}

	if err := model.Validate("quotation", merged); err != nil {
		return doc, err
	}
	if doc.ContactIndex(merged.ContactID) < 0 {
		return doc, NewNotFoundError("contact", merged.ContactID)
	}

	next := doc.Clone()
	next.Quotations[idx] = merged
	return next, nil
}
