package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khatapp/khata/internal/model"
	"github.com/khatapp/khata/internal/testutil"
)

func quoteFixture() model.Quotation {
	return model.Quotation{
		ID:         "q1",
		Date:       "2026-08-01",
		ContactID:  "cust",
		ValidUntil: "2026-09-01",
		Status:     model.QuotationDraft,
		Items:      []model.SaleItem{{ProductID: "p1", Quantity: 2, Price: 10}},
		Total:      20,
	}
}

func TestUpsertQuotation_InsertAndReplace(t *testing.T) {
	eng := New()
	doc := testutil.SeededDocument(testutil.ProductFixture("p1", 5))

	next, err := eng.UpsertQuotation(doc, quoteFixture())
	require.NoError(t, err)
	require.Len(t, next.Quotations, 1)

	// Quotations never touch stock.
	assert.Equal(t, 5, next.Products[0].Stock)

	q := quoteFixture()
	q.Total = 40
	q.Items[0].Quantity = 4
	next, err = eng.UpsertQuotation(next, q)
	require.NoError(t, err)
	require.Len(t, next.Quotations, 1)
	assert.Equal(t, 40.0, next.Quotations[0].Total)
}

func TestUpsertQuotation_UnknownContact(t *testing.T) {
	eng := New()
	doc := testutil.SeededDocument(testutil.ProductFixture("p1", 5))

	q := quoteFixture()
	q.ContactID = "ghost"
	_, err := eng.UpsertQuotation(doc, q)
	assert.True(t, IsNotFound(err))
}

func TestPatchQuotation_MergesNonNilFields(t *testing.T) {
	eng := New()
	doc := testutil.SeededDocument(testutil.ProductFixture("p1", 5))
	doc, err := eng.UpsertQuotation(doc, quoteFixture())
	require.NoError(t, err)

	status := model.QuotationSent
	notes := "follow up friday"
	next, err := eng.PatchQuotation(doc, "q1", QuotationPatch{
		Status: &status,
		Notes:  &notes,
	})
	require.NoError(t, err)

	got := next.Quotations[0]
	assert.Equal(t, model.QuotationSent, got.Status)
	assert.Equal(t, "follow up friday", got.Notes)
	// Untouched fields survive the merge.
	assert.Equal(t, "2026-09-01", got.ValidUntil)
	assert.Equal(t, 20.0, got.Total)

	// Original document keeps the pre-patch quotation.
	assert.Equal(t, model.QuotationDraft, doc.Quotations[0].Status)
}

func TestPatchQuotation_StatusTransitionsUnconstrained(t *testing.T) {
	eng := New()
	doc := testutil.SeededDocument(testutil.ProductFixture("p1", 5))

	q := quoteFixture()
	q.Status = model.QuotationRejected
	doc, err := eng.UpsertQuotation(doc, q)
	require.NoError(t, err)

	// rejected -> sent is allowed; there is no lifecycle guard.
	status := model.QuotationSent
	next, err := eng.PatchQuotation(doc, "q1", QuotationPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, model.QuotationSent, next.Quotations[0].Status)
}

func TestPatchQuotation_InvalidMergeRejected(t *testing.T) {
	eng := New()
	doc := testutil.SeededDocument(testutil.ProductFixture("p1", 5))
	doc, err := eng.UpsertQuotation(doc, quoteFixture())
	require.NoError(t, err)

	bad := model.QuotationStatus("archived")
	_, err = eng.PatchQuotation(doc, "q1", QuotationPatch{Status: &bad})
	assert.True(t, model.IsValidationError(err))
}

func TestPatchQuotation_UnknownID(t *testing.T) {
	eng := New()
	doc := testutil.SeededDocument()

	notes := "x"
	_, err := eng.PatchQuotation(doc, "ghost", QuotationPatch{Notes: &notes})
	assert.True(t, IsNotFound(err))
}
