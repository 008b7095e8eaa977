package model

// Document is the aggregate of every persisted collection. It has a single
// owner (the store) and is only mutated by replacing whole collections; the
// engine always produces a complete next Document value.
type Document struct {
	Products        []Product           `json:"products"`
	Transactions    []Transaction       `json:"transactions"`
	Purchases       []Purchase          `json:"purchases"`
	Contacts        []Contact           `json:"contacts"`
	Quotations      []Quotation         `json:"quotations"`
	Attendance      []MonthlyAttendance `json:"attendance"`
	SalesReturns    []Return            `json:"salesReturns"`
	PurchaseReturns []Return            `json:"purchaseReturns"`
}

// NewDocument returns an empty document with all collections allocated,
// so an empty document serializes as [] rather than null everywhere.
func NewDocument() Document {
	return Document{
		Products:        []Product{},
		Transactions:    []Transaction{},
		Purchases:       []Purchase{},
		Contacts:        []Contact{},
		Quotations:      []Quotation{},
		Attendance:      []MonthlyAttendance{},
		SalesReturns:    []Return{},
		PurchaseReturns: []Return{},
	}
}

// Clone returns a deep copy of the document. Transitions clone first and
// mutate the copy, so a failed operation can never leave the caller's
// document partially modified.
func (d Document) Clone() Document {
	out := Document{
		Products:        make([]Product, len(d.Products)),
		Transactions:    make([]Transaction, len(d.Transactions)),
		Purchases:       make([]Purchase, len(d.Purchases)),
		Contacts:        make([]Contact, len(d.Contacts)),
		Quotations:      make([]Quotation, len(d.Quotations)),
		Attendance:      make([]MonthlyAttendance, len(d.Attendance)),
		SalesReturns:    make([]Return, len(d.SalesReturns)),
		PurchaseReturns: make([]Return, len(d.PurchaseReturns)),
	}
	copy(out.Contacts, d.Contacts)

	for i, p := range d.Products {
		if p.HSNDetails != nil {
			hd := *p.HSNDetails
			p.HSNDetails = &hd
		}
		out.Products[i] = p
	}
	for i, t := range d.Transactions {
		t.Items = append([]SaleItem(nil), t.Items...)
		out.Transactions[i] = t
	}
	for i, p := range d.Purchases {
		items := make([]PurchaseItem, len(p.Items))
		for j, it := range p.Items {
			if it.PriceUpdates != nil {
				pu := PriceUpdates{}
				if it.PriceUpdates.MRP != nil {
					v := *it.PriceUpdates.MRP
					pu.MRP = &v
				}
				if it.PriceUpdates.SalesPrice != nil {
					v := *it.PriceUpdates.SalesPrice
					pu.SalesPrice = &v
				}
				it.PriceUpdates = &pu
			}
			items[j] = it
		}
		p.Items = items
		out.Purchases[i] = p
	}
	for i, q := range d.Quotations {
		q.Items = append([]SaleItem(nil), q.Items...)
		out.Quotations[i] = q
	}
	for i, a := range d.Attendance {
		if a.Records != nil {
			records := make(map[int]bool, len(a.Records))
			for day, present := range a.Records {
				records[day] = present
			}
			a.Records = records
		}
		out.Attendance[i] = a
	}
	copyReturns := func(dst, src []Return) {
		for i, r := range src {
			r.Items = append([]ReturnItem(nil), r.Items...)
			dst[i] = r
		}
	}
	copyReturns(out.SalesReturns, d.SalesReturns)
	copyReturns(out.PurchaseReturns, d.PurchaseReturns)
	return out
}

// ProductIndex returns the slice index of the product with the given id,
// or -1 if absent.
func (d Document) ProductIndex(id string) int {
	for i := range d.Products {
		if d.Products[i].ID == id {
			return i
		}
	}
	return -1
}

// ContactIndex returns the slice index of the contact with the given id,
// or -1 if absent.
func (d Document) ContactIndex(id string) int {
	for i := range d.Contacts {
		if d.Contacts[i].ID == id {
			return i
		}
	}
	return -1
}

// QuotationIndex returns the slice index of the quotation with the given
// id, or -1 if absent.
func (d Document) QuotationIndex(id string) int {
	for i := range d.Quotations {
		if d.Quotations[i].ID == id {
			return i
		}
	}
	return -1
}

// TransactionByID returns the sale with the given id, if any.
func (d Document) TransactionByID(id string) (Transaction, bool) {
	for i := range d.Transactions {
		if d.Transactions[i].ID == id {
			return d.Transactions[i], true
		}
	}
	return Transaction{}, false
}

// PurchaseByID returns the purchase with the given id, if any.
func (d Document) PurchaseByID(id string) (Purchase, bool) {
	for i := range d.Purchases {
		if d.Purchases[i].ID == id {
			return d.Purchases[i], true
		}
	}
	return Purchase{}, false
}
