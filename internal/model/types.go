package model

// ContactType classifies a contact.
type ContactType string

const (
	ContactCustomer ContactType = "customer"
	ContactSupplier ContactType = "supplier"
	ContactEmployee ContactType = "employee"
)

// QuotationStatus is the lifecycle label of a quotation.
//
// Transitions are deliberately unconstrained: any status may follow any
// other (e.g. rejected -> sent is allowed). This is intentional
// permissiveness, not a state machine with guards.
type QuotationStatus string

const (
	QuotationDraft    QuotationStatus = "draft"
	QuotationSent     QuotationStatus = "sent"
	QuotationAccepted QuotationStatus = "accepted"
	QuotationRejected QuotationStatus = "rejected"
)

// HSNDetails holds the tax rates looked up for an HSN code.
type HSNDetails struct {
	SGSTRate    float64 `json:"sgstRate"`
	CGSTRate    float64 `json:"cgstRate"`
	IGSTRate    float64 `json:"igstRate"`
	CESSRate    float64 `json:"cessRate,omitempty"`
	Description string  `json:"description,omitempty"`
}

// Product is a catalog entry. Stock is the authoritative on-hand quantity
// and never goes negative after a committed transition.
type Product struct {
	ID            string      `json:"id" validate:"required"`
	Brand         string      `json:"brand" validate:"required"`
	Name          string      `json:"name" validate:"required"`
	Art           string      `json:"art" validate:"required"`
	Design        string      `json:"design" validate:"required"`
	Colour        string      `json:"colour" validate:"required"`
	UOM           string      `json:"uom" validate:"required"`
	HSNCode       string      `json:"hsnCode" validate:"required"`
	HSNDetails    *HSNDetails `json:"hsnDetails,omitempty"`
	MRP           float64     `json:"mrp" validate:"gt=0"`
	SalesPrice    float64     `json:"salesPrice" validate:"gt=0"`
	PurchasePrice float64     `json:"purchasePrice" validate:"gt=0"`
	Stock         int         `json:"stock" validate:"gte=0"`
}

// Contact is a customer, supplier, or employee.
type Contact struct {
	ID        string      `json:"id" validate:"required"`
	Name      string      `json:"name" validate:"required"`
	Type      ContactType `json:"type" validate:"required,oneof=customer supplier employee"`
	Email     string      `json:"email" validate:"required,email"`
	Phone     string      `json:"phone" validate:"required,phone"`
	Address   string      `json:"address" validate:"required"`
	City      string      `json:"city" validate:"required"`
	State     string      `json:"state" validate:"required"`
	GSTN      string      `json:"gstn,omitempty"`
	DateAdded string      `json:"dateAdded,omitempty"`
}

// SaleItem is one line of a sale or quotation.
type SaleItem struct {
	ProductID string  `json:"productId" validate:"required"`
	Quantity  int     `json:"quantity" validate:"gt=0"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// Transaction is a committed sale. Immutable history: appended, never
// edited or deleted.
type Transaction struct {
	ID        string     `json:"id" validate:"required"`
	Date      string     `json:"date" validate:"required"`
	ContactID string     `json:"contactId" validate:"required"`
	Items     []SaleItem `json:"items" validate:"required,min=1,dive"`
	Total     float64    `json:"total" validate:"gte=0"`
}

// PriceUpdates optionally overwrites catalog prices as part of a purchase
// line. Nil fields leave the corresponding product field untouched.
type PriceUpdates struct {
	MRP        *float64 `json:"mrp,omitempty"`
	SalesPrice *float64 `json:"salesPrice,omitempty"`
}

// PurchaseItem is one line of a purchase.
type PurchaseItem struct {
	ProductID    string        `json:"productId" validate:"required"`
	Quantity     int           `json:"quantity" validate:"gt=0"`
	CostPrice    float64       `json:"costPrice" validate:"gt=0"`
	PriceUpdates *PriceUpdates `json:"priceUpdates,omitempty"`
}

// Purchase is a committed supplier purchase. Immutable history.
type Purchase struct {
	ID        string         `json:"id" validate:"required"`
	Date      string         `json:"date" validate:"required"`
	ContactID string         `json:"contactId" validate:"required"`
	Items     []PurchaseItem `json:"items" validate:"required,min=1,dive"`
	Total     float64        `json:"total" validate:"gte=0"`
}

// Quotation is the only entity with in-place field updates.
type Quotation struct {
	ID         string          `json:"id" validate:"required"`
	Date       string          `json:"date" validate:"required"`
	ContactID  string          `json:"contactId" validate:"required"`
	ValidUntil string          `json:"validUntil" validate:"required"`
	Status     QuotationStatus `json:"status" validate:"required,oneof=draft sent accepted rejected"`
	Items      []SaleItem      `json:"items" validate:"required,min=1,dive"`
	Total      float64         `json:"total" validate:"gte=0"`
	Notes      string          `json:"notes,omitempty"`
}

// ReturnItem is one line of a sales or purchase return.
type ReturnItem struct {
	ProductID string  `json:"productId" validate:"required"`
	Quantity  int     `json:"quantity" validate:"gt=0"`
	Price     float64 `json:"price" validate:"gte=0"`
	Reason    string  `json:"reason" validate:"required"`
}

// Return reverses part of an original sale or purchase, identified by
// OriginalID. Immutable history.
type Return struct {
	ID         string       `json:"id" validate:"required"`
	Date       string       `json:"date" validate:"required"`
	OriginalID string       `json:"originalId" validate:"required"`
	ContactID  string       `json:"contactId" validate:"required"`
	Items      []ReturnItem `json:"items" validate:"required,min=1,dive"`
	Total      float64      `json:"total" validate:"gte=0"`
	Notes      string       `json:"notes,omitempty"`
}

// MonthlyAttendance records which days of one month an employee was
// present. Records is sparse: a missing day means absent.
type MonthlyAttendance struct {
	EmployeeID string       `json:"employeeId" validate:"required"`
	Year       int          `json:"year" validate:"gte=2000"`
	Month      int          `json:"month" validate:"gte=1,lte=12"`
	Records    map[int]bool `json:"records"`
}
