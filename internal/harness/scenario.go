package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/khatapp/khata/internal/engine"
	"github.com/khatapp/khata/internal/model"
)

// Scenario defines a conformance test scenario: a seeded document and a
// sequence of transition steps with expected outcomes.
type Scenario struct {
	// Name uniquely identifies this scenario (also the golden file name).
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Seed establishes the initial document. Seed entities bypass the
	// engine and are assumed valid.
	Seed Seed `yaml:"seed,omitempty"`

	// Steps are applied in order against the evolving document.
	Steps []Step `yaml:"steps"`
}

// Seed is the initial document contents for a scenario.
type Seed struct {
	Products []map[string]any `yaml:"products,omitempty"`
	Contacts []map[string]any `yaml:"contacts,omitempty"`
}

// Step is one transition in a scenario flow.
type Step struct {
	// Op selects the engine operation:
	// sale | purchase | sales-return | purchase-return |
	// quote-upsert | quote-patch | attendance-toggle |
	// product-upsert | product-delete | contact-upsert | contact-delete
	Op string `yaml:"op"`

	// Args is the operation payload, using the document's JSON field
	// names (productId, costPrice, ...).
	Args map[string]any `yaml:"args"`

	// Expect is the expected transition error code, or empty/"ok" for
	// success. A failing step must leave the document unchanged.
	Expect string `yaml:"expect,omitempty"`
}

// Result is the outcome of running a scenario.
type Result struct {
	// Final is the document after all steps.
	Final model.Document

	// Errors holds the per-step error (nil for successful steps).
	Errors []error
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected to catch typos like "step:" vs "steps:".
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	for i, step := range s.Steps {
		if step.Op == "" {
			return fmt.Errorf("steps[%d]: op is required", i)
		}
		if _, ok := stepOps[step.Op]; !ok {
			return fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
		}
		if step.Args == nil {
			return fmt.Errorf("steps[%d]: args is required (use empty map if no args)", i)
		}
	}
	return nil
}

// decodeArgs converts a YAML args map into a typed payload through its
// JSON field names.
func decodeArgs(args map[string]any, target any) error {
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode args: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("decode args: %w", err)
	}
	return nil
}

type applyFunc func(eng *engine.Engine, doc model.Document, args map[string]any) (model.Document, error)

var stepOps = map[string]applyFunc{
	"sale": func(eng *engine.Engine, doc model.Document, args map[string]any) (model.Document, error) {
		var tx model.Transaction
		if err := decodeArgs(args, &tx); err != nil {
			return doc, err
		}
		return eng.ApplySale(doc, tx)
	},
	"purchase": func(eng *engine.Engine, doc model.Document, args map[string]any) (model.Document, error) {
		var p model.Purchase
		if err := decodeArgs(args, &p); err != nil {
			return doc, err
		}
		return eng.ApplyPurchase(doc, p)
	},
	"sales-return": func(eng *engine.Engine, doc model.Document, args map[string]any) (model.Document, error) {
		var ret model.Return
		if err := decodeArgs(args, &ret); err != nil {
			return doc, err
		}
		return eng.ApplySalesReturn(doc, ret)
	},
	"purchase-return": func(eng *engine.Engine, doc model.Document, args map[string]any) (model.Document, error) {
		var ret model.Return
		if err := decodeArgs(args, &ret); err != nil {
			return doc, err
		}
		return eng.ApplyPurchaseReturn(doc, ret)
	},
	"quote-upsert": func(eng *engine.Engine, doc model.Document, args map[string]any) (model.Document, error) {
		var q model.Quotation
		if err := decodeArgs(args, &q); err != nil {
			return doc, err
		}
		return eng.UpsertQuotation(doc, q)
	},
	"quote-patch": func(eng *engine.Engine, doc model.Document, args map[string]any) (model.Document, error) {
		var payload struct {
			ID    string                `json:"id"`
			Patch engine.QuotationPatch `json:"patch"`
		}
		if err := decodeArgs(args, &payload); err != nil {
			return doc, err
		}
		return eng.PatchQuotation(doc, payload.ID, payload.Patch)
	},
	"attendance-toggle": func(eng *engine.Engine, doc model.Document, args map[string]any) (model.Document, error) {
		var payload struct {
			EmployeeID string `json:"employeeId"`
			Year       int    `json:"year"`
			Month      int    `json:"month"`
			Day        int    `json:"day"`
		}
		if err := decodeArgs(args, &payload); err != nil {
			return doc, err
		}
		merged := engine.ToggleAttendance(doc.Attendance, payload.EmployeeID, payload.Year, payload.Month, payload.Day)
		return eng.SetAttendance(doc, merged)
	},
	"product-upsert": func(eng *engine.Engine, doc model.Document, args map[string]any) (model.Document, error) {
		var p model.Product
		if err := decodeArgs(args, &p); err != nil {
			return doc, err
		}
		return eng.UpsertProduct(doc, p)
	},
	"product-delete": func(eng *engine.Engine, doc model.Document, args map[string]any) (model.Document, error) {
		var payload struct {
			ID string `json:"id"`
		}
		if err := decodeArgs(args, &payload); err != nil {
			return doc, err
		}
		return eng.DeleteProduct(doc, payload.ID)
	},
	"contact-upsert": func(eng *engine.Engine, doc model.Document, args map[string]any) (model.Document, error) {
		var c model.Contact
		if err := decodeArgs(args, &c); err != nil {
			return doc, err
		}
		return eng.UpsertContact(doc, c)
	},
	"contact-delete": func(eng *engine.Engine, doc model.Document, args map[string]any) (model.Document, error) {
		var payload struct {
			ID string `json:"id"`
		}
		if err := decodeArgs(args, &payload); err != nil {
			return doc, err
		}
		return eng.DeleteContact(doc, payload.ID)
	},
}
