package harness

import (
	"fmt"

	"github.com/khatapp/khata/internal/engine"
	"github.com/khatapp/khata/internal/model"
)

// Run executes a scenario and returns the final document plus per-step
// outcomes.
//
// A step whose Expect names an error code must fail with exactly that
// code, and the document must be byte-identical before and after the
// failing step. Any mismatch is returned as an error.
func Run(scenario *Scenario) (*Result, error) {
	doc, err := seedDocument(scenario.Seed)
	if err != nil {
		return nil, err
	}

	eng := engine.New()
	result := &Result{Errors: make([]error, len(scenario.Steps))}

	for i, step := range scenario.Steps {
		apply := stepOps[step.Op]

		before, err := model.MarshalCanonical(doc)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Op, err)
		}

		next, stepErr := apply(eng, doc, step.Args)
		result.Errors[i] = stepErr

		switch {
		case step.Expect == "" || step.Expect == "ok":
			if stepErr != nil {
				return nil, fmt.Errorf("step %d (%s): expected success, got: %w", i, step.Op, stepErr)
			}
			doc = next

		default:
			if stepErr == nil {
				return nil, fmt.Errorf("step %d (%s): expected error %s, got success", i, step.Op, step.Expect)
			}
			if code := string(engine.CodeOf(stepErr)); code != step.Expect {
				return nil, fmt.Errorf("step %d (%s): expected error %s, got %s: %w", i, step.Op, step.Expect, code, stepErr)
			}
			after, err := model.MarshalCanonical(next)
			if err != nil {
				return nil, fmt.Errorf("step %d (%s): %w", i, step.Op, err)
			}
			if string(before) != string(after) {
				return nil, fmt.Errorf("step %d (%s): rejected operation modified the document", i, step.Op)
			}
		}
	}

	result.Final = doc
	return result, nil
}

// seedDocument builds the initial document from the scenario seed.
// Seed entities use the document's JSON field names.
func seedDocument(seed Seed) (model.Document, error) {
	doc := model.NewDocument()
	for i, args := range seed.Products {
		var p model.Product
		if err := decodeArgs(args, &p); err != nil {
			return doc, fmt.Errorf("seed products[%d]: %w", i, err)
		}
		doc.Products = append(doc.Products, p)
	}
	for i, args := range seed.Contacts {
		var c model.Contact
		if err := decodeArgs(args, &c); err != nil {
			return doc, fmt.Errorf("seed contacts[%d]: %w", i, err)
		}
		doc.Contacts = append(doc.Contacts, c)
	}
	return doc, nil
}
