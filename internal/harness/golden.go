package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/khatapp/khata/internal/model"
)

// RunWithGolden executes a scenario and compares the final document
// against a golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files are the canonical JSON of the final document and serve as
// the source of truth for the expected end state of each scenario.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	data, err := model.MarshalCanonical(result.Final)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return nil
}
