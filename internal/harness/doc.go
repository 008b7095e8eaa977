// Package harness runs YAML-defined scenarios against the transition
// engine: seed a document, apply a sequence of business events, check
// each step's outcome, and compare the final document against a golden
// file. Scenarios double as executable documentation of the stock
// consistency rules.
package harness
