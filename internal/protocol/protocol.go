// Package protocol implements the clinical recommendation rule engine: one
// pure evaluator per medical domain, sharing severity semantics, the
// mandatory non-diagnostic disclaimer and an interpretability trace.
//
// Evaluators never diagnose and never act: they produce operational
// recommendations that a clinician must validate. They are deterministic,
// side-effect free and total over validated inputs; clinically contradictory
// combinations surface as safety blocks, not as errors.
package protocol

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// round2 rounds to two decimals, matching the precision used in confidence
// scores and rate reporting.
func round2(v float64) float64 { return math.Round(v*100) / 100 }

// Disclaimer is the literal non-diagnostic warning attached to every
// recommendation. The exact wording is part of the output contract.
const Disclaimer = "Soporte operativo no diagnostico. Requiere validacion clinica humana."

// Severity is the ordered severity scale shared by every recommendation.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// Rank returns the ordinal position of the severity, 0 for unknown labels.
func (s Severity) Rank() int { return severityRank[s] }

// Max returns the more severe of the two levels.
func (s Severity) Max(other Severity) Severity {
	if other.Rank() > s.Rank() {
		return other
	}
	return s
}

// ComputeSeverity applies the shared severity lattice: any critical alert
// forces critical, safety entries force high, actionable recommendations
// yield medium, otherwise low. Protocols refine the result afterwards when
// their domain demands it (e.g. cardiac arrest context).
func ComputeSeverity(critical, safety, actions []string) Severity {
	switch {
	case len(critical) > 0:
		return SeverityCritical
	case len(safety) > 0:
		return SeverityHigh
	case len(actions) > 0:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// ValidationError marks an input that failed range or enum validation. The
// request boundary maps it to a bad-request response.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid protocol input: %s %s", e.Field, e.Reason)
}

func invalidf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// inRangeI validates an optional integer field against inclusive bounds.
func inRangeI(field string, v *int, lo, hi int) error {
	if v != nil && (*v < lo || *v > hi) {
		return invalidf(field, "must be between %d and %d", lo, hi)
	}
	return nil
}

// inRangeF validates an optional float field against inclusive bounds.
func inRangeF(field string, v *float64, lo, hi float64) error {
	if v != nil && (*v < lo || *v > hi) {
		return invalidf(field, "must be between %g and %g", lo, hi)
	}
	return nil
}

const maxNotesLen = 2000

// validateNotes enforces the shared bound on free-text notes.
func validateNotes(field string, notes *string) error {
	if notes != nil && len(*notes) > maxNotesLen {
		return invalidf(field, "must be at most %d characters", maxNotesLen)
	}
	return nil
}

// Evaluator evaluates a raw JSON input for one protocol. Implementations
// decode into their typed input, validate, and run the pure rule set.
type Evaluator func(input json.RawMessage) (any, error)

// registry maps protocol identifiers to their evaluators. Populated at init
// from each protocol file; immutable afterwards.
var registry = map[string]Evaluator{}

func register(id string, ev Evaluator) {
	if _, dup := registry[id]; dup {
		panic(fmt.Sprintf("protocol %q registered twice", id))
	}
	registry[id] = ev
}

// typed adapts a typed evaluator to the registry signature.
func typed[In any, Out any](validate func(*In) error, eval func(In) Out) Evaluator {
	return func(raw json.RawMessage) (any, error) {
		var in In
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &in); err != nil {
				return nil, invalidf("payload", "malformed JSON: %v", err)
			}
		}
		if err := validate(&in); err != nil {
			return nil, err
		}
		return eval(in), nil
	}
}

// Evaluate dispatches a raw input to the named protocol evaluator.
func Evaluate(protocolID string, input json.RawMessage) (any, error) {
	ev, ok := registry[protocolID]
	if !ok {
		return nil, fmt.Errorf("unknown protocol %q", protocolID)
	}
	return ev(input)
}

// IDs returns the registered protocol identifiers in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
