package models

import "fmt"

// ValidationError reports a field invariant violation on a CasinoData
// record. The record carrying the violation is never exposed downstream.
type ValidationError struct {
	Field      string
	Constraint string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: field %q %s", e.Field, e.Constraint)
}
