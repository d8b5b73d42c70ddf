package hydro

import "fmt"

// ConfigError reports invalid or contradictory scenario geometry. It is
// raised during Initialize and never silently corrected, with the single
// documented exception of the trench-height clamp.
type ConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("channel configuration: %s = %g: %s", e.Field, e.Value, e.Reason)
}

// DomainError reports a formula evaluated outside its mathematical domain,
// such as an arccos argument beyond [-1,1] or a depth Froude number at or
// above 1. The offending operation and value are kept for diagnosis.
type DomainError struct {
	Op     string
	Value  float64
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: value %g out of domain: %s", e.Op, e.Value, e.Reason)
}
