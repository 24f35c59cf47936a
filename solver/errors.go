package solver

import "fmt"

// ConfigurationError reports an invalid or unsupported solver setup. Raised
// at construction or on the first step that hits the unsupported path, never
// retried.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

func configErrf(format string, args ...interface{}) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// NumericalInstabilityError is fatal to the run: NaN/Inf in an update, or
// the CFL retry budget exhausted.
type NumericalInstabilityError struct {
	Reason string
	T      float64
	Step   int
}

func (e *NumericalInstabilityError) Error() string {
	return fmt.Sprintf("numerical instability at t=%g step %d: %s", e.T, e.Step, e.Reason)
}

// CollectiveFailureError wraps a failed ghost exchange or global reduction.
// There is no local recovery; the run must be restarted externally.
type CollectiveFailureError struct {
	Op  string
	Err error
}

func (e *CollectiveFailureError) Error() string {
	return fmt.Sprintf("collective %s failed: %v", e.Op, e.Err)
}

func (e *CollectiveFailureError) Unwrap() error { return e.Err }
