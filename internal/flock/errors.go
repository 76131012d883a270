package flock

import "fmt"

// ConfigError reports an invalid simulation parameter. It is returned once,
// at construction time; a running simulation never produces one.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// StepError wraps a failure inside Step with the tick at which it occurred.
// Step failures are fatal: the next tick would depend on a corrupted state.
type StepError struct {
	Tick int
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("simulation step failed at tick %d: %v", e.Tick, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
