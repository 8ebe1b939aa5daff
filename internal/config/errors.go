package config

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a field whose value cannot be coerced to its type.
type ConfigurationError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid value %v for field %q: %v", e.Value, e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ValidationError reports a well-typed value that violates a constraint.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %q: %s", e.Field, e.Message)
}

// ValidationErrors collects every violation found in one pass.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 1 {
		return v[0].Error()
	}
	errs := make([]error, len(v))
	for i, e := range v {
		errs[i] = e
	}
	return errors.Join(errs...).Error()
}

// Unwrap exposes the individual violations to errors.As.
func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, len(v))
	for i, e := range v {
		errs[i] = e
	}
	return errs
}

// ExternalPrerequisiteError reports caller-supplied infrastructure that cannot host the database.
type ExternalPrerequisiteError struct {
	Resource string
	Message  string
}

func (e *ExternalPrerequisiteError) Error() string {
	return fmt.Sprintf("external prerequisite %s: %s", e.Resource, e.Message)
}
