package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownMetric  = errors.New("unknown metric")
	ErrUnknownDataset = errors.New("unknown dataset")
)

// UnprocessableInputError reports data that lacks the shape an operation
// needs. Callers fall back to the synthetic dataset.
type UnprocessableInputError struct {
	Op     string
	Reason string
	Err    error
}

func (e *UnprocessableInputError) Error() string {
	msg := fmt.Sprintf("unprocessable input: %s: %s", e.Op, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UnprocessableInputError) Unwrap() error {
	return e.Err
}

func Unprocessable(op, reason string) error {
	return &UnprocessableInputError{Op: op, Reason: reason}
}

// ConfigError reports invalid generator or application settings.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func IsUnprocessable(err error) bool {
	var target *UnprocessableInputError
	return errors.As(err, &target)
}
