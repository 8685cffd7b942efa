package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fwpboutique/crystalshop/internal/domain"
)

// ErrNotFound is returned when a record does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when the admin secret does not match
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrInvalidStateTransition is returned when a checkout session cannot move to the requested state
type ErrInvalidStateTransition struct {
	From domain.CheckoutState
	To   domain.CheckoutState
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// ErrValidation carries field-scoped messages. It is only produced at submit time.
type ErrValidation struct {
	Fields map[string]string
}

func (e *ErrValidation) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("validation failed: %s", strings.Join(keys, ", "))
}

// ErrSubmission is returned when the record store write failed. The order may be retried.
type ErrSubmission struct {
	Cause error
}

func (e *ErrSubmission) Error() string {
	return fmt.Sprintf("order submission failed: %v", e.Cause)
}

func (e *ErrSubmission) Unwrap() error {
	return e.Cause
}

// ErrOrderLocked is returned when shipping details are already attached to a record
type ErrOrderLocked struct {
	RecordID string
}

func (e *ErrOrderLocked) Error() string {
	return fmt.Sprintf("record %s already has a submitted order", e.RecordID)
}
