package engine

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// ValidationError reports a missing or malformed input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// DuplicateActionError is returned when an open corrective action already
// references the asset.
type DuplicateActionError struct {
	AuditAssetID     string
	ExistingActionID string
}

func (e *DuplicateActionError) Error() string {
	if e.ExistingActionID == "" {
		return fmt.Sprintf("asset %s already has an open corrective action", e.AuditAssetID)
	}
	return fmt.Sprintf("asset %s already has an open corrective action (%s)", e.AuditAssetID, e.ExistingActionID)
}

type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// DependencyError wraps a failure of a store, the roster or the notifier.
// It is never a business-rule violation.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }

// Dependency wraps err as a DependencyError unless it already carries one of
// the typed engine errors.
func Dependency(op string, err error) error {
	if err == nil {
		return nil
	}
	var (
		ve *ValidationError
		de *DuplicateActionError
		ne *NotFoundError
		pe *DependencyError
	)
	if errors.As(err, &ve) || errors.As(err, &de) || errors.As(err, &ne) || errors.As(err, &pe) {
		return err
	}
	return &DependencyError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsDuplicate(err error) bool {
	var e *DuplicateActionError
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsDependency(err error) bool {
	var e *DependencyError
	return errors.As(err, &e)
}

// Aggregate joins the distinct messages of errs into one error, keeping the
// first occurrence of each. It returns nil when errs holds no error.
func Aggregate(errs []error) error {
	seen := make(map[string]struct{}, len(errs))
	var out error
	for _, err := range errs {
		if err == nil {
			continue
		}
		msg := err.Error()
		if _, ok := seen[msg]; ok {
			continue
		}
		seen[msg] = struct{}{}
		out = multierr.Append(out, err)
	}
	return out
}
