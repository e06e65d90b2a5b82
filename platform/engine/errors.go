package engine

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindIllegalState      ErrorKind = "IllegalState"
	KindInsufficientFunds ErrorKind = "InsufficientFunds"
	KindInvalidTarget     ErrorKind = "InvalidTarget"
	KindRuleViolation     ErrorKind = "RuleViolation"
	KindNotEligible       ErrorKind = "NotEligible"
	KindInternal          ErrorKind = "Internal"
)

var (
	ErrIllegalState      = errors.New(string(KindIllegalState))
	ErrInsufficientFunds = errors.New(string(KindInsufficientFunds))
	ErrInvalidTarget     = errors.New(string(KindInvalidTarget))
	ErrRuleViolation     = errors.New(string(KindRuleViolation))
	ErrNotEligible       = errors.New(string(KindNotEligible))
)

// KindOf maps an error returned by the engine to its kind. Anything that is
// not one of the engine's own errors is Internal.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrIllegalState):
		return KindIllegalState
	case errors.Is(err, ErrInsufficientFunds):
		return KindInsufficientFunds
	case errors.Is(err, ErrInvalidTarget):
		return KindInvalidTarget
	case errors.Is(err, ErrRuleViolation):
		return KindRuleViolation
	case errors.Is(err, ErrNotEligible):
		return KindNotEligible
	}
	return KindInternal
}

func wrap(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

func illegal(format string, args ...interface{}) error {
	return wrap(ErrIllegalState, format, args...)
}

func insufficient(format string, args ...interface{}) error {
	return wrap(ErrInsufficientFunds, format, args...)
}

func invalidTarget(format string, args ...interface{}) error {
	return wrap(ErrInvalidTarget, format, args...)
}

func violation(format string, args ...interface{}) error {
	return wrap(ErrRuleViolation, format, args...)
}

func notEligible(format string, args ...interface{}) error {
	return wrap(ErrNotEligible, format, args...)
}
