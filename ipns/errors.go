package ipns

import "errors"

// Kind is a stable category for programmatic error handling.
//
// These categories are intended to remain stable across versions.
// Callers should branch on Kind/RuleID rather than matching error strings.
type Kind string

const (
	// KindSeed covers malformed seed input (wrong length).
	KindSeed Kind = "Seed"
	// KindKey covers malformed raw or tagged public-key input.
	KindKey Kind = "Key"
	// KindFormat covers addresses whose multibase indicator or payload
	// cannot be decoded in the declared base.
	KindFormat Kind = "Format"
	// KindDigit covers base-36 payloads containing characters outside 0-9a-z.
	KindDigit Kind = "Digit"
	// KindPrefix covers decoded payloads that are not a 40-byte tagged key
	// carrying the fixed protocol prefix.
	KindPrefix Kind = "Prefix"
)

// Error is the codec's structured error type.
//
// RuleID is a stable identifier (e.g., KF-DEC-101) that names the violated
// invariant. Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	RuleID  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, ruleID, msg string) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: msg}
}

func wrapError(kind Kind, ruleID, msg string, cause error) error {
	if cause == nil {
		return newError(kind, ruleID, msg)
	}
	return &Error{Kind: kind, RuleID: ruleID, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// RuleID returns the stable RuleID for a structured error, or "" if unknown.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}
