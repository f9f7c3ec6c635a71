package docerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is. Every typed error below matches one of them.
var (
	ErrStructure = errors.New("structure error")
	ErrReference = errors.New("reference error")
	ErrCycle     = errors.New("extends cycle")
	ErrParse     = errors.New("parse error")
	ErrConfig    = errors.New("configuration error")
)

// detail appends ": message" and ": cause" to b when they are set.
func detail(b *strings.Builder, message string, cause error) string {
	if message != "" {
		b.WriteString(": ")
		b.WriteString(message)
	}
	if cause != nil {
		b.WriteString(": ")
		b.WriteString(cause.Error())
	}
	return b.String()
}

// StructureError reports a value of the wrong kind at a path of the tree,
// e.g. a scalar where a mapping was required.
type StructureError struct {
	// Path is the slash-separated key path of the value.
	Path string
	// Expected and Actual name kinds ("mapping", "scalar", ...).
	Expected string
	Actual   string
	Message  string
	Cause    error
}

func (e *StructureError) Error() string {
	var b strings.Builder
	b.WriteString(ErrStructure.Error())
	if e.Path != "" {
		b.WriteString(" at " + e.Path)
	}
	if e.Expected != "" {
		b.WriteString(": expected " + e.Expected)
		if e.Actual != "" {
			b.WriteString(", got " + e.Actual)
		}
	}
	return detail(&b, e.Message, e.Cause)
}

func (e *StructureError) Unwrap() error        { return e.Cause }
func (e *StructureError) Is(target error) bool { return target == ErrStructure }

// ReferenceError reports a reference naming a key that does not exist.
type ReferenceError struct {
	// Ref is the reference as written.
	Ref string
	// Path is the key path of the mapping holding the reference.
	Path    string
	Message string
	Cause   error
}

func (e *ReferenceError) Error() string {
	var b strings.Builder
	b.WriteString(ErrReference.Error())
	if e.Ref != "" {
		b.WriteString(": " + e.Ref)
	}
	if e.Path != "" {
		b.WriteString(" (from " + e.Path + ")")
	}
	return detail(&b, e.Message, e.Cause)
}

func (e *ReferenceError) Unwrap() error        { return e.Cause }
func (e *ReferenceError) Is(target error) bool { return target == ErrReference }

// CycleError reports an extends chain that loops back on itself.
type CycleError struct {
	// Chain lists key paths in resolution order; the last one repeats an
	// earlier one.
	Chain []string
}

func (e *CycleError) Error() string {
	if len(e.Chain) == 0 {
		return ErrCycle.Error()
	}
	return ErrCycle.Error() + ": " + strings.Join(e.Chain, " -> ")
}

// Is matches ErrCycle, and ErrReference since a cycle is an unresolvable
// reference.
func (e *CycleError) Is(target error) bool {
	return target == ErrCycle || target == ErrReference
}

// ParseError reports a fragment that could not be decoded.
type ParseError struct {
	// Path is the file path or source name.
	Path    string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(ErrParse.Error())
	if e.Path != "" {
		b.WriteString(" in " + e.Path)
	}
	return detail(&b, e.Message, e.Cause)
}

func (e *ParseError) Unwrap() error        { return e.Cause }
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ConfigError reports an invalid configuration: a bad option value, a
// missing input or conflicting settings.
type ConfigError struct {
	// Option names the setting, e.g. "input.arguments" or "WithTree".
	Option string
	// Value is the offending value, if any.
	Value   any
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString(ErrConfig.Error())
	if e.Option != "" {
		b.WriteString(" for " + e.Option)
	}
	if e.Value != nil {
		fmt.Fprintf(&b, " (value: %v)", e.Value)
	}
	return detail(&b, e.Message, e.Cause)
}

func (e *ConfigError) Unwrap() error        { return e.Cause }
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }
