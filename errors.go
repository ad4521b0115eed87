package sqlclause

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for the failure classes of the engine.
var (
	// ErrConfig is returned when a schema configuration is invalid.
	ErrConfig = errors.New("sqlclause: invalid configuration")

	// ErrUnsupportedDialect is returned when a dialect name is not recognized.
	ErrUnsupportedDialect = errors.New("sqlclause: unsupported dialect")

	// ErrTemplate is returned when a fragment template cannot be rendered.
	ErrTemplate = errors.New("sqlclause: invalid template")

	// ErrDirectiveConflict is returned when a field carries two mutually
	// exclusive directives of the same priority.
	ErrDirectiveConflict = errors.New("sqlclause: directive conflict")

	// ErrRecord is returned when a runtime record cannot answer a presence query.
	ErrRecord = errors.New("sqlclause: invalid record")
)

// ConfigError represents a schema-binding configuration error.
type ConfigError struct {
	Option  string // Configuration key or directive name
	Field   string // Field name (if applicable)
	Value   any    // Offending value (optional)
	Message string
}

// Error returns the error string.
func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("sqlclause: config error")
	if e.Field != "" {
		fmt.Fprintf(&b, " on field %q", e.Field)
	}
	if e.Option != "" {
		fmt.Fprintf(&b, " for %q", e.Option)
	}
	if e.Value != nil {
		fmt.Fprintf(&b, " (value: %v)", e.Value)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches ErrConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// NewConfigError returns a new ConfigError for a schema-level option.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Message: message}
}

// NewFieldConfigError returns a new ConfigError for a directive on a field.
func NewFieldConfigError(field, option string, value any, message string) *ConfigError {
	return &ConfigError{Field: field, Option: option, Value: value, Message: message}
}

// IsConfigError returns true if the error is a ConfigError. Unsupported
// dialects are configuration errors as well.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	var e *ConfigError
	return errors.As(err, &e) || errors.Is(err, ErrConfig)
}

// UnsupportedDialectError is returned when a dialect name is unknown.
type UnsupportedDialectError struct {
	Name      string
	Supported []string
}

// Error returns the error string.
func (e *UnsupportedDialectError) Error() string {
	if len(e.Supported) == 0 {
		return fmt.Sprintf("sqlclause: unsupported dialect %q", e.Name)
	}
	return fmt.Sprintf("sqlclause: unsupported dialect %q (supported: %s)", e.Name, strings.Join(e.Supported, ", "))
}

// Is reports whether the target matches ErrUnsupportedDialect or ErrConfig.
func (e *UnsupportedDialectError) Is(target error) bool {
	return target == ErrUnsupportedDialect || target == ErrConfig
}

// NewUnsupportedDialectError returns a new UnsupportedDialectError.
func NewUnsupportedDialectError(name string, supported []string) *UnsupportedDialectError {
	return &UnsupportedDialectError{Name: name, Supported: supported}
}

// IsUnsupportedDialect returns true if the error is an UnsupportedDialectError.
func IsUnsupportedDialect(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedDialectError
	return errors.As(err, &e) || errors.Is(err, ErrUnsupportedDialect)
}

// TemplateError represents a fragment template that references a token
// the field has no value for.
type TemplateError struct {
	Field    string // Field the template belongs to
	Kind     string // Clause kind (where, set)
	Template string
	Token    string // Unresolved token, e.g. "{condition}"
}

// Error returns the error string.
func (e *TemplateError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("sqlclause: %s template %q on field %q references %s but no value is set", e.Kind, e.Template, e.Field, e.Token)
	}
	return fmt.Sprintf("sqlclause: template %q on field %q references %s but no value is set", e.Template, e.Field, e.Token)
}

// Is reports whether the target matches ErrTemplate.
func (e *TemplateError) Is(target error) bool {
	return target == ErrTemplate
}

// NewMissingConditionError returns a TemplateError for a template that uses
// {condition} on a field without a condition.
func NewMissingConditionError(field, kind, template string) *TemplateError {
	return &TemplateError{Field: field, Kind: kind, Template: template, Token: "{condition}"}
}

// IsTemplateError returns true if the error is a TemplateError.
func IsTemplateError(err error) bool {
	if err == nil {
		return false
	}
	var e *TemplateError
	return errors.As(err, &e) || errors.Is(err, ErrTemplate)
}

// DirectiveConflictError represents two same-priority directives on one field.
type DirectiveConflictError struct {
	Field     string
	Kind      string
	Directive string
	Values    []any // Conflicting values in declaration order
}

// Error returns the error string.
func (e *DirectiveConflictError) Error() string {
	return fmt.Sprintf("sqlclause: field %q declares %s more than once in %s directives %v", e.Field, e.Directive, e.Kind, e.Values)
}

// Is reports whether the target matches ErrDirectiveConflict.
func (e *DirectiveConflictError) Is(target error) bool {
	return target == ErrDirectiveConflict
}

// NewDirectiveConflictError returns a new DirectiveConflictError.
func NewDirectiveConflictError(field, kind, directive string, values ...any) *DirectiveConflictError {
	return &DirectiveConflictError{Field: field, Kind: kind, Directive: directive, Values: values}
}

// IsDirectiveConflict returns true if the error is a DirectiveConflictError.
func IsDirectiveConflict(err error) bool {
	if err == nil {
		return false
	}
	var e *DirectiveConflictError
	return errors.As(err, &e) || errors.Is(err, ErrDirectiveConflict)
}

// RecordError wraps a failure to read presence information from a record.
type RecordError struct {
	Field string
	Err   error
}

// Error returns the error string.
func (e *RecordError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("sqlclause: record has no field %q", e.Field)
	}
	return fmt.Sprintf("sqlclause: record field %q: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// Is reports whether the target matches ErrRecord.
func (e *RecordError) Is(target error) bool {
	return target == ErrRecord
}

// NewRecordError returns a new RecordError.
func NewRecordError(field string, err error) *RecordError {
	return &RecordError{Field: field, Err: err}
}

// IsRecordError returns true if the error is a RecordError.
func IsRecordError(err error) bool {
	if err == nil {
		return false
	}
	var e *RecordError
	return errors.As(err, &e) || errors.Is(err, ErrRecord)
}
