// Package validation collects field-level errors for record writes and
// models the closed choice sets used by enum fields.
package validation

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	MsgRequired      = "this field is required."
	MsgMaxLength     = "ensure this field has no more than %d characters."
	MsgInvalidChoice = "%q is not a valid choice."
	MsgReadOnly      = "this field is set by the server and cannot be written."
)

// Error is a set of messages keyed by the JSON field name they apply to.
type Error struct {
	Fields map[string][]string `json:"fields"`
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field carries at least one message.
func (e *Error) Has(field string) bool {
	return len(e.Fields[field]) > 0
}

// FieldError is shorthand for a single-field validation error.
func FieldError(field, msg string) *Error {
	return &Error{Fields: map[string][]string{field: {msg}}}
}

// Collector accumulates messages while a record is checked.
type Collector struct {
	fields map[string][]string
}

func New() *Collector {
	return &Collector{fields: make(map[string][]string)}
}

func (c *Collector) Add(field, msg string) {
	c.fields[field] = append(c.fields[field], msg)
}

func (c *Collector) Addf(field, format string, args ...interface{}) {
	c.Add(field, fmt.Sprintf(format, args...))
}

// Has reports whether field already failed a check.
func (c *Collector) Has(field string) bool {
	return len(c.fields[field]) > 0
}

// Required flags blank (empty or whitespace-only) strings.
func (c *Collector) Required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		c.Add(field, MsgRequired)
		return false
	}
	return true
}

// Check adds msg to field when ok is false.
func (c *Collector) Check(ok bool, field, msg string) bool {
	if !ok {
		c.Add(field, msg)
	}
	return ok
}

// MaxLength counts runes, not bytes.
func (c *Collector) MaxLength(field, value string, max int) bool {
	if utf8.RuneCountInString(value) > max {
		c.Addf(field, MsgMaxLength, max)
		return false
	}
	return true
}

// OptionalMaxLength applies MaxLength to a non-nil pointer.
func (c *Collector) OptionalMaxLength(field string, value *string, max int) bool {
	if value == nil {
		return true
	}
	return c.MaxLength(field, *value, max)
}

// Choice checks membership in a closed set. Empty values are reported as
// missing.
func (c *Collector) Choice(field, value string, set ChoiceSet) bool {
	if value == "" {
		c.Add(field, MsgRequired)
		return false
	}
	if !set.Contains(value) {
		c.Addf(field, MsgInvalidChoice, value)
		return false
	}
	return true
}

// Err returns nil when nothing failed.
func (c *Collector) Err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &Error{Fields: c.fields}
}
