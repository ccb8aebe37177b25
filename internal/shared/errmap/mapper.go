package errmap

import (
	"context"
	"errors"
)

// Outcome is what the CLI reports for an error: an exit code and a line for stderr.
type Outcome struct {
	Code    int
	Message string
}

// Mapping ties an error (matched with errors.Is) to an exit code. With Raw set the error text is
// printed unchanged; otherwise the mapper's prefix is prepended.
type Mapping struct {
	Error error
	Code  int
	Raw   bool
}

// Mapper maps run errors to process outcomes in one place.
type Mapper struct {
	mappings    []Mapping
	defaultCode int
	prefix      string
}

func NewMapper() *Mapper {
	return &Mapper{defaultCode: 1}
}

// WithMapping adds an error mapping. Mappings are checked in registration order.
func (m *Mapper) WithMapping(err error, code int, raw bool) *Mapper {
	m.mappings = append(m.mappings, Mapping{Error: err, Code: code, Raw: raw})
	return m
}

// WithDefault sets the exit code and message prefix for unmatched errors.
func (m *Mapper) WithDefault(code int, prefix string) *Mapper {
	m.defaultCode = code
	m.prefix = prefix
	return m
}

// Map converts an error into an outcome; nil means success.
func (m *Mapper) Map(err error) Outcome {
	if err == nil {
		return Outcome{Code: 0}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Outcome{Code: m.defaultCode, Message: m.prefix + "request timeout: " + err.Error()}
	}
	if errors.Is(err, context.Canceled) {
		return Outcome{Code: m.defaultCode, Message: m.prefix + "interrupted"}
	}

	for _, mapping := range m.mappings {
		if !errors.Is(err, mapping.Error) {
			continue
		}
		if mapping.Raw {
			return Outcome{Code: mapping.Code, Message: err.Error()}
		}
		return Outcome{Code: mapping.Code, Message: m.prefix + err.Error()}
	}

	return Outcome{Code: m.defaultCode, Message: m.prefix + err.Error()}
}
