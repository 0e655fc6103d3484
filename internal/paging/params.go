package paging

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 50
)

var ErrInvalidParameter = errors.New("invalid parameter")

type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
}

var DefaultLimits = Limits{
	DefaultPageSize: DefaultPageSize,
	MaxPageSize:     MaxPageSize,
}

// Params is a 1-based page request. Values produced by ParseParams always
// satisfy PageNumber >= 1 and 1 <= PageSize <= Limits.MaxPageSize.
type Params struct {
	PageNumber int
	PageSize   int
}

func (p Params) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

type ParameterError struct {
	Name   string
	Reason string
}

func (e ParameterError) String() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Reason)
}

// ParameterErrors collects every malformed parameter of a request so that
// clients see all problems at once. It matches ErrInvalidParameter.
type ParameterErrors []ParameterError

func (errs ParameterErrors) Error() string {
	return strings.Join(errs.Details(), "; ")
}

func (errs ParameterErrors) Unwrap() error {
	return ErrInvalidParameter
}

func (errs ParameterErrors) Details() []string {
	details := make([]string, 0, len(errs))
	for _, e := range errs {
		details = append(details, e.String())
	}
	return details
}

// Parser reads query parameters, matching names case-insensitively.
type Parser struct {
	values map[string][]string
	errs   ParameterErrors
}

func NewParser(values url.Values) *Parser {
	folded := make(map[string][]string, len(values))
	for key, vals := range values {
		key = strings.ToLower(key)
		folded[key] = append(folded[key], vals...)
	}
	return &Parser{values: folded}
}

func (p *Parser) Lookup(name string) (value string, ok bool) {
	vals := p.values[strings.ToLower(name)]
	if len(vals) == 0 {
		return
	}
	return vals[0], true
}

func (p *Parser) String(name string, fallback string) string {
	value, ok := p.Lookup(name)
	if !ok {
		return fallback
	}
	return strings.TrimSpace(value)
}

// Int parses an integer parameter that must be at least min. Missing or
// blank values yield fallback; anything else that is not an integer >= min
// is recorded as a failure.
func (p *Parser) Int(name string, fallback int, min int) int {
	raw, ok := p.Lookup(name)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < min {
		p.Fail(name, describeMin(min))
		return fallback
	}
	return value
}

// IntAtMost is Int with values above max clamped down to max.
func (p *Parser) IntAtMost(name string, fallback int, min int, max int) int {
	return clamp(p.Int(name, fallback, min), min, max)
}

func (p *Parser) Fail(name string, reason string) {
	p.errs = append(p.errs, ParameterError{Name: name, Reason: reason})
}

// Page reads pageNumber and pageSize. pageSize above limits.MaxPageSize is
// clamped rather than rejected.
func (p *Parser) Page(limits Limits) Params {
	return Params{
		PageNumber: p.Int("pageNumber", DefaultPageNumber, 1),
		PageSize:   clamp(p.Int("pageSize", limits.DefaultPageSize, 1), 1, limits.MaxPageSize),
	}
}

func (p *Parser) Err() error {
	if len(p.errs) == 0 {
		return nil
	}
	return p.errs
}

func ParseParams(values url.Values, limits Limits) (Params, error) {
	parser := NewParser(values)
	params := parser.Page(limits)
	return params, parser.Err()
}

func describeMin(min int) string {
	switch min {
	case 0:
		return "must be a non-negative integer"
	case 1:
		return "must be a positive integer"
	default:
		return fmt.Sprintf("must be an integer greater than or equal to %d", min)
	}
}

func clamp[T constraints.Ordered](value, lo, hi T) T {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
