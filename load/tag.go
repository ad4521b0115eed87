package load

import (
	"strconv"
	"strings"

	"github.com/syssam/sqlclause"
	"github.com/syssam/sqlclause/schema/field"
)

// ParseTag parses the directive list of one clause tag, for example
//
//	rename=url, condition=>=, ignore_none=false
//
// Items are separated by commas. A comma inside a single-quoted SQL string
// or inside parentheses does not separate items, and values are kept
// verbatim: value='a,b' yields the literal 'a,b'.
func ParseTag(name string, kind field.Kind, tag string) ([]field.Directive, error) {
	items, err := splitItems(tag)
	if err != nil {
		return nil, sqlclause.NewFieldConfigError(name, kind.String(), tag, err.Error())
	}
	ds := make([]field.Directive, 0, len(items))
	for _, item := range items {
		key, value, hasValue := strings.Cut(item, "=")
		d, err := ParseDirective(name, strings.TrimSpace(key), strings.TrimSpace(value), hasValue)
		if err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
	return ds, nil
}

// ParseDirective builds the directive named key. hasValue reports whether
// the directive was written as key=value.
func ParseDirective(name, key, value string, hasValue bool) (field.Directive, error) {
	needValue := func() error {
		if !hasValue {
			return sqlclause.NewFieldConfigError(name, key, nil, "directive requires a value")
		}
		return nil
	}
	noValue := func() error {
		if hasValue {
			return sqlclause.NewFieldConfigError(name, key, value, "directive takes no value")
		}
		return nil
	}
	switch key {
	case "ignore":
		return field.Ignore(), noValue()
	case "ignore_set":
		return field.IgnoreSet(), noValue()
	case "rename":
		return field.Rename(value), needValue()
	case "condition":
		return field.Condition(value), needValue()
	case "condition_all":
		return field.ConditionAll(value), needValue()
	case "value":
		return field.Value(value), needValue()
	case "index":
		if err := needValue(); err != nil {
			return field.Directive{}, err
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return field.Directive{}, sqlclause.NewFieldConfigError(name, key, value, "index must be an integer")
		}
		return field.Index(n), nil
	case "ignore_none":
		if !hasValue {
			return field.IgnoreNone(true), nil
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return field.Directive{}, sqlclause.NewFieldConfigError(name, key, value, "ignore_none must be a boolean")
		}
		return field.IgnoreNone(b), nil
	case "where":
		if !hasValue {
			return field.AsWhere(), nil
		}
		return field.AsWhereTemplate(value), nil
	default:
		return field.Directive{}, sqlclause.NewFieldConfigError(name, key, nil, "unknown directive")
	}
}

// splitItems splits s on top-level commas.
func splitItems(s string) ([]string, error) {
	var (
		items  []string
		start  int
		depth  int
		quoted bool
	)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\'':
			quoted = !quoted
		case quoted:
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == ',' && depth == 0:
			items = append(items, s[start:i])
			start = i + 1
		}
	}
	if quoted {
		return nil, errUnterminatedQuote
	}
	if depth != 0 {
		return nil, errUnbalancedParens
	}
	items = append(items, s[start:])
	out := items[:0]
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out, nil
}
