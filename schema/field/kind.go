package field

import "fmt"

// Kind identifies a clause kind a directive group applies to.
type Kind uint8

// Clause kinds in the order the engine documents them.
const (
	KindFields Kind = iota + 1
	KindSelect
	KindValues
	KindWhere
	KindSet
)

// Kinds lists every clause kind.
var Kinds = []Kind{KindFields, KindSelect, KindValues, KindWhere, KindSet}

var kindNames = map[Kind]string{
	KindFields: "fields",
	KindSelect: "select",
	KindValues: "values",
	KindWhere:  "where",
	KindSet:    "set",
}

// String returns the lower-case clause name.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is a known clause kind.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind returns the kind named s ("fields", "select", "values", "where"
// or "set"). The singular "field" and "value" are accepted too.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "fields", "field":
		return KindFields, nil
	case "select":
		return KindSelect, nil
	case "values", "value":
		return KindValues, nil
	case "where":
		return KindWhere, nil
	case "set":
		return KindSet, nil
	}
	return 0, fmt.Errorf("sqlclause: unknown clause kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("sqlclause: unknown clause kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
