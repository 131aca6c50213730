package boardfinder

import (
	"fmt"
	"strings"
)

// Unknown is the family assigned when no signature matches.
const Unknown = "Unknown"

// Signature maps a device family to the keywords that identify it in
// OS-reported device descriptions.
type Signature struct {
	Family   string
	Keywords []string
}

// Table is an ordered, immutable set of family signatures. Order decides
// which family wins when a description matches more than one.
type Table struct {
	signatures []Signature
	index      map[string]int
}

var defaultSignatures = []Signature{
	{Family: "Arduino", Keywords: []string{"Arduino"}},
	{Family: "ESP", Keywords: []string{"ESP32", "ESP8266"}},
	{Family: "Raspberry", Keywords: []string{"Raspberry Pi"}},
	{Family: "FTDI", Keywords: []string{"FT232R USB UART"}},
	{Family: "CH340", Keywords: []string{"USB-SERIAL CH340"}},
	{Family: "CP210x", Keywords: []string{"CP210x UART Bridge"}},
}

// DefaultTable returns the built-in signature table.
func DefaultTable() *Table {
	t, err := NewTable(defaultSignatures...)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTable builds a table from signatures in the given order. Family names
// must be unique, non-empty and different from Unknown; every signature needs
// at least one non-empty keyword.
func NewTable(signatures ...Signature) (*Table, error) {
	t := &Table{
		signatures: make([]Signature, 0, len(signatures)),
		index:      make(map[string]int, len(signatures)),
	}
	for _, sig := range signatures {
		if err := t.add(sig); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Extend returns a new table with extra signatures appended after the
// existing ones. The receiver is left untouched.
func (t *Table) Extend(extra ...Signature) (*Table, error) {
	return NewTable(append(t.Signatures(), extra...)...)
}

func (t *Table) add(sig Signature) error {
	family := strings.TrimSpace(sig.Family)
	if family == "" || family == Unknown {
		return fmt.Errorf("%w: family name %q", ErrInvalidSignature, sig.Family)
	}
	if _, dup := t.index[family]; dup {
		return fmt.Errorf("%w: duplicate family %q", ErrInvalidSignature, family)
	}
	if len(sig.Keywords) == 0 {
		return fmt.Errorf("%w: family %q has no keywords", ErrInvalidSignature, family)
	}

	keywords := make([]string, 0, len(sig.Keywords))
	for _, kw := range sig.Keywords {
		if kw == "" {
			return fmt.Errorf("%w: family %q has an empty keyword", ErrInvalidSignature, family)
		}
		keywords = append(keywords, kw)
	}

	t.index[family] = len(t.signatures)
	t.signatures = append(t.signatures, Signature{Family: family, Keywords: keywords})
	return nil
}

// Families returns the family names in table order.
func (t *Table) Families() []string {
	names := make([]string, len(t.signatures))
	for i, sig := range t.signatures {
		names[i] = sig.Family
	}
	return names
}

// Has reports whether family is a key of the table.
func (t *Table) Has(family string) bool {
	_, ok := t.index[family]
	return ok
}

// Keywords returns a copy of the keywords for family, or nil if unknown.
func (t *Table) Keywords(family string) []string {
	i, ok := t.index[family]
	if !ok {
		return nil
	}
	return append([]string(nil), t.signatures[i].Keywords...)
}

// Signatures returns a deep copy of the table contents.
func (t *Table) Signatures() []Signature {
	out := make([]Signature, len(t.signatures))
	for i, sig := range t.signatures {
		out[i] = Signature{Family: sig.Family, Keywords: append([]string(nil), sig.Keywords...)}
	}
	return out
}

// ParseFamilies validates user-supplied family names against the table.
// Names are matched exactly; duplicates are dropped, order is kept.
func (t *Table) ParseFamilies(names []string) ([]string, error) {
	seen := make(map[string]struct{}, len(names))
	families := make([]string, 0, len(names))
	for _, name := range names {
		if !t.Has(name) {
			return nil, fmt.Errorf("%w: %q (choose from %s)", ErrUnknownFamily, name, strings.Join(t.Families(), ", "))
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		families = append(families, name)
	}
	return families, nil
}
