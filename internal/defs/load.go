package defs

import (
	"fmt"
	"io"
	"os"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"totktools/internal/common"
	"totktools/internal/sav"
)

// ParseFields decodes a field table. The input may be JSON or YAML; both are
// a list of {id, hash, name, type} records.
func ParseFields(r io.Reader) ([]FieldDefinition, error) {
	var out []FieldDefinition
	if err := decodeTable(r, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseEnums decodes an enum table of {hash, value} records.
func ParseEnums(r io.Reader) ([]EnumDefinition, error) {
	var out []EnumDefinition
	if err := decodeTable(r, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeTable(r io.Reader, out interface{}) error {
	if err := yaml.NewDecoder(r).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return common.NewErrorMsg(sav.ErrSevError, sav.ErrDefinitionParse, err.Error())
	}
	return nil
}

// LoadFields reads a field table from path and returns a cache ordered by
// field name.
func LoadFields(path string) (*FieldCache, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, common.NewErrorMsg(sav.ErrSevError, sav.ErrFileError, err.Error())
	}
	defer f.Close()

	definitions, err := ParseFields(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	SortFields(definitions)
	return NewFieldCache(definitions), nil
}

// LoadEnums reads an enum table from path and returns a cache.
func LoadEnums(path string) (*EnumCache, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, common.NewErrorMsg(sav.ErrSevError, sav.ErrFileError, err.Error())
	}
	defer f.Close()

	definitions, err := ParseEnums(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	SortEnums(definitions)
	return NewEnumCache(definitions), nil
}

// SortFields orders definitions by name using a numeric-aware collation that
// ignores case and accents, so "Flag2" sorts before "flag10".
func SortFields(definitions []FieldDefinition) {
	c := collate.New(language.Und, collate.Numeric, collate.IgnoreCase, collate.IgnoreDiacritics)
	sort.SliceStable(definitions, func(i, j int) bool {
		return c.CompareString(definitions[i].Name, definitions[j].Name) < 0
	})
}

// SortEnums orders definitions by ascending hash.
func SortEnums(definitions []EnumDefinition) {
	sort.SliceStable(definitions, func(i, j int) bool {
		return definitions[i].Hash < definitions[j].Hash
	})
}

// ValidateFields returns the definitions whose type tag is not in the closed
// set. Such fields still load; decoding one of them fails the extraction.
func ValidateFields(c *FieldCache) []FieldDefinition {
	var bad []FieldDefinition
	for _, d := range c.Values() {
		if !IsValid(d.Type) {
			bad = append(bad, d)
		}
	}
	return bad
}
