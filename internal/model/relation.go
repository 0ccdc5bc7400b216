package model

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Expectation is the kind of relation a mutant's output must satisfy against
// the reference output.
type Expectation string

const (
	// ExpectEqual requires the mutant output to be equivalent to the reference.
	ExpectEqual Expectation = "equal"
	// ExpectDiffer requires the mutant output to differ from the reference.
	ExpectDiffer Expectation = "differ"
	// ExpectAllDiffer requires every named output field to differ from the
	// reference simultaneously. A single equal field is a violation.
	ExpectAllDiffer Expectation = "all-differ"
)

// Relation is the expected relation attached to a mutant.
type Relation struct {
	Expect Expectation `yaml:"expect"`
	Fields []string    `yaml:"fields,omitempty"`
}

// Equal is the relation "outputs must be equivalent".
func Equal() Relation {
	return Relation{Expect: ExpectEqual}
}

// Differ is the relation "outputs must differ".
func Differ() Relation {
	return Relation{Expect: ExpectDiffer}
}

// AllDiffer is the composite relation "every listed field must differ".
func AllDiffer(fields ...string) Relation {
	return Relation{Expect: ExpectAllDiffer, Fields: fields}
}

func (r Relation) String() string {
	if len(r.Fields) == 0 {
		return string(r.Expect)
	}

	return fmt.Sprintf("%s(%s)", r.Expect, strings.Join(r.Fields, ","))
}

// Fielded is implemented by outputs made of several named byte fields, as
// required by ExpectAllDiffer.
type Fielded interface {
	Field(name string) []byte
}

// Bytes is a byte slice that serializes as a hex string.
type Bytes []byte

// MarshalYAML implements yaml.Marshaler.
func (b Bytes) MarshalYAML() (interface{}, error) {
	return hex.EncodeToString(b), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *Bytes) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	decoded, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("decode hex bytes: %w", err)
	}

	*b = decoded

	return nil
}
