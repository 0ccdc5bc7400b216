package model

// Violation records a mutant whose output broke the declared relation.
type Violation struct {
	Unit      int      `yaml:"unit"`
	Position  int      `yaml:"position"`
	Relation  Relation `yaml:"relation"`
	Mutant    Bytes    `yaml:"mutant"`
	Reference Bytes    `yaml:"reference"`
	Output    Bytes    `yaml:"output"`
	Err       string   `yaml:"error,omitempty"`
	// EqualFields names the fields an all-differ mutant left unchanged.
	EqualFields []string `yaml:"equal_fields,omitempty"`
}

// UnitResult is the outcome of exhausting one strategy against one base input.
type UnitResult struct {
	Unit       int
	Mutants    int
	Rejected   int // adapter rejections folded into a passing divergence
	Violations int
	Examples   []Violation
}

// Report aggregates violations for one (primitive label, strategy name) pair.
type Report struct {
	Label      string      `yaml:"label"`
	Strategy   string      `yaml:"strategy"`
	Units      Range       `yaml:"units"`
	Mutants    int         `yaml:"mutants"`
	Rejected   int         `yaml:"rejected"`
	Violations int         `yaml:"violations"`
	Examples   []Violation `yaml:"examples,omitempty"`
}

// Passed reports whether no violation was observed across the whole range.
func (r Report) Passed() bool {
	return r.Violations == 0
}

// Merge folds a unit result into the report, keeping at most maxExamples
// violation examples.
func (r *Report) Merge(unit UnitResult, maxExamples int) {
	r.Mutants += unit.Mutants
	r.Rejected += unit.Rejected
	r.Violations += unit.Violations

	for _, example := range unit.Examples {
		if len(r.Examples) >= maxExamples {
			break
		}

		r.Examples = append(r.Examples, example)
	}
}

// Estimate is the number of mutants a strategy will produce over a range.
type Estimate struct {
	Label    string
	Strategy string
	Units    int
	Mutants  int
}

// Path represents a file system path.
type Path string
