package conformance

// TestSuite represents a complete YAML scenario file: a named group of
// test cases sharing an optional one-time setup block. Grounded on the
// teacher's own conformance schema, narrowed to Losp's domain — no
// permission/verb/object-database/feature-requirement fields, since Losp
// has no object store and no 32/64-bit split to skip around.
type TestSuite struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Setup       *SetupBlock `yaml:"setup,omitempty"`
	Tests       []TestCase  `yaml:"tests"`
}

// SetupBlock holds source evaluated once, in the same root scope the
// test itself runs in, so bindings it defines are visible afterward.
type SetupBlock struct {
	Code string `yaml:"code"`
}

// TestCase represents a single scenario: some Losp source plus the
// expected outcome of evaluating it.
type TestCase struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Skip        interface{} `yaml:"skip,omitempty"` // bool or string reason
	Code        string      `yaml:"code"`
	Setup       *SetupBlock `yaml:"setup,omitempty"`
	Expect      Expectation `yaml:"expect"`
}

// Expectation defines what result.Result a test's evaluation must
// produce. Exactly one of Value/Error/Type is normally set; Match/Range/
// Contains narrow a Value/Type check further.
type Expectation struct {
	Value    interface{}   `yaml:"value,omitempty"`    // value.FromHost-compared exact match against the first emitted value
	Values   []interface{} `yaml:"values,omitempty"`   // exact match against every emitted value, in order
	Error    string        `yaml:"error,omitempty"`    // result.Error.Source, e.g. DIV, TYPE
	Type     string        `yaml:"type,omitempty"`     // value.Kind name, e.g. int, list
	Match    string        `yaml:"match,omitempty"`    // regex against the value's String()
	Contains interface{}   `yaml:"contains,omitempty"` // list/string membership
	Range    []float64     `yaml:"range,omitempty"`    // [min, max] for a numeric value
}

// IsSkipped reports whether tc should be skipped, and why.
func (tc *TestCase) IsSkipped() (bool, string) {
	switch v := tc.Skip.(type) {
	case nil:
		return false, ""
	case bool:
		if v {
			return true, "skipped"
		}
		return false, ""
	case string:
		return true, v
	default:
		return false, ""
	}
}
