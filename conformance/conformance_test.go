package conformance

import "testing"

func TestConformanceSuites(t *testing.T) {
	suites, err := LoadAllSuites()
	if err != nil {
		t.Fatalf("failed to load conformance suites: %v", err)
	}
	if len(suites) == 0 {
		t.Fatal("no conformance suites loaded from testdata")
	}

	runner := NewRunner()
	for _, suite := range suites {
		suite := suite
		t.Run(suite.Name, func(t *testing.T) {
			for _, tr := range runner.RunSuite(suite) {
				tr := tr
				t.Run(tr.Test.Name, func(t *testing.T) {
					if tr.Skipped {
						t.Skipf("skipped: %s", tr.Reason)
						return
					}
					if !tr.Passed {
						t.Error(tr.Reason)
					}
				})
			}
		})
	}
}

func TestLoadAllSuitesStructure(t *testing.T) {
	suites, err := LoadAllSuites()
	if err != nil {
		t.Fatalf("failed to load conformance suites: %v", err)
	}

	for _, suite := range suites {
		if suite.Name == "" {
			t.Error("suite loaded with no name")
		}
		if len(suite.Tests) == 0 {
			t.Errorf("suite %s has no tests", suite.Name)
		}
		for _, tc := range suite.Tests {
			if tc.Name == "" {
				t.Errorf("suite %s has a test with no name", suite.Name)
			}
			if tc.Code == "" {
				t.Errorf("suite %s test %s has no code", suite.Name, tc.Name)
			}
			e := tc.Expect
			if e.Value == nil && e.Values == nil && e.Error == "" && e.Type == "" && e.Match == "" &&
				e.Contains == nil && len(e.Range) == 0 {
				t.Errorf("suite %s test %s has no expectation", suite.Name, tc.Name)
			}
		}
	}
}

func TestComputeStatsAndFormat(t *testing.T) {
	results := []TestResult{
		{Suite: "s", Test: TestCase{Name: "a"}, Passed: true},
		{Suite: "s", Test: TestCase{Name: "b"}, Passed: false, Reason: "boom"},
		{Suite: "s", Test: TestCase{Name: "c"}, Skipped: true, Reason: "not yet"},
	}
	stats := ComputeStats(results)
	if stats.Total != 3 || stats.Passed != 1 || stats.Failed != 1 || stats.Skipped != 1 {
		t.Fatalf("ComputeStats = %+v, want {3 1 1 1}", stats)
	}
	if got := FormatStats(stats); got == "" {
		t.Fatal("FormatStats returned an empty string")
	}
	if got := FormatFailures(results); got != "s/b: boom\n" {
		t.Fatalf("FormatFailures = %q, want %q", got, "s/b: boom\n")
	}
}
