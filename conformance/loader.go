package conformance

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// TestDataDir is the directory of YAML scenario files shipped alongside
// this package, relative to it.
const TestDataDir = "testdata"

// LoadAllSuites walks TestDataDir and loads every .yaml file as a
// TestSuite. A file's path appears only in the error returned when that
// file fails to load.
func LoadAllSuites() ([]TestSuite, error) {
	abs, err := filepath.Abs(TestDataDir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", TestDataDir, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("conformance test directory %s not found: %w", abs, err)
	}

	var suites []TestSuite
	err = filepath.Walk(abs, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".yaml" {
			return nil
		}
		suite, loadErr := loadSuiteFile(path)
		if loadErr != nil {
			relPath, _ := filepath.Rel(abs, path)
			return fmt.Errorf("loading %s: %w", relPath, loadErr)
		}
		suites = append(suites, suite)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return suites, nil
}

func loadSuiteFile(path string) (TestSuite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TestSuite{}, err
	}
	var suite TestSuite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return TestSuite{}, err
	}
	return suite, nil
}
