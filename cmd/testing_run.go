package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/smarthome-go/lox/lox"
	"github.com/smarthome-go/lox/lox/config"
	"github.com/smarthome-go/lox/lox/diagnostic"
)

const programExtension = ".lox"
const expectedOutputExtension = ".out"

type testCase struct {
	name           string
	programPath    string
	expectedOutput string
}

// Collects every program in `dir` which has an expected output file next to it
func collectTestCases(dir string) ([]testCase, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("Could not read test directory '%s': %w", dir, err)
	}

	cases := make([]testCase, 0)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != programExtension {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), programExtension)
		expected, err := os.ReadFile(filepath.Join(dir, name+expectedOutputExtension))
		if os.IsNotExist(err) {
			log.Printf("Skipping '%s': no %s file\n", entry.Name(), expectedOutputExtension)
			continue
		}
		if err != nil {
			return nil, err
		}

		cases = append(cases, testCase{
			name:           name,
			programPath:    filepath.Join(dir, entry.Name()),
			expectedOutput: string(expected),
		})
	}

	sort.Slice(cases, func(i, j int) bool { return cases[i].name < cases[j].name })
	return cases, nil
}

// Runs the program and renders what it printed, followed by one `error: ` line per error diagnostic
func testingRun(program testCase, callStackLimit uint) (string, error) {
	source, err := os.ReadFile(program.programPath)
	if err != nil {
		return "", err
	}

	executor := lox.NewTestingExecutor()
	session := lox.NewSession(executor)
	session.SetCallStackLimit(callStackLimit)

	result := session.Run(program.programPath, string(source))

	output := *executor.Output
	for _, item := range result.Diagnostics {
		if item.Level == diagnostic.DiagnosticLevelError {
			output += fmt.Sprintf("error: %s\n", item.Message)
		}
	}

	return output, nil
}

// Runs every test case of `dir`, returns the number of failed cases
func runTestSuite(output io.Writer, dir string, cfg config.Config, verbose bool) (int, error) {
	cases, err := collectTestCases(dir)
	if err != nil {
		return 0, err
	}

	failed := 0
	for _, program := range cases {
		start := time.Now()

		actual, err := testingRun(program, cfg.CallStackLimit)
		if err != nil {
			return failed, err
		}

		if actual == program.expectedOutput {
			if verbose {
				fmt.Fprintf(output, "PASS %s (%v)\n", program.name, time.Since(start))
			}
			continue
		}

		failed++
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(program.expectedOutput),
			B:        difflib.SplitLines(actual),
			FromFile: program.name + expectedOutputExtension,
			ToFile:   "actual",
			Context:  3,
		})
		if err != nil {
			return failed, err
		}

		fmt.Fprintf(output, "FAIL %s\n%s\n", program.name, diff)
	}

	fmt.Fprintf(output, "%d passed, %d failed\n", len(cases)-failed, failed)
	return failed, nil
}
