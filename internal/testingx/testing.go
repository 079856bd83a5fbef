// Package testingx contains helpers for table-driven tests built around the
// testing package.
package testingx

import (
	"context"
	"testing"
)

// TestFunc consumes a test input and returns a result.
type TestFunc[T, U any] func(context.Context, T) TestResult[U]

// TestResult pairs the observed success value with the observed error.
type TestResult[U any] struct {
	Success U
	Err     error
}

// TestCase is a named test case: an input plus a function checking the
// observed result.
type TestCase[T, U any] struct {
	Name    string
	Input   T
	SetupFn func(context.Context, *testing.T)
	CheckFn func(context.Context, *testing.T, TestResult[U])
}

// RunTests runs every case against the given test function.
func RunTests[T, U any](ctx context.Context, t *testing.T, cases []TestCase[T, U], testFn TestFunc[T, U]) {
	for _, testCase := range cases {
		t.Run(testCase.Name, func(t *testing.T) {
			if testCase.SetupFn != nil {
				testCase.SetupFn(ctx, t)
			}

			result := testFn(ctx, testCase.Input)
			testCase.CheckFn(ctx, t, result)
		})
	}
}
