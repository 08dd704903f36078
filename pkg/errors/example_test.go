// Package errors provides examples of structured error handling in tabclean.
package errors_test

import (
	"fmt"
	"io"

	"github.com/ajitpratap0/tabclean/pkg/errors"
)

// Example demonstrates basic error creation with details.
func Example() {
	err := errors.New(errors.ErrorTypeShape, "column length mismatch")

	err = err.WithDetail("column", "temp_value").
		WithDetail("rows", 3).
		WithDetail("expected", 4)

	fmt.Println(err.Error())

	// Output:
	// shape: column length mismatch
}

// ExampleWrap shows how to wrap existing errors with context.
func ExampleWrap() {
	originalErr := io.ErrUnexpectedEOF

	err := errors.Wrap(originalErr, errors.ErrorTypeConfig, "failed to read config").
		WithDetail("path", "tabclean.yaml")

	if errors.IsType(err, errors.ErrorTypeConfig) {
		fmt.Println("This is a config error")
	}

	if errors.Is(err, io.ErrUnexpectedEOF) {
		fmt.Println("Original error was unexpected EOF")
	}

	// Output:
	// This is a config error
	// Original error was unexpected EOF
}

// ExampleErrorType demonstrates the error categories.
func ExampleErrorType() {
	shapeErr := errors.New(errors.ErrorTypeShape, "row count mismatch")
	fmt.Printf("Shape error: %v\n", shapeErr)

	valErr := errors.Newf(errors.ErrorTypeValidation, "duplicate column %q", "mass_value")
	fmt.Printf("Validation error: %v\n", valErr)

	// Output:
	// Shape error: shape: row count mismatch
	// Validation error: validation: duplicate column "mass_value"
}

// ExampleIsType shows that IsType looks through wrapped structured errors.
func ExampleIsType() {
	inner := errors.New(errors.ErrorTypeShape, "pair length mismatch")
	outer := errors.Wrap(inner, errors.ErrorTypeData, "stage unit_converter failed")

	fmt.Println(errors.IsType(outer, errors.ErrorTypeData))
	fmt.Println(errors.IsType(outer, errors.ErrorTypeShape))
	fmt.Println(errors.IsType(outer, errors.ErrorTypeConfig))

	// Output:
	// true
	// true
	// false
}
