// Package errors provides examples of structured error handling in dictstream.
package errors_test

import (
	"fmt"
	"io"

	"github.com/ajitpratap0/dictstream/pkg/errors"
)

// Example demonstrates basic error creation and wrapping.
func Example() {
	// Create a new error with type
	err := errors.New(errors.ErrorTypeCorruptedKey, "unable to deserialize composite key")

	// Add context details
	err = err.WithDetail("key_index", 3).
		WithDetail("unconsumed_bytes", 2)

	// Print the error
	fmt.Println(err.Error())

	// Output:
	// corrupted_key: unable to deserialize composite key
}

// ExampleWrap shows how to wrap existing errors with context.
func ExampleWrap() {
	// Simulate an underlying error
	originalErr := io.ErrUnexpectedEOF

	// Wrap the error with context
	err := errors.Wrap(originalErr, errors.ErrorTypeData, "failed to decode key field").
		WithDetail("field", "region")

	// Check the error type
	if errors.IsType(err, errors.ErrorTypeData) {
		fmt.Println("This is a data error")
	}

	// Output:
	// This is a data error
}

// ExampleIsType demonstrates checking error types.
func ExampleIsType() {
	// Create errors of different types
	keyErr := errors.New(errors.ErrorTypeCorruptedKey, "key decode failed")
	valErr := errors.New(errors.ErrorTypeValidation, "invalid block size")

	// Wrap an error
	wrappedErr := errors.Wrap(keyErr, errors.ErrorTypeData, "materialization failed")

	// Check error types
	fmt.Printf("Is corrupted key error: %v\n", errors.IsType(keyErr, errors.ErrorTypeCorruptedKey))
	fmt.Printf("Is validation error: %v\n", errors.IsType(valErr, errors.ErrorTypeValidation))

	// IsType works through wrapped errors
	fmt.Printf("Wrapped error is data type: %v\n", errors.IsType(wrappedErr, errors.ErrorTypeData))
	fmt.Printf("Wrapped error contains corrupted key type: %v\n", errors.IsType(wrappedErr, errors.ErrorTypeCorruptedKey))

	// Output:
	// Is corrupted key error: true
	// Is validation error: true
	// Wrapped error is data type: true
	// Wrapped error contains corrupted key type: false
}

// ExampleDetail shows reading structured details back from an error.
func ExampleDetail() {
	err := errors.New(errors.ErrorTypeCorruptedKey, "unable to deserialize composite key").
		WithDetail("key_index", 7).
		WithDetail("unconsumed_bytes", 4)

	if idx, ok := errors.Detail(err, "key_index"); ok {
		fmt.Printf("key index: %v\n", idx)
	}
	if rem, ok := errors.Detail(err, "unconsumed_bytes"); ok {
		fmt.Printf("unconsumed bytes: %v\n", rem)
	}

	// Output:
	// key index: 7
	// unconsumed bytes: 4
}
