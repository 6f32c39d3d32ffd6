package testutil

import (
	"errors"
)

const DatabaseError = "database error occurred"

// OperationResult is a canned return of a mocked dependency.
type OperationResult[T any] struct {
	Data T
	Err  error
}

// NewErrorResult wraps a error into a OperationResult with the zero value of T.
func NewErrorResult[T any](err string) *OperationResult[T] {
	return &OperationResult[T]{
		Data: *new(T),
		Err:  errors.New(err),
	}
}

// Wrap a generic Data into a OperationResult struct.
func NewSuccessResult[T any](data T) *OperationResult[T] {
	return &OperationResult[T]{
		Data: data,
		Err:  nil,
	}
}
