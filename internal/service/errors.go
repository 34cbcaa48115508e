package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrInsufficientHistory is returned when fewer than two annual
	// observations exist for a profession, so no growth rate can be derived
	ErrInsufficientHistory = errors.New("insufficient registration history")

	// ErrUnknownImportKind is returned for an unrecognized import dataset kind
	ErrUnknownImportKind = errors.New("unknown import kind")
)
