// Package errors provides centralized error definitions for the application.
// Errors are organized by domain to avoid duplication and provide consistent naming.
//
// Naming conventions:
//   - Exported errors (Err*): Use for errors that callers need to check with errors.Is
//   - All sentinel errors should be defined as variables, not inline errors.New calls
//   - Use fmt.Errorf with %w to wrap sentinel errors with context
package errors

import "errors"

// Data model errors.
var (
	// ErrUnknownLabel indicates a label outside the closed stance set.
	ErrUnknownLabel = errors.New("unknown stance label")

	// ErrDuplicateMessage indicates two messages share one identifier.
	ErrDuplicateMessage = errors.New("duplicate message id")

	// ErrUnknownParent indicates a parent reference to a message outside the set.
	ErrUnknownParent = errors.New("unknown parent message")

	// ErrCyclicThread indicates a parent chain that loops back on itself.
	ErrCyclicThread = errors.New("cyclic parent chain")

	// ErrAnnotationCoverage indicates a message without a gold annotation.
	ErrAnnotationCoverage = errors.New("annotation coverage is not total")
)

// Feature composition errors.
var (
	// ErrMissingChannel indicates a selected feature channel is absent from a
	// message's feature bag. The extractor contract guarantees completeness,
	// so this is unrecoverable.
	ErrMissingChannel = errors.New("feature channel missing from feature bag")

	// ErrChannelKind indicates a feature value whose kind does not match its
	// channel's encoding.
	ErrChannelKind = errors.New("feature kind does not match channel encoding")

	// ErrNotFitted indicates transform was called before fit.
	ErrNotFitted = errors.New("composer is not fitted")
)

// Training errors.
var (
	// ErrEmptyTrainingSet indicates a classifier was given no training data.
	ErrEmptyTrainingSet = errors.New("empty training set")

	// ErrSingleClassTraining indicates training labels collapse to one class.
	ErrSingleClassTraining = errors.New("training labels contain a single class")

	// ErrInvalidFoldCount indicates a cross-validation fold count below two.
	ErrInvalidFoldCount = errors.New("fold count must be at least 2")

	// ErrLengthMismatch indicates feature and label slices of different lengths.
	ErrLengthMismatch = errors.New("features and labels have different lengths")
)

// Ingestion errors.
var (
	// ErrInvalidRecord indicates a dataset record that cannot be parsed.
	ErrInvalidRecord = errors.New("invalid dataset record")
)
