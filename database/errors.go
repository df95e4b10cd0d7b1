package database

import "errors"

var (
	// ErrDatabaseClosed is returned by any access after Close.
	ErrDatabaseClosed = errors.New("database closed")

	// ErrDatabaseNotFound is returned by Get for a missing key.
	ErrDatabaseNotFound = errors.New("key not found")

	// ErrTxnConflict is returned when Update kept losing to concurrent
	// writers of its watched keys.
	ErrTxnConflict = errors.New("transaction conflict")
)
