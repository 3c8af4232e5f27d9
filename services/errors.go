package services

import "fmt"

// The sync bridge distinguishes where a write failed so callers can render an
// accurate partial-success message. A MirrorWriteError means the database
// write committed and only the spreadsheet projection is missing it.

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type PrimaryWriteError struct {
	Op  string
	Err error
}

func (e *PrimaryWriteError) Error() string {
	return fmt.Sprintf("database: %s: %v", e.Op, e.Err)
}

func (e *PrimaryWriteError) Unwrap() error { return e.Err }

type MirrorWriteError struct {
	Op       string
	RecordID string
	Err      error
}

func (e *MirrorWriteError) Error() string {
	return fmt.Sprintf("sheets: %s: %v", e.Op, e.Err)
}

func (e *MirrorWriteError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

type AuthorizationError struct {
	Identity string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("identity not allowed: %s", e.Identity)
}
