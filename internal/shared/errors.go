package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicate indicates a unique constraint conflict.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrSystemRole occurs when mutating a system-protected role.
	ErrSystemRole = errors.New("system role is protected")
	// ErrRoleInUse occurs when deleting a role still held by users.
	ErrRoleInUse = errors.New("role is still assigned")
	// ErrInUse occurs when deleting a record other records reference.
	ErrInUse = errors.New("record is referenced")
	// ErrInvalidTransition occurs when a document status move is not allowed.
	ErrInvalidTransition = errors.New("invalid status transition")
)
