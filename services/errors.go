package services

import "errors"

var (
	// ErrDuplicateIssue is returned when a new report matches an existing
	// issue nearby. Retrying with the same input will fail again.
	ErrDuplicateIssue = errors.New("a similar issue already exists nearby")

	ErrIssueNotFound = errors.New("issue not found")

	// ErrNotificationNotFound covers both a missing notification and one
	// owned by a different user; callers cannot tell the two apart.
	ErrNotificationNotFound = errors.New("notification not found")
)
