// Package services implements the social core: the like engine, the comment
// tree engine, notification fan-out and follow management. Handlers map the
// sentinel errors below to HTTP results; nothing here touches the transport.
package services

import "errors"

var (
	// ErrNotFound means a referenced entity (target, comment, user) is absent.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the actor lacks rights for a mutating operation.
	ErrForbidden = errors.New("forbidden")
	// ErrEmptyContent means a required text field is empty after trimming.
	ErrEmptyContent = errors.New("content must not be empty")
	// ErrSelfFollow means a user attempted to follow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")
	// ErrAlreadyFollowing means the follow relationship already exists.
	ErrAlreadyFollowing = errors.New("already following this user")
)
