// Package common defines shared sentinel errors used across the vault
// service, repositories and CLI. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Store construction errors.
	ErrKeyUnavailable = errors.New("encryption key unavailable")
)
