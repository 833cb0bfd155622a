package settings

import "errors"

var (
	// ErrInvalidReference is returned when a tenant reference is neither a
	// host tenant, the global scope, nor a digit-only identifier.
	ErrInvalidReference = errors.New("invalid tenant reference")
	// ErrNoEntry is returned by Delete when the tenant has no settings
	// document.
	ErrNoEntry = errors.New("no settings entry for tenant")
	// ErrAlreadyInitialized is returned by a second call to Init.
	ErrAlreadyInitialized = errors.New("provider already initialized")
	// ErrNotInitialized is returned when the propagator is attached before
	// Init has completed.
	ErrNotInitialized = errors.New("provider not initialized")
)
