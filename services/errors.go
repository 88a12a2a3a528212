package services

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when an authenticated user is not the owner.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidCredentials covers both unknown email and wrong password so that
// login failures never reveal whether an account exists.
var ErrInvalidCredentials = errors.New("invalid credentials")
