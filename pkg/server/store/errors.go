package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is the parent of every lookup failure.
var ErrNotFound = errors.New("not found")

// ErrSecretNotFound is returned when a secret doesn't exist
var ErrSecretNotFound = fmt.Errorf("secret %w", ErrNotFound)

// ErrProjectNotFound is returned when a project doesn't exist
var ErrProjectNotFound = fmt.Errorf("project %w", ErrNotFound)

// ErrAlreadyExists is returned when a caller-supplied identifier is taken
var ErrAlreadyExists = errors.New("identifier already exists")
