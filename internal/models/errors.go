package models

import "errors"

// ErrDuplicateTitle is returned by the opportunity store when a create
// collides with an existing title. The dedup gate treats it as a skip.
var ErrDuplicateTitle = errors.New("opportunity title already exists")

// ErrProfileNotFound is returned by the profile service when no profile
// exists for a user ID. Matching operations downgrade it to an empty result.
var ErrProfileNotFound = errors.New("user profile not found")
