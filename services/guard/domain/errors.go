// Package domain holds the guard context's sentinel errors.
package domain

import "errors"

// ErrInvalidCredentials means the login username/password pair did not match
// the configured guard account. The message is deliberately vague so callers
// cannot tell which half was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")
