package analyses

import "errors"

// ErrInvalidProfile wraps every client-side validation failure.
var ErrInvalidProfile = errors.New("invalid account profile")
