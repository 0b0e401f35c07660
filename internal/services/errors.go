package services

import "errors"

// ErrValidation marks request data the service refuses; handlers answer 400.
var ErrValidation = errors.New("validation error")
