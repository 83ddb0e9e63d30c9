package domain

import "errors"

var (
	ErrProviderUnavailable = errors.New("fact provider unavailable")
	ErrBucketNameRequired  = errors.New("bucket name is required")
)
