package domain

import "errors"

// Write-path and auth failures that callers branch on. Read failures
// (FetchAll) are never surfaced through these; they degrade to an empty cache.
var (
	ErrUnauthenticated      = errors.New("no authenticated identity")
	ErrUnauthorized         = errors.New("identity lacks rights for this record")
	ErrBackendUnavailable   = errors.New("no backend configured")
	ErrUploadFailed         = errors.New("image upload failed")
	ErrValidation           = errors.New("invalid listing input")
	ErrConfirmationRequired = errors.New("deletion requires explicit confirmation")
	ErrUploadInProgress     = errors.New("an image upload is still in progress")
	ErrSubmissionBusy       = errors.New("a submission is already in flight")
	ErrListingNotFound      = errors.New("listing not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrNoSession          = errors.New("no active session")
)
