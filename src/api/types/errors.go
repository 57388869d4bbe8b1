package types

import "errors"

// Error taxonomy shared by the services and the webserver. Handlers map
// these onto HTTP statuses; anything else is treated as an internal error.
var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyVerified = errors.New("rumour already verified")
	ErrDuplicateReport = errors.New("user already reported this rumour")
	ErrNotVerifier     = errors.New("user is not a verifier")
)
