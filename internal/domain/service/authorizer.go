package service

import "context"

// Authorizer decides whether a caller may act on the account it names.
type Authorizer interface {
	// Validate reports whether password is the current password of email.
	// It is fail-closed: an empty password, an unknown email and any storage
	// failure all answer false, and the caller cannot tell them apart.
	Validate(ctx context.Context, email, password string) bool
}
