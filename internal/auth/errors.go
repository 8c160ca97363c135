package auth

import "github.com/noah-isme/qanda/internal/shared"

var (
	// ErrInvalidInput indicates an empty email or password.
	ErrInvalidInput = shared.NewError(shared.KindInvalidInput, "email and password are required")
	// ErrAccountExists indicates the email is already registered.
	ErrAccountExists = shared.NewError(shared.KindConflict, "account already exists")
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = shared.NewError(shared.KindInvalidCredentials, "invalid credentials")
	// ErrStorage wraps account store failures other than the ones above.
	ErrStorage = shared.NewError(shared.KindInternal, "account storage failure")

	// ErrTokenInvalid covers tampering, a foreign key and unparsable claims.
	ErrTokenInvalid = shared.NewError(shared.KindUnauthorized, "token invalid")
	// ErrTokenExpired indicates now >= expires_at.
	ErrTokenExpired = shared.NewError(shared.KindUnauthorized, "token expired")
	// ErrTokenNotYetValid indicates now < not_before.
	ErrTokenNotYetValid = shared.NewError(shared.KindUnauthorized, "token not yet valid")
)

// Errors an AccountStore reports; the Service translates them.
var (
	ErrAccountNotFound = shared.NewError(shared.KindNotFound, "account not found")
	ErrUniqueViolation = shared.NewError(shared.KindConflict, "unique violation")
)
