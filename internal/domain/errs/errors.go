package errs

import (
	"errors"
	"net/http"
)

// Sentinel errors for the marketplace domain. The redemption engine returns
// a distinct error per failed precondition so callers can render precise
// messages; handlers map them to HTTP statuses via HTTPStatus.
var (
	// ErrUserNotFound is returned when the referenced user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when registering an already-registered email
	ErrEmailTaken = errors.New("user already exists")

	// ErrInvalidCredentials is returned on a failed login
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidOTP is returned when the verification code is missing,
	// expired or does not match the one issued for the email
	ErrInvalidOTP = errors.New("invalid or expired otp")

	// ErrItemNotFound is returned when the referenced item doesn't exist
	ErrItemNotFound = errors.New("item not found")

	// ErrItemNotApproved is returned when redeeming an item the
	// administrator has not approved
	ErrItemNotApproved = errors.New("item not approved")

	// ErrItemNotAvailable is returned when the item has already left the
	// available state, including losing a concurrent redemption race
	ErrItemNotAvailable = errors.New("item not available")

	// ErrSelfRedemption is returned when a user redeems their own listing
	ErrSelfRedemption = errors.New("cannot redeem your own item")

	// ErrInsufficientPoints is returned when the buyer's balance does not
	// cover the item price
	ErrInsufficientPoints = errors.New("not enough points to redeem")

	// ErrNotAuthorized is returned when a non-administrator calls an
	// administrator-only operation
	ErrNotAuthorized = errors.New("administrator role required")

	// ErrMailUnavailable is returned when the outbound mail queue cannot
	// accept a job
	ErrMailUnavailable = errors.New("mail service unavailable")
)

// HTTPStatus maps a domain error to the status code the API surface uses.
// Unknown errors are treated as internal.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrItemNotFound), errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidOTP),
		errors.Is(err, ErrItemNotApproved),
		errors.Is(err, ErrItemNotAvailable),
		errors.Is(err, ErrSelfRedemption),
		errors.Is(err, ErrInsufficientPoints):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrMailUnavailable):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
