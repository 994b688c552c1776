// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrDuplicateVerifiedUser is returned by Signup when a verified account already owns the email.
	ErrDuplicateVerifiedUser = errors.New("user already exists with this email")

	// ErrInvalidUser is returned when a user id is not a well-formed UUID.
	ErrInvalidUser = errors.New("invalid userId")

	// ErrInvalidCredentials is returned for both unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidOrExpiredOtp is returned when a verification code does not match or is past its window.
	ErrInvalidOrExpiredOtp = errors.New("invalid or expired OTP")

	// ErrOTPNotFound is returned by OTP stores when the user has no live record.
	ErrOTPNotFound = errors.New("otp not found")
)

// ValidationError reports caller input that failed a business rule.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
