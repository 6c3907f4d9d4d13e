package auth

import "errors"

var (
	// ErrCredentialsRequired means email or password was missing (400)
	ErrCredentialsRequired = errors.New("email and password are required")
	// ErrUserExists means the email is already registered (409)
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so callers cannot tell the two apart (401)
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMissingToken means no "Bearer <token>" header was presented (401)
	ErrMissingToken = errors.New("no token provided")
	// ErrInvalidToken means the token failed verification (403)
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is reported by token services; the gate folds it into ErrInvalidToken
	ErrExpiredToken = errors.New("token has expired")

	ErrPasswordMismatch = errors.New("password does not match hash")
	ErrMalformedHash    = errors.New("malformed password hash")
)

// Client-facing messages. The same text is used for both login failure
// causes and for every gate rejection of a given class.
const (
	MsgCredentialsRequired = "Email and password are required."
	MsgUserExists          = "User already exists."
	MsgRegistered          = "User registered successfully."
	MsgRegistrationFailed  = "Registration failed."
	MsgInvalidCredentials  = "Invalid credentials."
	MsgLoginFailed         = "Login failed."
	MsgNoToken             = "No token provided."
	MsgInvalidToken        = "Invalid token."
	MsgInternalError       = "internal server error"
)
