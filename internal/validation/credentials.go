package validation

import "regexp"

// Username and password length bounds.
const (
	MinUsernameLen = 5
	MaxUsernameLen = 20
	MinPasswordLen = 8
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	passwordPattern = regexp.MustCompile(`^[a-zA-Z0-9!@#$%^&*()_]+$`)
)

// ValidateCredentials checks username and password against the syntactic
// policy: non-empty, username 5-20 characters of [A-Za-z0-9_], password at
// least 8 characters of [A-Za-z0-9!@#$%^&*()_]. It runs before any storage
// access so malformed input never reaches the store.
func ValidateCredentials(username, password string) bool {
	if username == "" || password == "" {
		return false
	}

	if len(username) < MinUsernameLen || len(username) > MaxUsernameLen || len(password) < MinPasswordLen {
		return false
	}

	if !usernamePattern.MatchString(username) || !passwordPattern.MatchString(password) {
		return false
	}

	return true
}

// ValidateUsername checks the username alone, for operations that take no
// password.
func ValidateUsername(username string) bool {
	if len(username) < MinUsernameLen || len(username) > MaxUsernameLen {
		return false
	}
	return usernamePattern.MatchString(username)
}

// ValidatePassword checks the password alone, for password change.
func ValidatePassword(password string) bool {
	if len(password) < MinPasswordLen {
		return false
	}
	return passwordPattern.MatchString(password)
}
