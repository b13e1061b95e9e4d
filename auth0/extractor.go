package auth0

import (
	"errors"
	"strings"
)

// bearerScheme is matched case-sensitively.
const bearerScheme = "Bearer"

// ParseAuthorizationHeader returns the bearer credential carried by the raw
// value of an Authorization header. An empty value means the header is absent.
func ParseAuthorizationHeader(value string) (string, error) {
	if value == "" {
		return "", fail(ErrMissingHeader, nil)
	}

	parts := strings.Split(value, " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", fail(ErrMalformedHeader, errors.New("expected \"Bearer <token>\""))
	}

	if parts[0] != bearerScheme {
		return "", fail(ErrInvalidScheme, errors.New("unexpected scheme "+parts[0]))
	}

	return parts[1], nil
}
