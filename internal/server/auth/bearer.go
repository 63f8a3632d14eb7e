package auth

import (
	"fmt"
	"strings"
)

// ParseBearerToken extracts the token from an Authorization value of the
// form "Bearer <token>". The scheme is matched case-insensitively.
func ParseBearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", fmt.Errorf("%w: missing bearer scheme", ErrAuthentication)
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("%w: empty bearer token", ErrAuthentication)
	}
	return token, nil
}
