package session

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// Claims is the subset of the JWT payload the profile screen shows. The
// token is decoded client-side for display only; it is never verified
// here, the server remains the authority.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// DecodeClaims extracts the payload of a JWT without verifying its
// signature.
func DecodeClaims(token string) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Claims{}, fmt.Errorf("token is not a JWT")
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return Claims{}, fmt.Errorf("failed to decode token payload: %w", err)
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Claims{}, fmt.Errorf("failed to parse token payload: %w", err)
	}
	return claims, nil
}
