package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const separator = "|"

// EncodeMultiFieldToken creates an opaque cursor from ordered key fields.
func EncodeMultiFieldToken(fields ...string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strings.Join(fields, separator)))
}

// DecodeMultiFieldToken decodes a cursor and checks it carries exactly want fields.
func DecodeMultiFieldToken(token string, want int) ([]string, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	parts := strings.Split(string(decodedBytes), separator)
	if len(parts) != want {
		return nil, fmt.Errorf("invalid pagination token format (expected %d fields, got %d)", want, len(parts))
	}
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("invalid pagination token format (empty field)")
		}
	}
	return parts, nil
}

// EncodeDateIDToken builds the keyset cursor used by date ordered listings.
func EncodeDateIDToken(date, id string) string {
	return EncodeMultiFieldToken(date, id)
}

// DecodeDateIDToken is the inverse of EncodeDateIDToken.
func DecodeDateIDToken(token string) (date string, id string, err error) {
	parts, err := DecodeMultiFieldToken(token, 2)
	if err != nil {
		return "", "", err
	}
	return parts[0], parts[1], nil
}
