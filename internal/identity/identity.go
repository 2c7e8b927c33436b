// Package identity derives stable user identifiers from email addresses.
package identity

import "strings"

// Normalize maps an email address to an identifier accepted by both the chat
// provider and the database key space. Every rune outside [A-Za-z0-9_-] becomes
// an underscore, so the result is safe to embed in URLs and channel IDs.
// Normalize is total and idempotent.
func Normalize(email string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '_' || r == '-':
			return r
		default:
			return '_'
		}
	}, email)
}
