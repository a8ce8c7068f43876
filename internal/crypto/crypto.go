package crypto

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"errors"
)

// ErrEmptyKey is returned when a signing key is missing.
var ErrEmptyKey = errors.New("signing key cannot be empty")

// SignHMACSHA512 computes HMAC-SHA512 of message keyed by key and returns the
// digest encoded as standard base64 (with padding).
func SignHMACSHA512(key, message string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	mac := hmac.New(sha512.New, []byte(key))
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// VerifyHMACSHA512 reports whether signature is the base64 HMAC-SHA512 of message.
// The comparison is constant time.
func VerifyHMACSHA512(key, message, signature string) bool {
	expected, err := SignHMACSHA512(key, message)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(signature))
}

// EncodeBase64 returns the standard base64 encoding of s. An empty input
// yields an empty string.
func EncodeBase64(s string) string {
	if s == "" {
		return ""
	}
	return base64.StdEncoding.EncodeToString([]byte(s))
}
