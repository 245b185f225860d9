package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewStateToken returns a hex-encoded random token used to key
// pending-verification records from the browser cookie.
func NewStateToken(nBytes int) (string, error) {
	if nBytes <= 0 {
		nBytes = 32
	}
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
