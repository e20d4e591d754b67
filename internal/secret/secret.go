// Package secret generates random secrets such as signing keys
package secret

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// New reads length random bytes and returns them encoded as unpadded URL-safe base64
func New(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// MustNew is like New but panics if no random bytes could be read
func MustNew(length int) string {
	val, err := New(length)
	if err != nil {
		panic(err)
	}
	return val
}
