package library

import (
	"crypto/sha256"
	"fmt"
)

func Sha256Sum(data []byte) Sha256 {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

// Sha256String hashes the utf-8 bytes of s. Role identifiers are derived this way.
func Sha256String(s string) Sha256 {
	return Sha256Sum([]byte(s))
}
