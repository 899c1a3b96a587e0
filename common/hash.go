package common

import (
	"encoding/binary"
	"encoding/hex"
	"strings"
	"unicode/utf16"

	"golang.org/x/crypto/md4"
)

// IsNTLMHash reports whether s is exactly 32 hexadecimal characters. Case is
// not significant.
func IsNTLMHash(s string) bool {
	if len(s) != NTLM_HASH_LENGTH {
		return false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}

	return true
}

// NormalizeHash returns the canonical form of a hash, used as the key of every
// hash mapping.
func NormalizeHash(hash string) string {
	return strings.ToLower(strings.TrimSpace(hash))
}

// NTLM returns the NT hash of a plaintext as lowercase hex
func NTLM(plaintext string) string {
	h := md4.New()

	// MD4 over the UTF-16LE encoding of the password
	input := utf16.Encode([]rune(plaintext))
	binary.Write(h, binary.LittleEndian, input)

	return hex.EncodeToString(h.Sum(nil))
}
