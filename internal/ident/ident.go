// Package ident converts between 128-bit identifiers and their text forms.
package ident

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/blake2b"
	"lukechampine.com/uint128"
)

var (
	ErrEmpty    = errors.New("empty identifier")
	ErrSyntax   = errors.New("invalid identifier syntax")
	ErrOverflow = errors.New("identifier exceeds 128 bits")
)

// Parse reads a decimal number, a 0x-prefixed hex number, or a 32-digit hex
// string with optional dashes (UUID form).
func Parse(s string) (uint128.Uint128, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return uint128.Zero, ErrEmpty
	}

	digits, base := s, 10
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		digits, base = s[2:], 16
	case strings.Contains(s, "-"):
		digits, base = strings.ReplaceAll(s, "-", ""), 16
		if len(digits) != 32 {
			return uint128.Zero, fmt.Errorf("%q: %w", s, ErrSyntax)
		}
	}

	if digits == "" || strings.ContainsAny(digits, "+-_ ") {
		return uint128.Zero, fmt.Errorf("%q: %w", s, ErrSyntax)
	}

	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return uint128.Zero, fmt.Errorf("%q: %w", s, ErrSyntax)
	}
	if n.BitLen() > 128 {
		return uint128.Zero, fmt.Errorf("%q: %w", s, ErrOverflow)
	}
	return uint128.FromBig(n), nil
}

func Format(id uint128.Uint128) string {
	return id.String()
}

// FormatHex returns the id as 32 lowercase hex digits.
func FormatHex(id uint128.Uint128) string {
	return fmt.Sprintf("%016x%016x", id.Hi, id.Lo)
}

// Hash derives an id from an arbitrary name: a 16-byte BLAKE2b digest read
// big-endian.
func Hash(name string) uint128.Uint128 {
	h, err := blake2b.New(16, nil)
	if err != nil {
		// only fails for sizes outside 1..64 or keys over 64 bytes
		panic(err)
	}
	h.Write([]byte(name))
	return uint128.FromBytesBE(h.Sum(nil))
}

// Resolve parses s, falling back to Hash when hashNames is set. The second
// result reports whether s was hashed.
func Resolve(s string, hashNames bool) (uint128.Uint128, bool, error) {
	id, err := Parse(s)
	if err == nil {
		return id, false, nil
	}
	if !hashNames || errors.Is(err, ErrEmpty) || errors.Is(err, ErrOverflow) {
		return uint128.Zero, false, err
	}
	return Hash(strings.TrimSpace(s)), true, nil
}
