package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Short returns the first 12 hex digits
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// InputHash fingerprints one method invocation
type InputHash Hash

func (h InputHash) String() string { return Hash(h).String() }

// ComputeInputHash hashes a method kind with its input arrays. Values are
// written in shortest round-trip form, so equal inputs always hash equal.
// Missing flags hash the same as all-zero flags.
func ComputeInputHash(kind string, values []float64, flags []int) InputHash {
	var data strings.Builder
	data.WriteString(kind)
	for i, v := range values {
		data.WriteByte('|')
		data.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		if i < len(flags) && flags[i] != 0 {
			data.WriteByte(':')
			data.WriteString(strconv.Itoa(flags[i]))
		}
	}
	return InputHash(NewHash([]byte(data.String())))
}
