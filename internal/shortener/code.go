package shortener

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DefaultCodeLength is the length of generated short codes unless configured
// otherwise.
const DefaultCodeLength = 6

const (
	minCodeLength = 4
	maxCodeLength = 32
)

// CodeFunc derives a short code from a long URL. Implementations must be
// deterministic and pure; uniqueness is enforced by the storage layer, not
// assumed from the code itself.
type CodeFunc func(longURL string) string

// NewCodeFunc returns a CodeFunc producing a fixed-length prefix of the
// hex-encoded SHA-256 digest of the input string. Length must be between 4
// and 32 characters.
func NewCodeFunc(length int) (CodeFunc, error) {
	if length < minCodeLength || length > maxCodeLength {
		return nil, fmt.Errorf("code length must be between %d and %d, got %d", minCodeLength, maxCodeLength, length)
	}

	return func(longURL string) string {
		digest := sha256.Sum256([]byte(longURL))

		return hex.EncodeToString(digest[:])[:length]
	}, nil
}
