package shortener

import (
	"fmt"
	"net/url"
)

// ValidateURL checks that the input is a well-formed absolute URL with both
// a scheme and a host. The input is never normalized; codes are derived from
// the exact string the caller submitted.
func ValidateURL(longURL string) error {
	if longURL == "" {
		return fmt.Errorf("%w: empty url", ErrInvalidURL)
	}

	u, err := url.Parse(longURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: missing scheme or host", ErrInvalidURL)
	}

	return nil
}
