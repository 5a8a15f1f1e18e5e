package shortener

import (
	"fmt"
	"net/url"
	"strings"
)

// MaxAliasLength bounds caller-supplied custom aliases. Generated codes are
// bounded separately by the configured code length.
const MaxAliasLength = 32

// ValidateURL checks that raw is a well-formed absolute http(s) URL.
// It is called before the generator so malformed input never consumes a code.
func ValidateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidURL)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https", ErrInvalidURL)
	}

	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}

	return nil
}

// ValidateAlias checks that a caller-supplied code uses only alphabet
// symbols and fits the alias length bound.
func ValidateAlias(alias string) error {
	if alias == "" {
		return fmt.Errorf("%w: empty alias", ErrInvalidURL)
	}

	if len(alias) > MaxAliasLength {
		return fmt.Errorf("%w: alias longer than %d characters", ErrInvalidURL, MaxAliasLength)
	}

	for _, c := range alias {
		if !strings.ContainsRune(Alphabet, c) {
			return fmt.Errorf("%w: alias contains characters outside [0-9a-zA-Z]", ErrInvalidURL)
		}
	}

	return nil
}
