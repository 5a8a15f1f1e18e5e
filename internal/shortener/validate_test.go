package shortener_test

import (
	"strings"
	"testing"

	"github.com/linkfold/linkfold/internal/shortener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateURL(t *testing.T) {
	t.Run("accepts absolute http and https urls", func(t *testing.T) {
		require.NoError(t, shortener.ValidateURL("https://example.com/a"))
		require.NoError(t, shortener.ValidateURL("http://example.com:8080/path?q=1"))
	})

	t.Run("rejects empty input", func(t *testing.T) {
		err := shortener.ValidateURL("   ")

		assert.ErrorIs(t, err, shortener.ErrInvalidURL)
	})

	t.Run("rejects relative urls", func(t *testing.T) {
		err := shortener.ValidateURL("/just/a/path")

		assert.ErrorIs(t, err, shortener.ErrInvalidURL)
	})

	t.Run("rejects unsupported schemes", func(t *testing.T) {
		err := shortener.ValidateURL("ftp://example.com/file")

		assert.ErrorIs(t, err, shortener.ErrInvalidURL)
	})

	t.Run("rejects urls without a host", func(t *testing.T) {
		err := shortener.ValidateURL("https:///no-host")

		assert.ErrorIs(t, err, shortener.ErrInvalidURL)
	})
}

func TestValidateAlias(t *testing.T) {
	t.Run("accepts alphanumeric aliases", func(t *testing.T) {
		require.NoError(t, shortener.ValidateAlias("promo"))
		require.NoError(t, shortener.ValidateAlias("X9z"))
	})

	t.Run("rejects empty alias", func(t *testing.T) {
		assert.ErrorIs(t, shortener.ValidateAlias(""), shortener.ErrInvalidURL)
	})

	t.Run("rejects alias over the length bound", func(t *testing.T) {
		long := strings.Repeat("a", shortener.MaxAliasLength+1)

		assert.ErrorIs(t, shortener.ValidateAlias(long), shortener.ErrInvalidURL)
	})

	t.Run("rejects alias with symbols outside the alphabet", func(t *testing.T) {
		assert.ErrorIs(t, shortener.ValidateAlias("pro mo"), shortener.ErrInvalidURL)
		assert.ErrorIs(t, shortener.ValidateAlias("promo!"), shortener.ErrInvalidURL)
	})
}
