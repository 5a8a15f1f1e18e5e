package shortener

import "strings"

// Alphabet is the symbol set used for short codes, ordered by digit value.
const Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

const alphabetBase = uint64(len(Alphabet))

// EncodeBase62 converts a sequence number to its base62 representation,
// most-significant symbol first, without leading zero symbols.
func EncodeBase62(n uint64) string {
	if n == 0 {
		return string(Alphabet[0])
	}

	var buf [11]byte // enough for MaxUint64

	i := len(buf)
	for n > 0 {
		i--
		buf[i] = Alphabet[n%alphabetBase]
		n /= alphabetBase
	}

	return string(buf[i:])
}

// DecodeBase62 converts a base62 string back to its sequence number.
// It returns false if the string contains symbols outside the alphabet.
func DecodeBase62(code string) (uint64, bool) {
	if code == "" {
		return 0, false
	}

	var n uint64

	for _, c := range code {
		pos := strings.IndexRune(Alphabet, c)
		if pos == -1 {
			return 0, false
		}

		n = n*alphabetBase + uint64(pos)
	}

	return n, true
}

// MaxSequence returns the largest sequence number whose base62 encoding fits
// in length symbols.
func MaxSequence(length int) uint64 {
	max := uint64(0)
	for i := 0; i < length; i++ {
		max = max*alphabetBase + (alphabetBase - 1)
	}

	return max
}
