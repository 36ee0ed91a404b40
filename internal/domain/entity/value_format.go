package entity

import (
	"crypto/rand"
	"fmt"
	"io"
	"regexp"
	"strings"

	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
)

const (
	KeyPrefix   = "VIP"
	TokenPrefix = "TOK"

	valueCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	keyGroupLen  = 6
	tokenBodyLen = 32
)

var (
	keyValuePattern   = regexp.MustCompile(`^VIP-[A-Z0-9]{6}-[A-Z0-9]{6}$`)
	tokenValuePattern = regexp.MustCompile(`^TOK-[A-Z0-9]{32}$`)
)

// NormalizeKeyValue trims a submitted key and checks its format
func NormalizeKeyValue(value string) (string, error) {
	value = strings.TrimSpace(value)
	if !keyValuePattern.MatchString(value) {
		return "", fmt.Errorf("%w: %q does not match %s-XXXXXX-XXXXXX", errs.ErrInvalidKeyFormat, value, KeyPrefix)
	}
	return value, nil
}

// IsTokenValue reports whether value has the generated token shape
func IsTokenValue(value string) bool {
	return tokenValuePattern.MatchString(value)
}

// GenerateKeyValue returns VIP-XXXXXX-XXXXXX using random bytes from r (crypto/rand when nil)
func GenerateKeyValue(r io.Reader) (string, error) {
	first, err := randomString(r, keyGroupLen)
	if err != nil {
		return "", err
	}
	second, err := randomString(r, keyGroupLen)
	if err != nil {
		return "", err
	}
	return KeyPrefix + "-" + first + "-" + second, nil
}

// GenerateTokenValue returns TOK- followed by 32 uppercase alphanumerics
func GenerateTokenValue(r io.Reader) (string, error) {
	body, err := randomString(r, tokenBodyLen)
	if err != nil {
		return "", err
	}
	return TokenPrefix + "-" + body, nil
}

func randomString(r io.Reader, n int) (string, error) {
	if r == nil {
		r = rand.Reader
	}
	// rejection sampling keeps the charset distribution uniform
	const limit = 256 - 256%len(valueCharset)
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", fmt.Errorf("%w: reading random bytes: %s", errs.ErrInternal, err.Error())
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, valueCharset[int(b)%len(valueCharset)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
