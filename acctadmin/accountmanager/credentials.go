package accountmanager

import (
	"crypto/rand"
	"math/big"
	"strings"
	"unicode"
)

const (
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars   = "0123456789"
	symbolChars  = "!@#$%^&*"
	allPassChars = lowerChars + upperChars + digitChars + symbolChars

	DefaultPasswordLength = 12
	DefaultEmailDomain    = "company.com"
)

// GenerateUsername builds first initial + last name, lowercased with all
// whitespace removed. It returns "" when either name is blank.
func GenerateUsername(firstName, lastName string) string {
	first := []rune(strings.TrimSpace(firstName))
	last := strings.TrimSpace(lastName)
	if len(first) == 0 || last == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range string(first[0]) + last {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// DefaultEmail returns username@domain, using DefaultEmailDomain when domain
// is empty.
func DefaultEmail(username, domain string) string {
	if domain == "" {
		domain = DefaultEmailDomain
	}
	return username + "@" + domain
}

// GeneratePassword returns a random password of the given length drawn from
// letters, digits and symbols, with at least one of each class.
func GeneratePassword(length int) string {
	if length < 4 {
		length = 4
	}

	buf := make([]byte, length)
	buf[0] = pickByte(lowerChars)
	buf[1] = pickByte(upperChars)
	buf[2] = pickByte(digitChars)
	buf[3] = pickByte(symbolChars)
	for i := 4; i < length; i++ {
		buf[i] = pickByte(allPassChars)
	}

	// Fisher-Yates
	for i := length - 1; i > 0; i-- {
		j := randIntn(i + 1)
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

func pickByte(s string) byte {
	return s[randIntn(len(s))]
}

func randIntn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failure is unrecoverable
		panic("crypto/rand: " + err.Error())
	}
	return int(v.Int64())
}
