package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"math/big"
	mrand "math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const alphanumericChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DateSequencedID builds PREFIX-YYYY-MMDD-SEQ. When seq is nil a random
// 3-digit filler is used; that mode gives no per-day uniqueness guarantee,
// so callers that need one must supply a sequence from a persisted counter
// (store.NextSequence).
func DateSequencedID(prefix string, seq *int) string {
	now := time.Now()
	return fmt.Sprintf("%s-%s-%s-%s", prefix, now.Format("2006"), now.Format("0102"), sequencePart(seq))
}

// CompactDateSequencedID builds PREFIX-YYMMDD-SEQ with the same sequencing
// caveat as DateSequencedID.
func CompactDateSequencedID(prefix string, seq *int) string {
	now := time.Now()
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("060102"), sequencePart(seq))
}

func sequencePart(seq *int) string {
	if seq != nil {
		return fmt.Sprintf("%03d", *seq)
	}
	return fmt.Sprintf("%03d", mrand.Intn(1000))
}

// TimestampID is the current date-time to second precision plus a 3-digit
// random suffix, 17 characters total.
func TimestampID() string {
	return fmt.Sprintf("%s%03d", time.Now().Format("20060102150405"), mrand.Intn(1000))
}

// RandomAlphanumericID draws n characters uniformly from [A-Z0-9]. Not
// cryptographically strong; use ShortUniqueID where collisions matter.
func RandomAlphanumericID(n int) string {
	if n <= 0 {
		n = 8
	}
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteByte(alphanumericChars[mrand.Intn(len(alphanumericChars))])
	}
	return sb.String()
}

// ShortUniqueID derives an identifier from cryptographically strong random
// bytes: base64-encoded, stripped of '+', '/' and padding, upper-cased and
// truncated to n characters.
func ShortUniqueID(n int) (string, error) {
	if n <= 0 {
		n = 8
	}
	var sb strings.Builder
	for sb.Len() < n {
		buf := make([]byte, n)
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		enc := base64.StdEncoding.EncodeToString(buf)
		enc = strings.NewReplacer("+", "", "/", "", "=", "").Replace(enc)
		sb.WriteString(strings.ToUpper(enc))
	}
	return sb.String()[:n], nil
}

// HospitalID builds PREFIX-YYYYMMDD-HHMMSS-RRR.
func HospitalID(prefix string) string {
	now := time.Now()
	rrr, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		log.Printf("Error reading random source: %s\n", err.Error())
		return fmt.Sprintf("%s-%s-%s-%03d", prefix, now.Format("20060102"), now.Format("150405"), mrand.Intn(1000))
	}
	return fmt.Sprintf("%s-%s-%s-%03d", prefix, now.Format("20060102"), now.Format("150405"), rrr.Int64())
}

// NewGUID returns a random (version 4) UUID string.
func NewGUID() string {
	return uuid.NewString()
}

// PreferredID is the default scheme for callers that do not care which one
// is used.
func PreferredID(prefix string, seq *int) string {
	return CompactDateSequencedID(prefix, seq)
}

var idFormatPatterns = map[string]*regexp.Regexp{
	"date-sequenced": regexp.MustCompile(`^[A-Z]+-\d{4}-\d{4}-\d{3}$`),
	"compact":        regexp.MustCompile(`^[A-Z]+-\d{6}-\d{3}$`),
	"timestamp":      regexp.MustCompile(`^\d{17}$`),
	"alphanumeric":   regexp.MustCompile(`^[A-Z0-9]{8}$`),
	"hospital":       regexp.MustCompile(`^[A-Z]+-\d{8}-\d{6}-\d{3}$`),
	"guid":           regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`),
}

// ValidateIDFormat reports whether id matches the named format's fixed
// pattern. Unknown format names never match.
func ValidateIDFormat(id string, format string) bool {
	pattern, ok := idFormatPatterns[format]
	if !ok {
		return false
	}
	return pattern.MatchString(id)
}
