package plagiarism

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
)

// tokens of this many runes or fewer are ignored by Embed
const minTokenLen = 2

// Hash returns the hex SHA-256 digest of the trimmed, lower-cased content
func Hash(content string) (string, error) {
	normalized := normalize(content)
	if normalized == "" {
		return "", fmt.Errorf("%w: content is empty", models.ErrInvalidInput)
	}

	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:]), nil
}

// Embed builds the term-frequency vector of content. Frequencies are
// relative to the number of counted tokens, so they sum to 1.
func Embed(content string) map[string]float64 {
	terms := make(map[string]float64)

	total := 0
	for _, tok := range tokenize(content) {
		if utf8.RuneCountInString(tok) <= minTokenLen {
			continue
		}
		terms[tok]++
		total++
	}

	for term, count := range terms {
		terms[term] = count / float64(total)
	}

	return terms
}

// Fingerprint composes Hash and Embed
func Fingerprint(content string) (models.Fingerprint, error) {
	digest, err := Hash(content)
	if err != nil {
		return models.Fingerprint{}, err
	}

	return models.Fingerprint{
		Digest:          digest,
		TermFrequencies: Embed(content),
	}, nil
}

// CertificateID returns CERT-<base36 unix millis>-<16 hex chars>, upper-cased.
// Uniqueness is advisory; storage enforces it with a unique index.
func CertificateID() (string, error) {
	return certificateID(time.Now(), rand.Reader)
}

func certificateID(now time.Time, entropy io.Reader) (string, error) {
	buf := make([]byte, 8)
	if _, err := io.ReadFull(entropy, buf); err != nil {
		return "", fmt.Errorf("failed to read certificate entropy: %w", err)
	}

	id := "CERT-" + strconv.FormatInt(now.UnixMilli(), 36) + "-" + hex.EncodeToString(buf)
	return strings.ToUpper(id), nil
}

func normalize(content string) string {
	return strings.ToLower(strings.TrimSpace(content))
}

// tokenize splits lower-cased content into runs of letters and digits
func tokenize(content string) []string {
	return strings.FieldsFunc(strings.ToLower(content), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
