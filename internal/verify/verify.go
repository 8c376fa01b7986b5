package verify

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/puzzleworks/daily-riddle/internal/puzzle"
)

// Digester is the one-way hash collaborator. It is allowed to fail
// (unavailable primitive, bad input); the verifier treats any failure as
// "guess not verified" and never as a correct answer.
type Digester interface {
	Sum(data []byte) ([]byte, error)
}

// SHA256Digester is the production digest, matching the hex digests stored in
// the puzzle dataset.
type SHA256Digester struct{}

// Sum hashes data with SHA-256.
func (SHA256Digester) Sum(data []byte) ([]byte, error) {
	sum := sha256.Sum256(data)
	return sum[:], nil
}

// Normalize lowercases a guess and strips all whitespace, so "The  Letter M"
// and "theletterm" verify identically. Stored plaintext answers go through
// the same normalization before comparison.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Verifier checks guesses against a puzzle's stored answer, plaintext or
// digest form.
type Verifier struct {
	digest Digester
	logger zerolog.Logger
}

// New builds a verifier around the given digest primitive.
func New(digest Digester, logger zerolog.Logger) *Verifier {
	return &Verifier{digest: digest, logger: logger}
}

// Verify reports whether rawGuess solves p. For hashed answers the normalized
// guess is digested and compared hex-to-hex, case-insensitively; a digest
// failure logs and returns false (fails closed).
func (v *Verifier) Verify(rawGuess string, p puzzle.Puzzle) bool {
	guess := Normalize(rawGuess)
	if p.AnswerHash != "" {
		sum, err := v.digest.Sum([]byte(guess))
		if err != nil {
			v.logger.Warn().Err(err).Int("puzzle_id", p.ID).Msg("digest unavailable, guess not verified")
			return false
		}
		return strings.EqualFold(hex.EncodeToString(sum), p.AnswerHash)
	}
	return guess == Normalize(p.Answer)
}
