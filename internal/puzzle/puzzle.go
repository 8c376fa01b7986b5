package puzzle

import "fmt"

// Puzzle is one entry of the static pool. The pool is authored offline and
// never mutated at runtime. Exactly one of Answer or AnswerHash is set:
// Answer holds the normalized plaintext, AnswerHash the lowercase hex SHA-256
// of the normalized plaintext so the solution is not readable in the dataset.
type Puzzle struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Text       string `json:"text"`
	Hint       string `json:"hint"`
	Answer     string `json:"answer,omitempty"`
	AnswerHash string `json:"answer_hash,omitempty"`
}

func (p Puzzle) validate() error {
	if p.Text == "" {
		return fmt.Errorf("puzzle %d: empty text", p.ID)
	}
	hasPlain := p.Answer != ""
	hasHash := p.AnswerHash != ""
	if hasPlain == hasHash {
		return fmt.Errorf("puzzle %d: exactly one of answer or answer_hash required", p.ID)
	}
	return nil
}
