package puzzle

import (
	"encoding/json"
	"fmt"
	"os"
)

// Pool is the immutable puzzle dataset, loaded once at startup and only read
// afterwards.
type Pool struct {
	puzzles []Puzzle
	byID    map[int]Puzzle
}

// NewPool validates the given puzzles and builds the read-only pool.
func NewPool(puzzles []Puzzle) (*Pool, error) {
	if len(puzzles) == 0 {
		return nil, fmt.Errorf("empty puzzle pool")
	}
	byID := make(map[int]Puzzle, len(puzzles))
	for _, p := range puzzles {
		if err := p.validate(); err != nil {
			return nil, err
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("puzzle %d: duplicate id", p.ID)
		}
		byID[p.ID] = p
	}
	return &Pool{puzzles: puzzles, byID: byID}, nil
}

// LoadFile reads the pool from a JSON file of the form {"puzzles": [...]}.
func LoadFile(path string) (*Pool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pool: %w", err)
	}
	var doc struct {
		Puzzles []Puzzle `json:"puzzles"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode pool: %w", err)
	}
	return NewPool(doc.Puzzles)
}

// IDs returns the puzzle ids in authored order.
func (p *Pool) IDs() []int {
	ids := make([]int, len(p.puzzles))
	for i, pz := range p.puzzles {
		ids[i] = pz.ID
	}
	return ids
}

// Get looks a puzzle up by id.
func (p *Pool) Get(id int) (Puzzle, bool) {
	pz, ok := p.byID[id]
	return pz, ok
}

// Len reports the pool size.
func (p *Pool) Len() int {
	return len(p.puzzles)
}
