package corpus

import (
	"encoding/gob"
	"fmt"
	"os"
)

// WordArray is the saved form of an encoded document.
type WordArray struct {
	IDs   []int
	Vocab map[string]int
}

// Save writes the encoded document and vocabulary to path for fast reload.
func Save(path string, ids []int, vocab map[string]int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating word array file: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(WordArray{IDs: ids, Vocab: vocab}); err != nil {
		return fmt.Errorf("error encoding word array: %w", err)
	}
	return nil
}

// Load reads a word array previously written by Save.
func Load(path string) ([]int, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening word array file: %w", err)
	}
	defer f.Close()

	var wa WordArray
	if err := gob.NewDecoder(f).Decode(&wa); err != nil {
		return nil, nil, fmt.Errorf("error decoding word array: %w", err)
	}
	return wa.IDs, wa.Vocab, nil
}
