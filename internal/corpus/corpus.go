// Package corpus loads and prepares text documents for word-embedding
// training: tokenization, vocabulary building, integer encoding, and
// context-window training sets.
package corpus

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// tokenRe keeps apostrophes inside words and splits the listed punctuation
// into standalone tokens.
var tokenRe = regexp.MustCompile(`[\w']+|[;:()&.,!?"-]`)

// Book holds a tokenized document and its basic statistics.
type Book struct {
	// Words is the document in original order, lower-cased.
	Words []string
	// Counts maps each unique word to its number of occurrences.
	Counts map[string]int
	// Lines and WordCount are totals over the lines actually read.
	Lines     int
	WordCount int
}

// LoadBook reads a Project Gutenberg text and returns its word list and
// counts. The Gutenberg preamble (before "*** START"), license tail (after
// "*** END"), chapter headings, and "Project Gutenberg" boilerplate lines
// are skipped.
func LoadBook(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening book: %w", err)
	}
	defer f.Close()

	book := &Book{Counts: make(map[string]int)}
	inBook := false

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "*** START") {
			inBook = true
			continue
		}
		if strings.Contains(line, "*** END") {
			break
		}
		if !inBook || strings.Contains(line, "CHAPTER") || strings.Contains(line, "Project Gutenberg") {
			continue
		}

		words := tokenRe.FindAllString(strings.ToLower(line), -1)
		for _, w := range words {
			book.Counts[w]++
		}
		book.Words = append(book.Words, words...)
		book.Lines++
		book.WordCount += len(words)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading book: %w", err)
	}

	return book, nil
}

// BuildVocab maps the size most frequent words to ids, most common first.
// Frequency ties break lexicographically so the mapping is deterministic.
func BuildVocab(counts map[string]int, size int) map[string]int {
	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})

	if size < len(words) {
		words = words[:size]
	}

	vocab := make(map[string]int, len(words))
	for id, w := range words {
		vocab[w] = id
	}
	return vocab
}

// ToIDs encodes words through the vocabulary. Words outside the vocabulary
// map to len(vocab).
func ToIDs(words []string, vocab map[string]int) []int {
	unknown := len(vocab)
	ids := make([]int, len(words))
	for i, w := range words {
		if id, ok := vocab[w]; ok {
			ids[i] = id
		} else {
			ids[i] = unknown
		}
	}
	return ids
}

// BuildWordArray loads a book, builds its vocabulary, and encodes the
// document in one go.
func BuildWordArray(path string, vocabSize int) ([]int, map[string]int, *Book, error) {
	book, err := LoadBook(path)
	if err != nil {
		return nil, nil, nil, err
	}
	vocab := BuildVocab(book.Counts, vocabSize)
	return ToIDs(book.Words, vocab), vocab, book, nil
}

// TrainingSet builds a CBOW training set: for every target word, the
// features are the window ids on each side of it. Targets at the document
// edges without a full window are dropped.
func TrainingSet(ids []int, window int) (features [][]int, targets []int, err error) {
	if window < 1 {
		return nil, nil, fmt.Errorf("corpus: window must be at least 1, got %d", window)
	}
	n := len(ids)
	if n <= 2*window {
		return nil, nil, fmt.Errorf("corpus: need more than %d words for window %d, got %d", 2*window, window, n)
	}

	count := n - 2*window
	features = make([][]int, count)
	targets = make([]int, count)
	for i := window; i < n-window; i++ {
		row := make([]int, 0, 2*window)
		for off := -window; off <= window; off++ {
			if off == 0 {
				continue
			}
			row = append(row, ids[i+off])
		}
		features[i-window] = row
		targets[i-window] = ids[i]
	}
	return features, targets, nil
}
