package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBook = `The Project Gutenberg eBook of Nothing
junk before the marker
*** START OF THIS PROJECT GUTENBERG EBOOK ***
CHAPTER I
The cat sat on the mat.
Don't stop, the cat said!
This line mentions Project Gutenberg and is skipped.
*** END OF THIS PROJECT GUTENBERG EBOOK ***
license text after the marker
`

func writeBook(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadBook(t *testing.T) {
	book, err := LoadBook(writeBook(t, testBook))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"the", "cat", "sat", "on", "the", "mat", ".",
		"don't", "stop", ",", "the", "cat", "said", "!",
	}, book.Words)
	assert.Equal(t, 2, book.Lines)
	assert.Equal(t, 14, book.WordCount)
	assert.Equal(t, 3, book.Counts["the"])
	assert.Equal(t, 2, book.Counts["cat"])
	assert.Equal(t, 1, book.Counts["don't"])
	assert.Equal(t, 1, book.Counts["."])
}

func TestLoadBook_MissingFile(t *testing.T) {
	_, err := LoadBook(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestBuildVocab(t *testing.T) {
	counts := map[string]int{"the": 5, "cat": 3, "mat": 3, "sat": 1}

	vocab := BuildVocab(counts, 3)
	require.Len(t, vocab, 3)

	// Most common word gets id 0; the cat/mat tie breaks lexicographically.
	assert.Equal(t, 0, vocab["the"])
	assert.Equal(t, 1, vocab["cat"])
	assert.Equal(t, 2, vocab["mat"])
	_, ok := vocab["sat"]
	assert.False(t, ok)
}

func TestToIDs_UnknownMapsToVocabSize(t *testing.T) {
	vocab := map[string]int{"the": 0, "cat": 1}

	ids := ToIDs([]string{"the", "cat", "dog", "the"}, vocab)
	assert.Equal(t, []int{0, 1, 2, 0}, ids)
}

func TestBuildWordArray(t *testing.T) {
	ids, vocab, book, err := BuildWordArray(writeBook(t, testBook), 100)
	require.NoError(t, err)
	require.Len(t, ids, len(book.Words))

	// "the" is the most frequent token, so every occurrence encodes to 0.
	assert.Equal(t, 0, vocab["the"])
	assert.Equal(t, 0, ids[0])
	assert.Equal(t, 0, ids[4])
}

func TestTrainingSet(t *testing.T) {
	ids := []int{10, 11, 12, 13, 14, 15}

	features, targets, err := TrainingSet(ids, 2)
	require.NoError(t, err)
	require.Len(t, features, 2)
	require.Len(t, targets, 2)

	assert.Equal(t, []int{10, 11, 13, 14}, features[0])
	assert.Equal(t, 12, targets[0])
	assert.Equal(t, []int{11, 12, 14, 15}, features[1])
	assert.Equal(t, 13, targets[1])
}

func TestTrainingSet_Errors(t *testing.T) {
	_, _, err := TrainingSet([]int{1, 2, 3}, 0)
	assert.Error(t, err)

	_, _, err = TrainingSet([]int{1, 2, 3, 4}, 2)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.gob")
	ids := []int{0, 1, 2, 1, 0}
	vocab := map[string]int{"a": 0, "b": 1}

	require.NoError(t, Save(path, ids, vocab))

	gotIDs, gotVocab, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ids, gotIDs)
	assert.Equal(t, vocab, gotVocab)
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.gob"))
	assert.Error(t, err)
}
