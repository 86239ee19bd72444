package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pixquant/internal/corpus"
)

func main() {
	bookPath := flag.String("book", "", "Path to a plain-text book (Project Gutenberg format)")
	vocabSize := flag.Int("vocab", 10000, "Upper limit on vocabulary size")
	window := flag.Int("window", 2, "Context window on each side of the target word")
	outPath := flag.String("out", "", "Path for the encoded word array (default: <book>.gob)")

	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *bookPath == "" {
		fmt.Fprintf(os.Stderr, "Error: book path is required\n")
		flag.Usage()
		os.Exit(1)
	}
	if *vocabSize < 1 || *window < 1 {
		fmt.Fprintf(os.Stderr, "Error: vocab and window must be positive\n")
		flag.Usage()
		os.Exit(1)
	}
	if *outPath == "" {
		*outPath = *bookPath + ".gob"
	}

	ids, vocab, book, err := corpus.BuildWordArray(*bookPath, *vocabSize)
	if err != nil {
		log.Fatal().Err(err).Str("book", *bookPath).Msg("could not build word array")
	}
	log.Info().
		Int("lines", book.Lines).
		Int("words", book.WordCount).
		Int("unique", len(book.Counts)).
		Int("vocab", len(vocab)).
		Msg("book loaded")

	features, targets, err := corpus.TrainingSet(ids, *window)
	if err != nil {
		log.Fatal().Err(err).Msg("could not build training set")
	}
	log.Info().
		Int("examples", len(targets)).
		Int("context", len(features[0])).
		Msg("training set built")

	if err := corpus.Save(*outPath, ids, vocab); err != nil {
		log.Fatal().Err(err).Str("out", *outPath).Msg("could not save word array")
	}
	log.Info().Str("out", *outPath).Msg("word array saved")
}
