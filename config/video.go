package config

import (
	"fmt"
	"os"
	"strconv"
)

type VideoConfig struct {
	// WordsPerVideo bounds the narration script so speech and video
	// providers, which bill by length, stay cheap.
	WordsPerVideo int
	// ProgressCurveFile optionally overrides the built-in progress
	// bucket table with a YAML one.
	ProgressCurveFile string
}

func GetVideoConfig() (*VideoConfig, error) {
	wordsPerVideo := os.Getenv("WORDS_PER_VIDEO")
	if wordsPerVideo == "" {
		return nil, fmt.Errorf("WORDS_PER_VIDEO must be set")
	}
	wordsPerVideoVal, err := strconv.Atoi(wordsPerVideo)
	if err != nil {
		return nil, fmt.Errorf("failed to parse words per video")
	}

	return &VideoConfig{
		WordsPerVideo:     wordsPerVideoVal,
		ProgressCurveFile: os.Getenv("PROGRESS_CURVE_FILE"),
	}, nil
}
