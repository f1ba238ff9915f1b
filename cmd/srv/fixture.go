package main

import (
	"encoding/json"
	"os"

	"github.com/puzzup/backend/internal/entity"
)

func loadPuzzles(path string) ([]*entity.Puzzle, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var puzzles []*entity.Puzzle
	if err := json.Unmarshal(b, &puzzles); err != nil {
		return nil, err
	}

	return puzzles, nil
}

func savePuzzles(path string, puzzles []*entity.Puzzle) error {
	b, err := json.MarshalIndent(puzzles, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, append(b, '\n'), 0644)
}
