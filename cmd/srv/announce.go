package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func (s *srv) announceCommand(cliCtx *cli.Context) error {
	ctx := s.newContext()

	puzzles, err := loadPuzzles(cliCtx.String("puzzles"))
	if err != nil {
		return err
	}

	puzzleID := cliCtx.Int("puzzle")
	for _, puzzle := range puzzles {
		if puzzle.ID != puzzleID {
			continue
		}

		return s.discordDomain.AnnouncePeople(ctx, puzzle, puzzle.Spoiled, puzzle.Editors)
	}

	return fmt.Errorf("no puzzle with id %d in the fixture", puzzleID)
}
