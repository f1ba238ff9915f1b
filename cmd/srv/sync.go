package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func (s *srv) syncCommand(cliCtx *cli.Context) error {
	ctx := s.newContext()

	fixturePath := cliCtx.String("puzzles")
	puzzles, err := loadPuzzles(fixturePath)
	if err != nil {
		return err
	}

	urlBase := cliCtx.String("url-base")
	category := cliCtx.String("category")

	changed := false
	for _, puzzle := range puzzles {
		url := ""
		if urlBase != "" {
			url = fmt.Sprintf("%s/puzzle/%d", urlBase, puzzle.ID)
		}

		hadChannel := puzzle.DiscordChannelID != ""
		channel, err := s.discordDomain.SyncPuzzle(ctx, puzzle, url)
		if err != nil {
			return fmt.Errorf("cannot sync puzzle %d: %w", puzzle.ID, err)
		}

		if !hadChannel {
			changed = true
			s.logger.Infof("Created channel %s for puzzle %d", channel.ID, puzzle.ID)
		}

		if category != "" {
			if _, err := s.endpoint.SaveChannelToCategory(ctx, channel, category); err != nil {
				return fmt.Errorf("cannot place channel of puzzle %d: %w", puzzle.ID, err)
			}
		}

		s.logger.Debugf("Synced puzzle %d to channel %s", puzzle.ID, channel.ID)
	}

	if changed {
		return savePuzzles(fixturePath, puzzles)
	}

	return nil
}
