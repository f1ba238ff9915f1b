package main

import (
	"regexp"

	"github.com/urfave/cli/v2"
)

// puzzleChannelRe matches the names the sync derives: a sanitized puzzle name
// followed by a zero-padded numeric id.
var puzzleChannelRe = regexp.MustCompile(`-\d{3,}$`)

func (s *srv) cleanCommand(cliCtx *cli.Context) error {
	ctx := s.newContext()

	puzzles, err := loadPuzzles(cliCtx.String("puzzles"))
	if err != nil {
		return err
	}

	referenced := map[string]bool{}
	for _, puzzle := range puzzles {
		if puzzle.DiscordChannelID != "" {
			referenced[puzzle.DiscordChannelID] = true
		}
	}

	channels, err := s.endpoint.GetAllTextChannels(ctx)
	if err != nil {
		return err
	}

	dryrun := cliCtx.Bool("dryrun")
	for id, channel := range channels {
		if referenced[id] || !puzzleChannelRe.MatchString(channel.Name) {
			continue
		}

		if dryrun {
			s.logger.Infof("Orphaned channel %s (%s)", id, channel.Name)
			continue
		}

		if err := s.endpoint.DeleteChannel(ctx, id); err != nil {
			return err
		}

		s.logger.Infof("Deleted orphaned channel %s (%s)", id, channel.Name)
	}

	return nil
}
