package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/puzzup/backend/config"
	"github.com/puzzup/backend/internal/entity"
	"github.com/puzzup/backend/pkg/api/discord"
	"github.com/puzzup/backend/pkg/errorx"
	"github.com/puzzup/backend/pkg/xcontext"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type DiscordDomain interface {
	Enabled() bool
	GetPuzzleChannel(ctx context.Context, puzzle *entity.Puzzle) (*discord.TextChannel, error)
	SyncPuzzleChannel(puzzle *entity.Puzzle, channel *discord.TextChannel, url string, syncUsers bool) error
	BuildPuzzleChannel(url string, puzzle *entity.Puzzle, private bool) (*discord.TextChannel, error)
	SyncPuzzle(ctx context.Context, puzzle *entity.Puzzle, url string) (*discord.TextChannel, error)
	InitPerms(ctx context.Context, user entity.User, puzzles []*entity.Puzzle) error
	AnnouncePeople(ctx context.Context, puzzle *entity.Puzzle, spoiled, editors []entity.User) error
}

type discordDomain struct {
	cfg      config.DiscordConfigs
	endpoint discord.IEndpoint
}

func NewDiscordDomain(cfg config.DiscordConfigs, endpoint discord.IEndpoint) *discordDomain {
	return &discordDomain{cfg: cfg, endpoint: endpoint}
}

func (d *discordDomain) Enabled() bool {
	return d.cfg.IsEnabled()
}

func (d *discordDomain) checkEnabled() error {
	if !d.Enabled() {
		return errorx.New(errorx.Unavailable,
			"Discord is not enabled, require both bot token and guild id")
	}

	return nil
}

// GetPuzzleChannel resolves a puzzle's channel. It returns nil without error
// when the puzzle has no channel id or the channel was deleted out-of-band;
// in the latter case the caller should clear its stored id.
func (d *discordDomain) GetPuzzleChannel(
	ctx context.Context, puzzle *entity.Puzzle,
) (*discord.TextChannel, error) {
	if err := d.checkEnabled(); err != nil {
		return nil, err
	}

	if puzzle.DiscordChannelID == "" {
		return nil, nil
	}

	channel, err := d.endpoint.GetTextChannel(ctx, puzzle.DiscordChannelID)
	if err != nil {
		if errors.Is(err, discord.ErrChannelNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return channel, nil
}

// SyncPuzzleChannel applies a puzzle's state to its channel: the derived
// name, the topic when url is given, and, when syncUsers is set, per-user
// visibility. Authors and editors are granted view; anyone holding an
// overwrite who is neither of those nor spoiled gets their view bit
// neutralized. Spoiled users without an overwrite are left alone. The
// channel is mutated but not persisted.
func (d *discordDomain) SyncPuzzleChannel(
	puzzle *entity.Puzzle, channel *discord.TextChannel, url string, syncUsers bool,
) error {
	channel.Name = fmt.Sprintf("%.96s-%03d", puzzle.Name, puzzle.ID)
	if url != "" {
		channel.Topic = url
	}

	if !syncUsers {
		return nil
	}

	mustSee := map[string]bool{}
	for _, id := range DiscordIDs(append(slices.Clone(puzzle.Authors), puzzle.Editors...)) {
		mustSee[id] = true
	}

	maySee := map[string]bool{}
	for _, id := range DiscordIDs(puzzle.Spoiled) {
		maySee[id] = true
	}

	everyone := maps.Keys(mustSee)
	everyone = append(everyone, channel.Overwrites.UserIDs()...)
	slices.Sort(everyone)
	everyone = slices.Compact(everyone)

	for _, id := range everyone {
		switch {
		case mustSee[id]:
			err := channel.AddVisibility([]string{id})
			if err != nil {
				return err
			}

		case !maySee[id]:
			err := channel.RemoveVisibility([]string{id})
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// BuildPuzzleChannel constructs a fresh unsaved channel for a puzzle, with
// visibility granted to its authors and editors. When private, view is
// denied to the everyone-role.
func (d *discordDomain) BuildPuzzleChannel(
	url string, puzzle *entity.Puzzle, private bool,
) (*discord.TextChannel, error) {
	channel := discord.NewTextChannel(puzzle.Name, d.cfg.GuildID)
	if err := d.SyncPuzzleChannel(puzzle, channel, url, true); err != nil {
		return nil, err
	}

	if private {
		if err := channel.MakePrivate(); err != nil {
			return nil, err
		}
	}

	return channel, nil
}

// SyncPuzzle brings a puzzle's channel fully up to date remotely, creating a
// private channel when the puzzle has none.
func (d *discordDomain) SyncPuzzle(
	ctx context.Context, puzzle *entity.Puzzle, url string,
) (*discord.TextChannel, error) {
	if err := d.checkEnabled(); err != nil {
		return nil, err
	}

	channel, err := d.GetPuzzleChannel(ctx, puzzle)
	if err != nil {
		return nil, err
	}

	if channel == nil {
		channel, err = d.BuildPuzzleChannel(url, puzzle, true)
		if err != nil {
			return nil, err
		}
	} else if err := d.SyncPuzzleChannel(puzzle, channel, url, true); err != nil {
		return nil, err
	}

	saved, err := d.endpoint.SaveChannel(ctx, channel)
	if err != nil {
		return nil, err
	}

	puzzle.DiscordChannelID = saved.ID
	return saved, nil
}

// InitPerms resyncs visibility on every given puzzle the user authors or
// edits. This can be slow, so call it only when a user's discord id changes.
func (d *discordDomain) InitPerms(
	ctx context.Context, user entity.User, puzzles []*entity.Puzzle,
) error {
	if err := d.checkEnabled(); err != nil {
		return err
	}

	if user.DiscordUserID == "" {
		return nil
	}

	for _, puzzle := range puzzles {
		if !puzzle.IsAuthorOrEditor(user) {
			continue
		}

		channel, err := d.GetPuzzleChannel(ctx, puzzle)
		if err != nil {
			return err
		}

		if channel == nil {
			continue
		}

		if err := d.SyncPuzzleChannel(puzzle, channel, "", true); err != nil {
			return err
		}

		if _, err := d.endpoint.SaveChannel(ctx, channel); err != nil {
			return err
		}

		xcontext.Logger(ctx).Debugf("Resynced permissions of channel %s for user %d",
			channel.ID, user.ID)
	}

	return nil
}

// AnnouncePeople posts a message announcing newly spoiled users and newly
// assigned editors to the puzzle's channel. Editors are subtracted from the
// spoiled set so nobody is announced twice. Nothing is posted when the
// puzzle has no channel or both groups are empty.
func (d *discordDomain) AnnouncePeople(
	ctx context.Context, puzzle *entity.Puzzle, spoiled, editors []entity.User,
) error {
	if err := d.checkEnabled(); err != nil {
		return err
	}

	if puzzle.DiscordChannelID == "" {
		return nil
	}

	editorIDs := map[int]bool{}
	for _, e := range editors {
		editorIDs[e.ID] = true
	}

	var onlySpoiled []entity.User
	for _, s := range spoiled {
		if !editorIDs[s.ID] {
			onlySpoiled = append(onlySpoiled, s)
		}
	}

	var lines []string
	if len(onlySpoiled) > 0 {
		lines = append(lines, "Newly spoiled: "+strings.Join(Tags(onlySpoiled, false), ", "))
	}

	if len(editors) > 0 {
		lines = append(lines, "New editor(s): "+strings.Join(Tags(editors, false), ", "))
	}

	if len(lines) == 0 {
		return nil
	}

	return d.endpoint.PostMessage(ctx, puzzle.DiscordChannelID, strings.Join(lines, "\n"))
}

// TagID formats a discord id as an in-message mention.
func TagID(discordID string) string {
	return fmt.Sprintf("<@!%s>", discordID)
}

// Tags renders mentions for users with discord ids. Users without one are
// skipped, unless skipMissing is false, in which case their display names
// are used instead.
func Tags(users []entity.User, skipMissing bool) []string {
	var tags []string
	for _, user := range users {
		if user.DiscordUserID != "" {
			tags = append(tags, TagID(user.DiscordUserID))
		} else if !skipMissing {
			tags = append(tags, user.DisplayName)
		}
	}

	return tags
}

// DiscordIDs collects the non-empty discord ids of the given users.
func DiscordIDs(users []entity.User) []string {
	var ids []string
	for _, user := range users {
		if user.DiscordUserID != "" {
			ids = append(ids, user.DiscordUserID)
		}
	}

	return ids
}
