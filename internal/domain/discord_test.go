package domain

import (
	"context"
	"testing"

	"github.com/puzzup/backend/config"
	"github.com/puzzup/backend/internal/entity"
	"github.com/puzzup/backend/pkg/api/discord"
	"github.com/puzzup/backend/pkg/errorx"
	"github.com/stretchr/testify/require"
)

var testCfg = config.DiscordConfigs{BotToken: "token", GuildID: "g1"}

func Test_DiscordDomain_Disabled(t *testing.T) {
	d := NewDiscordDomain(config.DiscordConfigs{}, &discord.MockEndpoint{})
	require.False(t, d.Enabled())

	_, err := d.GetPuzzleChannel(context.Background(), &entity.Puzzle{DiscordChannelID: "1"})
	require.Error(t, err)
	require.Equal(t, errorx.Unavailable, err.(errorx.Error).Code)
}

func Test_DiscordDomain_SyncPuzzleChannel_NameAndTopic(t *testing.T) {
	d := NewDiscordDomain(testCfg, &discord.MockEndpoint{})

	puzzle := &entity.Puzzle{ID: 7, Name: "My Puzzle"}
	channel := discord.NewTextChannel("", "g1")

	require.NoError(t, d.SyncPuzzleChannel(puzzle, channel, "http://example.com/7", true))
	require.Equal(t, "My Puzzle-007", channel.Name)
	require.Equal(t, "http://example.com/7", channel.Topic)

	// Without a url the topic stays put.
	require.NoError(t, d.SyncPuzzleChannel(puzzle, channel, "", true))
	require.Equal(t, "http://example.com/7", channel.Topic)
}

func Test_DiscordDomain_SyncPuzzleChannel_Visibility(t *testing.T) {
	d := NewDiscordDomain(testCfg, &discord.MockEndpoint{})

	puzzle := &entity.Puzzle{
		ID:   1,
		Name: "foo",
		Authors: []entity.User{
			{ID: 1, DiscordUserID: "u1"},
			{ID: 4, DisplayName: "No Discord"},
		},
		Editors: []entity.User{{ID: 2, DiscordUserID: "u2"}},
		Spoiled: []entity.User{
			{ID: 2, DiscordUserID: "u2"},
			{ID: 3, DiscordUserID: "u3"},
		},
	}

	channel := discord.NewTextChannel("foo", "g1")

	// u3 is spoiled with an existing grant; u4 holds a stale grant.
	require.NoError(t, channel.AddVisibility([]string{"u3", "u4"}))

	require.NoError(t, d.SyncPuzzleChannel(puzzle, channel, "", true))

	// Authors and editors are granted; the spoiled user keeps their grant;
	// the stale grant is cleared away entirely.
	require.Equal(t, []string{"u1", "u2", "u3"}, channel.Overwrites.UserIDs())

	for _, id := range []string{"u1", "u2", "u3"} {
		o, err := channel.Overwrites.GetUser(id)
		require.NoError(t, err)
		require.True(t, o.Allow.Contains(discord.PermissionViewChannel))
	}
}

func Test_DiscordDomain_SyncPuzzleChannel_SkipUsers(t *testing.T) {
	d := NewDiscordDomain(testCfg, &discord.MockEndpoint{})

	puzzle := &entity.Puzzle{
		ID:      2,
		Name:    "foo",
		Authors: []entity.User{{ID: 1, DiscordUserID: "u1"}},
	}

	channel := discord.NewTextChannel("foo", "g1")
	require.NoError(t, d.SyncPuzzleChannel(puzzle, channel, "", false))
	require.Empty(t, channel.Overwrites.UserIDs())
}

func Test_DiscordDomain_BuildPuzzleChannel(t *testing.T) {
	d := NewDiscordDomain(testCfg, &discord.MockEndpoint{})

	puzzle := &entity.Puzzle{
		ID:      12,
		Name:    "Some Puzzle",
		Authors: []entity.User{{ID: 1, DiscordUserID: "u1"}},
	}

	channel, err := d.BuildPuzzleChannel("http://example.com/12", puzzle, true)
	require.NoError(t, err)

	require.Empty(t, channel.ID)
	require.Equal(t, "Some Puzzle-012", channel.Name)
	require.Equal(t, "http://example.com/12", channel.Topic)
	require.Equal(t, "g1", channel.GuildID)
	require.False(t, channel.IsPublic())
	require.Equal(t, []string{"u1"}, channel.Overwrites.UserIDs())

	public, err := d.BuildPuzzleChannel("http://example.com/12", puzzle, false)
	require.NoError(t, err)
	require.True(t, public.IsPublic())
}

func Test_DiscordDomain_GetPuzzleChannel(t *testing.T) {
	ctx := context.Background()
	endpoint := &discord.MockEndpoint{
		GetTextChannelFunc: func(ctx context.Context, channelID string) (*discord.TextChannel, error) {
			if channelID == "gone" {
				return nil, discord.ErrChannelNotFound
			}

			tc := discord.NewTextChannel("foo", "g1")
			tc.ID = channelID
			return tc, nil
		},
	}

	d := NewDiscordDomain(testCfg, endpoint)

	// No channel id means no channel, not an error.
	channel, err := d.GetPuzzleChannel(ctx, &entity.Puzzle{})
	require.NoError(t, err)
	require.Nil(t, channel)

	// An out-of-band deletion degrades to no channel.
	channel, err = d.GetPuzzleChannel(ctx, &entity.Puzzle{DiscordChannelID: "gone"})
	require.NoError(t, err)
	require.Nil(t, channel)

	channel, err = d.GetPuzzleChannel(ctx, &entity.Puzzle{DiscordChannelID: "12345"})
	require.NoError(t, err)
	require.Equal(t, "12345", channel.ID)
}

func Test_DiscordDomain_SyncPuzzle_CreatesChannel(t *testing.T) {
	ctx := context.Background()

	var savedChannel *discord.TextChannel
	endpoint := &discord.MockEndpoint{
		SaveChannelFunc: func(ctx context.Context, channel *discord.TextChannel) (*discord.TextChannel, error) {
			savedChannel = channel
			saved := channel.Copy()
			saved.ID = "99"
			return saved, nil
		},
	}

	d := NewDiscordDomain(testCfg, endpoint)

	puzzle := &entity.Puzzle{ID: 5, Name: "foo"}
	saved, err := d.SyncPuzzle(ctx, puzzle, "http://example.com/5")
	require.NoError(t, err)

	require.Empty(t, savedChannel.ID)
	require.False(t, savedChannel.IsPublic())
	require.Equal(t, "99", saved.ID)
	require.Equal(t, "99", puzzle.DiscordChannelID)
}

func Test_DiscordDomain_SyncPuzzle_UpdatesExisting(t *testing.T) {
	ctx := context.Background()

	existing := discord.NewTextChannel("old-name", "g1")
	existing.ID = "12345"

	endpoint := &discord.MockEndpoint{
		GetTextChannelFunc: func(ctx context.Context, channelID string) (*discord.TextChannel, error) {
			return existing.Copy(), nil
		},
		SaveChannelFunc: func(ctx context.Context, channel *discord.TextChannel) (*discord.TextChannel, error) {
			return channel, nil
		},
	}

	d := NewDiscordDomain(testCfg, endpoint)

	puzzle := &entity.Puzzle{ID: 5, Name: "New Name", DiscordChannelID: "12345"}
	saved, err := d.SyncPuzzle(ctx, puzzle, "")
	require.NoError(t, err)
	require.Equal(t, "12345", saved.ID)
	require.Equal(t, "New Name-005", saved.Name)
}

func Test_DiscordDomain_InitPerms(t *testing.T) {
	ctx := context.Background()

	channels := map[string]*discord.TextChannel{}
	for _, id := range []string{"ch-1", "ch-2"} {
		tc := discord.NewTextChannel("foo", "g1")
		tc.ID = id
		channels[id] = tc
	}

	var saved []string
	endpoint := &discord.MockEndpoint{
		GetTextChannelFunc: func(ctx context.Context, channelID string) (*discord.TextChannel, error) {
			return channels[channelID].Copy(), nil
		},
		SaveChannelFunc: func(ctx context.Context, channel *discord.TextChannel) (*discord.TextChannel, error) {
			saved = append(saved, channel.ID)
			return channel, nil
		},
	}

	d := NewDiscordDomain(testCfg, endpoint)

	user := entity.User{ID: 1, DiscordUserID: "u1"}
	puzzles := []*entity.Puzzle{
		{ID: 1, Name: "a", DiscordChannelID: "ch-1", Authors: []entity.User{user}},
		{ID: 2, Name: "b", DiscordChannelID: "ch-2"},
		{ID: 3, Name: "c", Editors: []entity.User{user}},
	}

	require.NoError(t, d.InitPerms(ctx, user, puzzles))

	// Only the authored puzzle with a channel gets resynced.
	require.Equal(t, []string{"ch-1"}, saved)

	// A user without a linked discord id is a no-op.
	saved = nil
	require.NoError(t, d.InitPerms(ctx, entity.User{ID: 2}, puzzles))
	require.Empty(t, saved)
}

func Test_DiscordDomain_AnnouncePeople(t *testing.T) {
	ctx := context.Background()

	var gotChannelID string
	var gotPayload any
	endpoint := &discord.MockEndpoint{
		PostMessageFunc: func(ctx context.Context, channelID string, payload any) error {
			gotChannelID = channelID
			gotPayload = payload
			return nil
		},
	}

	d := NewDiscordDomain(testCfg, endpoint)

	puzzle := &entity.Puzzle{ID: 1, DiscordChannelID: "ch-1"}
	spoiled := []entity.User{
		{ID: 1, DiscordUserID: "u1"},
		{ID: 2, DisplayName: "Plain Name"},
		{ID: 3, DiscordUserID: "u3"},
	}
	editors := []entity.User{{ID: 3, DiscordUserID: "u3"}}

	require.NoError(t, d.AnnouncePeople(ctx, puzzle, spoiled, editors))
	require.Equal(t, "ch-1", gotChannelID)
	require.Equal(t, "Newly spoiled: <@!u1>, Plain Name\nNew editor(s): <@!u3>", gotPayload)

	// Nothing to announce, nothing posted.
	gotChannelID = ""
	require.NoError(t, d.AnnouncePeople(ctx, puzzle, nil, nil))
	require.Empty(t, gotChannelID)

	// No channel, nothing posted.
	require.NoError(t, d.AnnouncePeople(ctx, &entity.Puzzle{ID: 2}, spoiled, editors))
	require.Empty(t, gotChannelID)
}

func Test_Tags(t *testing.T) {
	users := []entity.User{
		{ID: 1, DiscordUserID: "u1", DisplayName: "One"},
		{ID: 2, DisplayName: "Two"},
	}

	require.Equal(t, "<@!u1>", TagID("u1"))
	require.Equal(t, []string{"<@!u1>"}, Tags(users, true))
	require.Equal(t, []string{"<@!u1>", "Two"}, Tags(users, false))
	require.Equal(t, []string{"u1"}, DiscordIDs(users))
}
