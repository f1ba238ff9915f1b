package discord

import (
	"encoding/json"
	"testing"

	"github.com/puzzup/backend/pkg/api"
	"github.com/stretchr/testify/require"
)

func Test_TextChannel_FromWire(t *testing.T) {
	tc, err := TextChannelFromWire(api.JSON{
		"id":        "12345",
		"name":      "foo",
		"type":      float64(0),
		"guild_id":  "g1",
		"parent_id": "c1",
		"topic":     "a topic",
		"nsfw":      false,
		"position":  float64(3),
		"permission_overwrites": []any{
			map[string]any{"id": "g1", "type": float64(0), "allow": "0", "deny": "1024"},
		},
	})
	require.NoError(t, err)

	require.Equal(t, "12345", tc.ID)
	require.Equal(t, "foo", tc.Name)
	require.Equal(t, ChannelTypeText, tc.Type)
	require.Equal(t, "g1", tc.GuildID)
	require.Equal(t, "c1", tc.ParentID)
	require.Equal(t, "a topic", tc.Topic)

	o, err := tc.Overwrites.GetRole("g1")
	require.NoError(t, err)
	require.Equal(t, PermissionViewChannel, o.Deny)

	// Unknown fields survive a round trip.
	wire := tc.ToWire()
	require.Equal(t, false, wire["nsfw"])
	require.Equal(t, float64(3), wire["position"])
	require.Equal(t, "12345", wire["id"])
}

func Test_TextChannel_ToWire_OmitsEmpty(t *testing.T) {
	tc := NewTextChannel("foo", "g1")
	wire := tc.ToWire()

	require.Equal(t, "foo", wire["name"])
	require.Equal(t, "g1", wire["guild_id"])
	require.Equal(t, ChannelTypeText, wire["type"])
	require.NotContains(t, wire, "id")
	require.NotContains(t, wire, "parent_id")
	require.NotContains(t, wire, "topic")
	require.NotContains(t, wire, "permission_overwrites")
}

func Test_Channel_Visibility(t *testing.T) {
	tc := NewTextChannel("foo", "g1")
	require.True(t, tc.IsPublic())

	require.NoError(t, tc.MakePrivate())
	require.False(t, tc.IsPublic())

	// Granting visibility to users doesn't make it public.
	require.NoError(t, tc.AddVisibility([]string{"u1", "u2"}))
	require.False(t, tc.IsPublic())
	require.Equal(t, []string{"u1", "u2"}, tc.Overwrites.UserIDs())

	require.NoError(t, tc.RemoveVisibility([]string{"u1"}))
	require.Equal(t, []string{"u2"}, tc.Overwrites.UserIDs())

	require.NoError(t, tc.MakePublic())
	require.True(t, tc.IsPublic())
	require.Empty(t, tc.Overwrites.RoleIDs())
}

func Test_Channel_MakePrivate_Idempotent(t *testing.T) {
	tc := NewTextChannel("foo", "g1")
	require.NoError(t, tc.MakePrivate())
	require.NoError(t, tc.MakePrivate())

	o, err := tc.Overwrites.GetRole("g1")
	require.NoError(t, err)
	require.Equal(t, PermissionViewChannel, o.Deny)
}

func Test_TextChannel_Copy(t *testing.T) {
	tc, err := TextChannelFromWire(api.JSON{
		"id":       "1",
		"name":     "foo",
		"type":     float64(0),
		"guild_id": "g1",
		"extra":    map[string]any{"nested": "value"},
	})
	require.NoError(t, err)

	copied := tc.Copy()
	copied.Name = "bar"
	copied.Extra["extra"].(map[string]any)["nested"] = "changed"
	require.NoError(t, copied.AddVisibility([]string{"u1"}))

	require.Equal(t, "foo", tc.Name)
	require.Equal(t, "value", tc.Extra["extra"].(map[string]any)["nested"])
	require.Empty(t, tc.Overwrites.UserIDs())
}

func Test_TextChannel_JSONRoundTrip(t *testing.T) {
	tc := NewTextChannel("foo", "g1")
	tc.ID = "12345"
	tc.Topic = "a topic"
	require.NoError(t, tc.MakePrivate())

	b, err := json.Marshal(tc)
	require.NoError(t, err)

	var back TextChannel
	require.NoError(t, json.Unmarshal(b, &back))

	require.Equal(t, tc.ID, back.ID)
	require.Equal(t, tc.Name, back.Name)
	require.Equal(t, tc.Topic, back.Topic)
	require.False(t, back.IsPublic())
}
