package discord

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/puzzup/backend/pkg/api"
)

const (
	ChannelTypeText     = 0
	ChannelTypeCategory = 4
)

// Channel is the base representation of a Discord channel. Fields the model
// doesn't understand are kept verbatim in Extra so a load-save round trip
// never drops remote-only data; typed fields win on conflict.
type Channel struct {
	ID      string `mapstructure:"id"`
	Name    string `mapstructure:"name"`
	Type    int    `mapstructure:"type"`
	GuildID string `mapstructure:"guild_id"`

	Overwrites *Overwrites    `mapstructure:"-"`
	Extra      map[string]any `mapstructure:",remain"`
}

// TextChannel is a guild text channel (type 0).
type TextChannel struct {
	Channel  `mapstructure:",squash"`
	ParentID string `mapstructure:"parent_id"`
	Topic    string `mapstructure:"topic"`
}

// Category is a category "channel" (type 4); Discord models categories as
// channels.
type Category struct {
	Channel `mapstructure:",squash"`
}

func NewTextChannel(name, guildID string) *TextChannel {
	return &TextChannel{
		Channel: Channel{
			Name:       name,
			Type:       ChannelTypeText,
			GuildID:    guildID,
			Overwrites: NewOverwrites(),
		},
	}
}

func (c *Channel) ensureOverwrites() *Overwrites {
	if c.Overwrites == nil {
		c.Overwrites = NewOverwrites()
	}

	return c.Overwrites
}

// MakePrivate denies the VIEW_CHANNEL permission to @everyone (the role
// whose id equals the guild id).
func (c *Channel) MakePrivate() error {
	return c.ensureOverwrites().UpdateRole(c.GuildID, nil, PermissionViewChannel, nil)
}

// MakePublic removes the VIEW_CHANNEL denial for @everyone. The channel then
// inherits visibility from its parent category, if any.
func (c *Channel) MakePublic() error {
	return c.ensureOverwrites().UpdateRole(c.GuildID, nil, nil, PermissionViewChannel)
}

// IsPublic reports whether VIEW_CHANNEL is not denied for @everyone.
func (c *Channel) IsPublic() bool {
	if c.Overwrites == nil {
		return true
	}

	o, ok := c.Overwrites.roles[c.GuildID]
	if !ok {
		return true
	}

	return !o.Deny.Contains(PermissionViewChannel)
}

// AddVisibility grants VIEW_CHANNEL to every given user id.
func (c *Channel) AddVisibility(userIDs []string) error {
	for _, id := range userIDs {
		if err := c.ensureOverwrites().UpdateUser(id, PermissionViewChannel, nil, nil); err != nil {
			return err
		}
	}

	return nil
}

// RemoveVisibility clears the VIEW_CHANNEL bit from every given user id's
// overwrite, on both the allow and deny side.
func (c *Channel) RemoveVisibility(userIDs []string) error {
	for _, id := range userIDs {
		if err := c.ensureOverwrites().UpdateUser(id, nil, nil, PermissionViewChannel); err != nil {
			return err
		}
	}

	return nil
}

func (c *Channel) wire() api.JSON {
	m := api.JSON{}
	for key, value := range c.Extra {
		m[key] = value
	}

	m["type"] = c.Type
	if c.ID != "" {
		m["id"] = c.ID
	}

	if c.Name != "" {
		m["name"] = c.Name
	}

	if c.GuildID != "" {
		m["guild_id"] = c.GuildID
	}

	if c.Overwrites != nil {
		if records := c.Overwrites.ToWire(); len(records) > 0 {
			m["permission_overwrites"] = records
		}
	}

	return m
}

// ToWire renders the channel as a wire field map: the Extra side-map merged
// with the typed fields, typed fields taking precedence.
func (c *Channel) ToWire() api.JSON {
	return c.wire()
}

func (tc *TextChannel) ToWire() api.JSON {
	m := tc.wire()
	if tc.ParentID != "" {
		m["parent_id"] = tc.ParentID
	}

	if tc.Topic != "" {
		m["topic"] = tc.Topic
	}

	return m
}

func (c *Channel) Copy() *Channel {
	copied := *c
	copied.Extra = deepCopyMap(c.Extra)
	if c.Overwrites != nil {
		copied.Overwrites = c.Overwrites.Copy()
	}

	return &copied
}

func (tc *TextChannel) Copy() *TextChannel {
	copied := *tc
	copied.Channel = *tc.Channel.Copy()
	return &copied
}

// decodeChannel decodes a wire object into out, parsing the overwrite list
// separately and collecting unknown fields through the ,remain tag.
func decodeChannel(obj api.JSON, out any) (*Overwrites, error) {
	raw := make(map[string]any, len(obj))
	for key, value := range obj {
		raw[key] = value
	}

	rawOverwrites := raw["permission_overwrites"]
	delete(raw, "permission_overwrites")

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("cannot decode channel: %w", err)
	}

	if rawOverwrites == nil {
		return NewOverwrites(), nil
	}

	var records []OverwriteRecord
	recordDecoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &records,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}

	if err := recordDecoder.Decode(rawOverwrites); err != nil {
		return nil, fmt.Errorf("cannot decode permission overwrites: %w", err)
	}

	return OverwritesFromWire(records)
}

func ChannelFromWire(obj api.JSON) (*Channel, error) {
	var ch Channel
	overwrites, err := decodeChannel(obj, &ch)
	if err != nil {
		return nil, err
	}

	ch.Overwrites = overwrites
	return &ch, nil
}

func TextChannelFromWire(obj api.JSON) (*TextChannel, error) {
	var tc TextChannel
	overwrites, err := decodeChannel(obj, &tc)
	if err != nil {
		return nil, err
	}

	tc.Overwrites = overwrites
	return &tc, nil
}

func CategoryFromWire(obj api.JSON) (*Category, error) {
	var cat Category
	overwrites, err := decodeChannel(obj, &cat)
	if err != nil {
		return nil, err
	}

	cat.Overwrites = overwrites
	return &cat, nil
}

// MarshalJSON renders the wire form; together with UnmarshalJSON it lets
// channel snapshots live in external caches without losing extra fields.
func (tc *TextChannel) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any(tc.ToWire()))
}

func (tc *TextChannel) UnmarshalJSON(b []byte) error {
	var obj map[string]any
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}

	parsed, err := TextChannelFromWire(obj)
	if err != nil {
		return err
	}

	*tc = *parsed
	return nil
}
