package entity

// User is an application user. DiscordUserID is empty for users who never
// linked their Discord account.
type User struct {
	ID            int    `json:"id"`
	DisplayName   string `json:"display_name"`
	DiscordUserID string `json:"discord_user_id"`
}

// Puzzle is the unit of work a channel is kept in sync with. Authors and
// editors must always see the channel; spoiled users may.
type Puzzle struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	DiscordChannelID string `json:"discord_channel_id"`

	Authors []User `json:"authors"`
	Editors []User `json:"editors"`
	Spoiled []User `json:"spoiled"`
}

// IsAuthorOrEditor reports whether u authors or edits p.
func (p *Puzzle) IsAuthorOrEditor(u User) bool {
	for _, a := range p.Authors {
		if a.ID == u.ID {
			return true
		}
	}

	for _, e := range p.Editors {
		if e.ID == u.ID {
			return true
		}
	}

	return false
}
