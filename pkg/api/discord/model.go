package discord

type Role struct {
	ID   string
	Name string
}

type User struct {
	ID       string
	Username string
}

type Member struct {
	User User
	Nick string
}

type Message struct {
	ID        string
	WebhookID string
	Author    User
}

// ChannelData partitions every channel in a guild by its wire type
// discriminator.
type ChannelData struct {
	TextChannels map[string]*TextChannel
	Categories   map[string]*Category
	Other        map[string]*Channel
}

func newChannelData() *ChannelData {
	return &ChannelData{
		TextChannels: make(map[string]*TextChannel),
		Categories:   make(map[string]*Category),
		Other:        make(map[string]*Channel),
	}
}

func (cd *ChannelData) Total() int {
	return len(cd.TextChannels) + len(cd.Categories) + len(cd.Other)
}
