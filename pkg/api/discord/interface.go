package discord

import "context"

type IEndpoint interface {
	GetTextChannel(ctx context.Context, channelID string) (*TextChannel, error)
	SaveChannel(ctx context.Context, channel *TextChannel) (*TextChannel, error)
	SaveChannelToCategory(ctx context.Context, channel *TextChannel, categoryName string) (*TextChannel, error)
	CreateCategory(ctx context.Context, name string) (*Category, error)
	DeleteChannel(ctx context.Context, channelID string) error
	GetAllCategories(ctx context.Context) (map[string]*Category, error)
	GetAllTextChannels(ctx context.Context) (map[string]*TextChannel, error)
	GetGuildRoles(ctx context.Context) ([]Role, error)
	GetMembersInGuild(ctx context.Context) ([]Member, error)
	GetMemberByID(ctx context.Context, discordID string) (*Member, error)
	PostMessage(ctx context.Context, channelID string, payload any) error
	GetChannelMessages(ctx context.Context, channelID string, limit int) ([]Message, error)
	GetMessageAuthorsInChannel(ctx context.Context, channelID string, limit int) ([]string, error)
}
