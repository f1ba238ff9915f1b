package discord

import "context"

type MockEndpoint struct {
	GetTextChannelFunc             func(ctx context.Context, channelID string) (*TextChannel, error)
	SaveChannelFunc                func(ctx context.Context, channel *TextChannel) (*TextChannel, error)
	SaveChannelToCategoryFunc      func(ctx context.Context, channel *TextChannel, categoryName string) (*TextChannel, error)
	CreateCategoryFunc             func(ctx context.Context, name string) (*Category, error)
	DeleteChannelFunc              func(ctx context.Context, channelID string) error
	GetAllCategoriesFunc           func(ctx context.Context) (map[string]*Category, error)
	GetAllTextChannelsFunc         func(ctx context.Context) (map[string]*TextChannel, error)
	GetGuildRolesFunc              func(ctx context.Context) ([]Role, error)
	GetMembersInGuildFunc          func(ctx context.Context) ([]Member, error)
	GetMemberByIDFunc              func(ctx context.Context, discordID string) (*Member, error)
	PostMessageFunc                func(ctx context.Context, channelID string, payload any) error
	GetChannelMessagesFunc         func(ctx context.Context, channelID string, limit int) ([]Message, error)
	GetMessageAuthorsInChannelFunc func(ctx context.Context, channelID string, limit int) ([]string, error)
}

func (m *MockEndpoint) GetTextChannel(ctx context.Context, channelID string) (*TextChannel, error) {
	if m.GetTextChannelFunc != nil {
		return m.GetTextChannelFunc(ctx, channelID)
	}

	return nil, ErrChannelNotFound
}

func (m *MockEndpoint) SaveChannel(ctx context.Context, channel *TextChannel) (*TextChannel, error) {
	if m.SaveChannelFunc != nil {
		return m.SaveChannelFunc(ctx, channel)
	}

	return channel, nil
}

func (m *MockEndpoint) SaveChannelToCategory(
	ctx context.Context, channel *TextChannel, categoryName string,
) (*TextChannel, error) {
	if m.SaveChannelToCategoryFunc != nil {
		return m.SaveChannelToCategoryFunc(ctx, channel, categoryName)
	}

	return channel, nil
}

func (m *MockEndpoint) CreateCategory(ctx context.Context, name string) (*Category, error) {
	if m.CreateCategoryFunc != nil {
		return m.CreateCategoryFunc(ctx, name)
	}

	return nil, nil
}

func (m *MockEndpoint) DeleteChannel(ctx context.Context, channelID string) error {
	if m.DeleteChannelFunc != nil {
		return m.DeleteChannelFunc(ctx, channelID)
	}

	return nil
}

func (m *MockEndpoint) GetAllCategories(ctx context.Context) (map[string]*Category, error) {
	if m.GetAllCategoriesFunc != nil {
		return m.GetAllCategoriesFunc(ctx)
	}

	return map[string]*Category{}, nil
}

func (m *MockEndpoint) GetAllTextChannels(ctx context.Context) (map[string]*TextChannel, error) {
	if m.GetAllTextChannelsFunc != nil {
		return m.GetAllTextChannelsFunc(ctx)
	}

	return map[string]*TextChannel{}, nil
}

func (m *MockEndpoint) GetGuildRoles(ctx context.Context) ([]Role, error) {
	if m.GetGuildRolesFunc != nil {
		return m.GetGuildRolesFunc(ctx)
	}

	return nil, nil
}

func (m *MockEndpoint) GetMembersInGuild(ctx context.Context) ([]Member, error) {
	if m.GetMembersInGuildFunc != nil {
		return m.GetMembersInGuildFunc(ctx)
	}

	return nil, nil
}

func (m *MockEndpoint) GetMemberByID(ctx context.Context, discordID string) (*Member, error) {
	if m.GetMemberByIDFunc != nil {
		return m.GetMemberByIDFunc(ctx, discordID)
	}

	return nil, nil
}

func (m *MockEndpoint) PostMessage(ctx context.Context, channelID string, payload any) error {
	if m.PostMessageFunc != nil {
		return m.PostMessageFunc(ctx, channelID, payload)
	}

	return nil
}

func (m *MockEndpoint) GetChannelMessages(ctx context.Context, channelID string, limit int) ([]Message, error) {
	if m.GetChannelMessagesFunc != nil {
		return m.GetChannelMessagesFunc(ctx, channelID, limit)
	}

	return nil, nil
}

func (m *MockEndpoint) GetMessageAuthorsInChannel(ctx context.Context, channelID string, limit int) ([]string, error) {
	if m.GetMessageAuthorsInChannelFunc != nil {
		return m.GetMessageAuthorsInChannelFunc(ctx, channelID, limit)
	}

	return nil, nil
}
