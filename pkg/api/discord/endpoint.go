package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/pkg/math"
	"github.com/puzpuzpuz/xsync"
	"github.com/puzzup/backend/config"
	"github.com/puzzup/backend/pkg/api"
)

const apiURL = "https://discord.com/api/v8"
const userAgent = "DiscordBot (https://github.com/puzzup/backend, 1.0)"

// maxCategoryCandidates bounds the category placement scan: the base name
// plus suffixes -1 through -9.
const maxCategoryCandidates = 10

const postMessageResource = "post_message"

// maxMessageLength is Discord's hard cap on message content.
const maxMessageLength = 2000

// Endpoint is a barebones Discord API client for one guild. All reads of
// text channels go through the channel cache; every returned channel is an
// independent deep copy.
type Endpoint struct {
	BotToken       string
	GuildID        string
	AuditLogReason string

	apiGenerator      api.Generator
	channelCache      ChannelCache
	rateLimitResource *xsync.MapOf[string, *xsync.MapOf[string, time.Time]]
}

func New(cfg config.DiscordConfigs, channelCache ChannelCache) *Endpoint {
	return &Endpoint{
		BotToken:          cfg.BotToken,
		GuildID:           cfg.GuildID,
		AuditLogReason:    cfg.AuditLogReason,
		apiGenerator:      api.NewGenerator(apiURL),
		channelCache:      channelCache,
		rateLimitResource: xsync.NewMapOf[*xsync.MapOf[string, time.Time]](),
	}
}

func (e *Endpoint) newRequest(path string, args ...any) api.Client {
	return e.apiGenerator.New(path, args...).
		Header("User-Agent", userAgent)
}

func (e *Endpoint) newMutation(path string, args ...any) api.Client {
	return e.newRequest(path, args...).
		Header("X-Audit-Log-Reason", e.AuditLogReason)
}

func (e *Endpoint) auth() api.Opt {
	return api.OAuth2("Bot", e.BotToken)
}

// checkResponse maps a response status to the error taxonomy. 204 No Content
// is success with an empty body.
func checkResponse(resp *api.Response) error {
	switch {
	case resp.Code == http.StatusNoContent:
		return nil
	case resp.Code == http.StatusNotFound:
		return ErrChannelNotFound
	case resp.Code >= 400:
		body, ok := resp.Body.(api.JSON)
		if !ok {
			body = api.JSON{}
		}
		return &APIError{Status: resp.Code, Body: body}
	}

	return nil
}

func responseJSON(resp *api.Response) (api.JSON, error) {
	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return nil, errors.New("invalid response")
	}

	return body, nil
}

func responseArray(resp *api.Response) (api.Array, error) {
	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	switch body := resp.Body.(type) {
	case api.Array:
		return body, nil
	case api.JSON:
		if len(body) == 0 {
			return api.Array{}, nil
		}
	}

	return nil, errors.New("invalid response")
}

// GetTextChannel returns a text channel through the cache. Repeated calls
// return distinct objects, so callers can mutate their copy freely.
func (e *Endpoint) GetTextChannel(ctx context.Context, channelID string) (*TextChannel, error) {
	if tc, ok := e.channelCache.Get(ctx, channelID); ok {
		return tc, nil
	}

	resp, err := e.newRequest("/channels/%s", channelID).GET(ctx, e.auth())
	if err != nil {
		return nil, err
	}

	body, err := responseJSON(resp)
	if err != nil {
		return nil, err
	}

	tc, err := TextChannelFromWire(body)
	if err != nil {
		return nil, err
	}

	e.channelCache.Set(ctx, tc)
	return tc.Copy(), nil
}

// SaveChannel persists a text channel. A channel without an id is created;
// one with an id is patched with the delta against the last known remote
// state. A delta holding only the id skips the network call entirely and
// returns the channel unchanged.
func (e *Endpoint) SaveChannel(ctx context.Context, channel *TextChannel) (*TextChannel, error) {
	if channel.ID == "" {
		payload := channel.ToWire()
		delete(payload, "id")

		resp, err := e.newMutation("/guilds/%s/channels", e.GuildID).
			Body(payload).
			POST(ctx, e.auth())
		if err != nil {
			return nil, err
		}

		return e.parseAndCache(ctx, resp)
	}

	old, err := e.GetTextChannel(ctx, channel.ID)
	if err != nil {
		return nil, err
	}

	diff := Delta(old, channel)
	if len(diff) == 1 {
		// Nothing changed.
		return channel, nil
	}

	resp, err := e.newMutation("/channels/%s", channel.ID).
		Body(diff).
		PATCH(ctx, e.auth())
	if err != nil {
		return nil, err
	}

	return e.parseAndCache(ctx, resp)
}

func (e *Endpoint) parseAndCache(ctx context.Context, resp *api.Response) (*TextChannel, error) {
	body, err := responseJSON(resp)
	if err != nil {
		return nil, err
	}

	tc, err := TextChannelFromWire(body)
	if err != nil {
		return nil, err
	}

	e.channelCache.Set(ctx, tc)
	return tc, nil
}

// SaveChannelToCategory saves a channel ensuring it lives under a category
// named categoryName, or categoryName-1, -2, ... when earlier candidates are
// at Discord's child-count ceiling. Categories are created on demand. After
// ten full candidates the guild's channel budget is presumed exhausted and
// ErrGuildFull is returned.
func (e *Endpoint) SaveChannelToCategory(
	ctx context.Context, channel *TextChannel, categoryName string,
) (*TextChannel, error) {
	nameRe, err := regexp.Compile(`(?i)^` + regexp.QuoteMeta(categoryName) + `(-\d+)?$`)
	if err != nil {
		return nil, err
	}

	categories, err := e.GetAllCategories(ctx)
	if err != nil {
		return nil, err
	}

	parent := categories[channel.ParentID]
	if parent != nil && nameRe.MatchString(parent.Name) {
		// Already under a matching category; save in place.
		return e.SaveChannel(ctx, channel)
	}

	byName := make(map[string]*Category, len(categories))
	for _, cat := range categories {
		byName[cat.Name] = cat
	}

	for i := 0; i < maxCategoryCandidates; i++ {
		name := categoryName
		if i > 0 {
			name = fmt.Sprintf("%s-%d", categoryName, i)
		}

		cat, ok := byName[name]
		if !ok {
			// No category by this name yet; create it and move there.
			newCat, err := e.CreateCategory(ctx, name)
			if err != nil {
				return nil, err
			}

			channel.ParentID = newCat.ID
			return e.SaveChannel(ctx, channel)
		}

		if parent != nil && cat.ID == parent.ID {
			// This is the category we're already in; save normally.
			return e.SaveChannel(ctx, channel)
		}

		channel.ParentID = cat.ID
		saved, err := e.SaveChannel(ctx, channel)
		if err != nil {
			if IsMaxChannelsError(err) {
				// This category has too many children; try the next name.
				continue
			}

			return nil, err
		}

		return saved, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrGuildFull, categoryName)
}

func (e *Endpoint) CreateCategory(ctx context.Context, name string) (*Category, error) {
	resp, err := e.newMutation("/guilds/%s/channels", e.GuildID).
		Body(api.JSON{"name": name, "type": ChannelTypeCategory}).
		POST(ctx, e.auth())
	if err != nil {
		return nil, err
	}

	body, err := responseJSON(resp)
	if err != nil {
		return nil, err
	}

	return CategoryFromWire(body)
}

// DeleteChannel deletes a channel and evicts it from the cache.
func (e *Endpoint) DeleteChannel(ctx context.Context, channelID string) error {
	e.channelCache.Drop(ctx, channelID)

	resp, err := e.newMutation("/channels/%s", channelID).DELETE(ctx, e.auth())
	if err != nil {
		return err
	}

	return checkResponse(resp)
}

// loadAllChannels fetches every channel in the guild and partitions them by
// type, caching the text channels along the way.
func (e *Endpoint) loadAllChannels(ctx context.Context) (*ChannelData, error) {
	resp, err := e.newRequest("/guilds/%s/channels", e.GuildID).GET(ctx, e.auth())
	if err != nil {
		return nil, err
	}

	array, err := responseArray(resp)
	if err != nil {
		return nil, err
	}

	data := newChannelData()
	for _, obj := range array {
		kind, err := obj.GetInt("type")
		if err != nil {
			return nil, err
		}

		switch kind {
		case ChannelTypeCategory:
			cat, err := CategoryFromWire(obj)
			if err != nil {
				return nil, err
			}
			data.Categories[cat.ID] = cat

		case ChannelTypeText:
			tc, err := TextChannelFromWire(obj)
			if err != nil {
				return nil, err
			}
			data.TextChannels[tc.ID] = tc
			e.channelCache.Set(ctx, tc)

		default:
			ch, err := ChannelFromWire(obj)
			if err != nil {
				return nil, err
			}
			data.Other[ch.ID] = ch
		}
	}

	return data, nil
}

func (e *Endpoint) GetAllCategories(ctx context.Context) (map[string]*Category, error) {
	data, err := e.loadAllChannels(ctx)
	if err != nil {
		return nil, err
	}

	return data.Categories, nil
}

func (e *Endpoint) GetAllTextChannels(ctx context.Context) (map[string]*TextChannel, error) {
	data, err := e.loadAllChannels(ctx)
	if err != nil {
		return nil, err
	}

	return data.TextChannels, nil
}

func (e *Endpoint) GetGuildRoles(ctx context.Context) ([]Role, error) {
	resp, err := e.newRequest("/guilds/%s/roles", e.GuildID).GET(ctx, e.auth())
	if err != nil {
		return nil, err
	}

	array, err := responseArray(resp)
	if err != nil {
		return nil, err
	}

	var roles []Role
	for _, obj := range array {
		id, err := obj.GetString("id")
		if err != nil {
			return nil, err
		}

		name, err := obj.GetString("name")
		if err != nil {
			return nil, err
		}

		roles = append(roles, Role{ID: id, Name: name})
	}

	return roles, nil
}

// GetMembersInGuild returns the first 1000 members of the guild.
func (e *Endpoint) GetMembersInGuild(ctx context.Context) ([]Member, error) {
	resp, err := e.newRequest("/guilds/%s/members", e.GuildID).
		Query(api.Parameter{"limit": "1000"}).
		GET(ctx, e.auth())
	if err != nil {
		return nil, err
	}

	array, err := responseArray(resp)
	if err != nil {
		return nil, err
	}

	var members []Member
	for _, obj := range array {
		id, err := obj.GetString("user.id")
		if err != nil {
			return nil, err
		}

		username, _ := obj.GetString("user.username")
		nick, _ := obj.GetString("nick")
		members = append(members, Member{User: User{ID: id, Username: username}, Nick: nick})
	}

	return members, nil
}

// GetMemberByID finds a member by discord id, or returns nil if the id isn't
// among the first 1000 members.
func (e *Endpoint) GetMemberByID(ctx context.Context, discordID string) (*Member, error) {
	members, err := e.GetMembersInGuild(ctx)
	if err != nil {
		return nil, err
	}

	for i := range members {
		if members[i].User.ID == discordID {
			return &members[i], nil
		}
	}

	return nil, nil
}

// PostMessage posts a message to a channel. A string payload is wrapped as
// {content: payload}; content is truncated to Discord's 2000 character cap.
func (e *Endpoint) PostMessage(ctx context.Context, channelID string, payload any) error {
	if err := e.checkLimitingResource(postMessageResource, channelID); err != nil {
		return err
	}

	var body api.JSON
	switch t := payload.(type) {
	case string:
		body = api.JSON{"content": t}
	case api.JSON:
		body = t
	default:
		return fmt.Errorf("%w: unsupported payload type %T", ErrInvalidArgument, payload)
	}

	if content, ok := body["content"].(string); ok {
		body["content"] = truncate(content, maxMessageLength)
	}

	resp, err := e.newMutation("/channels/%s/messages", channelID).
		Body(body).
		POST(ctx, e.auth())
	if err != nil {
		return err
	}

	if err := e.checkTooManyRequest(resp, postMessageResource, channelID); err != nil {
		return err
	}

	return checkResponse(resp)
}

// GetChannelMessages retrieves up to limit of the newest messages in a
// channel, paginating backward with before=<oldest id seen>. It stops early
// when a page is empty or the remote answers 429 or 204.
func (e *Endpoint) GetChannelMessages(
	ctx context.Context, channelID string, limit int,
) ([]Message, error) {
	var messages []Message
	before := ""

	for len(messages) < limit {
		query := api.Parameter{"limit": strconv.Itoa(math.MinInt(limit, 100))}
		if before != "" {
			query["before"] = before
		}

		resp, err := e.newRequest("/channels/%s/messages", channelID).
			Query(query).
			GET(ctx, e.auth())
		if err != nil {
			return nil, err
		}

		if resp.Code == http.StatusTooManyRequests || resp.Code == http.StatusNoContent {
			// Rate limited or ran out of messages; return what we have.
			break
		}

		array, err := responseArray(resp)
		if err != nil {
			return nil, err
		}

		if len(array) == 0 {
			break
		}

		for _, obj := range array {
			id, err := obj.GetString("id")
			if err != nil {
				return nil, err
			}

			authorID, _ := obj.GetString("author.id")
			webhookID, _ := obj.GetString("webhook_id")
			messages = append(messages, Message{
				ID:        id,
				WebhookID: webhookID,
				Author:    User{ID: authorID},
			})

			if before == "" || lessID(id, before) {
				before = id
			}
		}
	}

	if len(messages) > limit {
		messages = messages[:limit]
	}

	return messages, nil
}

// GetMessageAuthorsInChannel returns the distinct author ids of non-webhook
// messages among the last limit messages.
func (e *Endpoint) GetMessageAuthorsInChannel(
	ctx context.Context, channelID string, limit int,
) ([]string, error) {
	messages, err := e.GetChannelMessages(ctx, channelID, limit)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var authors []string
	for _, msg := range messages {
		if msg.WebhookID != "" {
			continue
		}

		if !seen[msg.Author.ID] {
			seen[msg.Author.ID] = true
			authors = append(authors, msg.Author.ID)
		}
	}

	return authors, nil
}

func (e *Endpoint) checkLimitingResource(resource, identifier string) error {
	if limit, ok := e.rateLimitResource.Load(resource); ok {
		if resetAt, ok := limit.Load(identifier); ok {
			if resetAt.After(time.Now()) {
				return wrapRateLimit(resetAt.Unix())
			}

			// The rate limit expired; forget it.
			limit.Delete(identifier)
		}
	}

	return nil
}

func (e *Endpoint) checkTooManyRequest(resp *api.Response, resource, identifier string) error {
	if resp.Code == http.StatusTooManyRequests {
		resetAt, err := strconv.Atoi(resp.Header.Get("X-Ratelimit-Reset"))
		if err != nil {
			return err
		}

		resourceLimiter, _ := e.rateLimitResource.LoadOrStore(resource, xsync.NewMapOf[time.Time]())
		resourceLimiter.Store(identifier, time.Unix(int64(resetAt), 0))
		return wrapRateLimit(int64(resetAt))
	}

	return nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max])
}
