package discord

import (
	"fmt"
	"strconv"
	"strings"
)

// Permission is a set of Discord permission bits. The bit values follow
// Discord's published permission numbering, so serialized values are
// wire-compatible.
type Permission uint64

const (
	PermissionNone                    Permission = 0
	PermissionCreateInstantInvite     Permission = 0x00000001
	PermissionKickMembers             Permission = 0x00000002
	PermissionBanMembers              Permission = 0x00000004
	PermissionAdministrator           Permission = 0x00000008
	PermissionManageChannels          Permission = 0x00000010
	PermissionManageGuild             Permission = 0x00000020
	PermissionAddReactions            Permission = 0x00000040
	PermissionViewAuditLog            Permission = 0x00000080
	PermissionPrioritySpeaker         Permission = 0x00000100
	PermissionStream                  Permission = 0x00000200
	PermissionViewChannel             Permission = 0x00000400
	PermissionSendMessages            Permission = 0x00000800
	PermissionSendTTSMessages         Permission = 0x00001000
	PermissionManageMessages          Permission = 0x00002000
	PermissionEmbedLinks              Permission = 0x00004000
	PermissionAttachFiles             Permission = 0x00008000
	PermissionReadMessageHistory      Permission = 0x00010000
	PermissionMentionEveryone         Permission = 0x00020000
	PermissionUseExternalEmojis       Permission = 0x00040000
	PermissionViewGuildInsights       Permission = 0x00080000
	PermissionConnect                 Permission = 0x00100000
	PermissionSpeak                   Permission = 0x00200000
	PermissionMuteMembers             Permission = 0x00400000
	PermissionDeafenMembers           Permission = 0x00800000
	PermissionMoveMembers             Permission = 0x01000000
	PermissionUseVAD                  Permission = 0x02000000
	PermissionChangeNickname          Permission = 0x04000000
	PermissionManageNicknames         Permission = 0x08000000
	PermissionManageRoles             Permission = 0x10000000
	PermissionManageWebhooks          Permission = 0x20000000
	PermissionManageEmojis            Permission = 0x40000000
	PermissionUseSlashCommands        Permission = 0x80000000
	PermissionRequestToSpeak          Permission = 0x0100000000
	PermissionManageThreads           Permission = 0x0400000000
	PermissionCreatePublicThreads     Permission = 0x0800000000
	PermissionCreatePrivateThreads    Permission = 0x1000000000
	PermissionUseExternalStickers     Permission = 0x2000000000
	PermissionSendMessagesInThreads   Permission = 0x4000000000
	PermissionStartEmbeddedActivities Permission = 0x8000000000
)

// permissionNames lists every named bit in declaration order. Render order
// and name lookup are both driven by this table.
var permissionNames = []struct {
	Name string
	Bit  Permission
}{
	{"CREATE_INSTANT_INVITE", PermissionCreateInstantInvite},
	{"KICK_MEMBERS", PermissionKickMembers},
	{"BAN_MEMBERS", PermissionBanMembers},
	{"ADMINISTRATOR", PermissionAdministrator},
	{"MANAGE_CHANNELS", PermissionManageChannels},
	{"MANAGE_GUILD", PermissionManageGuild},
	{"ADD_REACTIONS", PermissionAddReactions},
	{"VIEW_AUDIT_LOG", PermissionViewAuditLog},
	{"PRIORITY_SPEAKER", PermissionPrioritySpeaker},
	{"STREAM", PermissionStream},
	{"VIEW_CHANNEL", PermissionViewChannel},
	{"SEND_MESSAGES", PermissionSendMessages},
	{"SEND_TTS_MESSAGES", PermissionSendTTSMessages},
	{"MANAGE_MESSAGES", PermissionManageMessages},
	{"EMBED_LINKS", PermissionEmbedLinks},
	{"ATTACH_FILES", PermissionAttachFiles},
	{"READ_MESSAGE_HISTORY", PermissionReadMessageHistory},
	{"MENTION_EVERYONE", PermissionMentionEveryone},
	{"USE_EXTERNAL_EMOJIS", PermissionUseExternalEmojis},
	{"VIEW_GUILD_INSIGHTS", PermissionViewGuildInsights},
	{"CONNECT", PermissionConnect},
	{"SPEAK", PermissionSpeak},
	{"MUTE_MEMBERS", PermissionMuteMembers},
	{"DEAFEN_MEMBERS", PermissionDeafenMembers},
	{"MOVE_MEMBERS", PermissionMoveMembers},
	{"USE_VAD", PermissionUseVAD},
	{"CHANGE_NICKNAME", PermissionChangeNickname},
	{"MANAGE_NICKNAMES", PermissionManageNicknames},
	{"MANAGE_ROLES", PermissionManageRoles},
	{"MANAGE_WEBHOOKS", PermissionManageWebhooks},
	{"MANAGE_EMOJIS", PermissionManageEmojis},
	{"USE_SLASH_COMMANDS", PermissionUseSlashCommands},
	{"REQUEST_TO_SPEAK", PermissionRequestToSpeak},
	{"MANAGE_THREADS", PermissionManageThreads},
	{"CREATE_PUBLIC_THREADS", PermissionCreatePublicThreads},
	{"CREATE_PRIVATE_THREADS", PermissionCreatePrivateThreads},
	{"USE_EXTERNAL_STICKERS", PermissionUseExternalStickers},
	{"SEND_MESSAGES_IN_THREADS", PermissionSendMessagesInThreads},
	{"START_EMBEDDED_ACTIVITIES", PermissionStartEmbeddedActivities},
}

var permissionByName = func() map[string]Permission {
	m := make(map[string]Permission, len(permissionNames)+1)
	m["NO_PERMISSION"] = PermissionNone
	for _, p := range permissionNames {
		m[p.Name] = p.Bit
	}
	return m
}()

// PermissionOf coerces a value to a Permission. It accepts an existing
// Permission, any integer, a base-10 numeric string, a symbolic bit name
// (case-sensitive), or nil (no permission).
func PermissionOf(value any) (Permission, error) {
	switch v := value.(type) {
	case nil:
		return PermissionNone, nil
	case Permission:
		return v, nil
	case int:
		return Permission(v), nil
	case int64:
		return Permission(v), nil
	case uint64:
		return Permission(v), nil
	case float64:
		return Permission(v), nil
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return Permission(n), nil
		}

		if p, ok := permissionByName[v]; ok {
			return p, nil
		}

		return PermissionNone, fmt.Errorf("%w: no permission named %q", ErrInvalidArgument, v)
	}

	return PermissionNone, fmt.Errorf("%w: cannot convert %T to a permission", ErrInvalidArgument, value)
}

func (p Permission) Union(other Permission) Permission {
	return p | other
}

// Contains reports whether every bit of other is set in p.
func (p Permission) Contains(other Permission) bool {
	return p&other == other
}

func (p Permission) IsZero() bool {
	return p == 0
}

// String renders the named bits of p joined by pipes, in declaration order.
// Unknown high bits are preserved in the value but never named.
func (p Permission) String() string {
	if p == 0 {
		return "NO_PERMISSION"
	}

	var names []string
	for _, entry := range permissionNames {
		if p.Contains(entry.Bit) {
			names = append(names, entry.Name)
		}
	}

	if len(names) == 0 {
		return strconv.FormatUint(uint64(p), 10)
	}

	return strings.Join(names, "|")
}
