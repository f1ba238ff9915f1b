package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env      string         `toml:"env"`
	LogLevel string         `toml:"log_level"`
	Discord  DiscordConfigs `toml:"discord"`
	Redis    RedisConfigs   `toml:"redis"`
}

type DiscordConfigs struct {
	BotToken       string `toml:"bot_token"`
	GuildID        string `toml:"guild_id"`
	AuditLogReason string `toml:"audit_log_reason"`

	// CacheTimeoutSeconds is the lifetime of channel cache entries.
	CacheTimeoutSeconds int `toml:"cache_timeout_seconds"`
}

// IsEnabled reports whether the integration is configured. Operations must
// not reach Discord when this is false.
func (d DiscordConfigs) IsEnabled() bool {
	return d.BotToken != "" && d.GuildID != ""
}

func (d DiscordConfigs) CacheTimeout() time.Duration {
	if d.CacheTimeoutSeconds <= 0 {
		return 10 * time.Minute
	}

	return time.Duration(d.CacheTimeoutSeconds) * time.Second
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

// Load reads configurations from a TOML file, then overrides secrets from
// the environment. An empty path loads from the environment only.
func Load(path string) (Configs, error) {
	var cfg Configs
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, err
		}
	}

	if token := os.Getenv("DISCORD_BOT_TOKEN"); token != "" {
		cfg.Discord.BotToken = token
	}

	if guildID := os.Getenv("DISCORD_GUILD_ID"); guildID != "" {
		cfg.Discord.GuildID = guildID
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}

	if cfg.Discord.AuditLogReason == "" {
		cfg.Discord.AuditLogReason = "via Puzzup integration"
	}

	return cfg, nil
}
