package main

import (
	"context"

	"github.com/puzzup/backend/config"
	"github.com/puzzup/backend/internal/domain"
	"github.com/puzzup/backend/pkg/api/discord"
	"github.com/puzzup/backend/pkg/logger"
	"github.com/puzzup/backend/pkg/xcontext"
	"github.com/puzzup/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
)

type srv struct {
	app *cli.App

	configs config.Configs
	logger  logger.Logger

	redisClient   xredis.Client
	channelCache  discord.ChannelCache
	endpoint      discord.IEndpoint
	discordDomain domain.DiscordDomain
}

func (s *srv) loadConfig(ctx *cli.Context) error {
	var err error
	s.configs, err = config.Load(ctx.String("config"))
	return err
}

func (s *srv) loadLogger(ctx *cli.Context) error {
	s.logger = logger.NewLoggerByName(s.configs.LogLevel)
	return nil
}

func (s *srv) loadEndpoint(ctx *cli.Context) error {
	if s.configs.Redis.Addr != "" {
		var err error
		s.redisClient, err = xredis.NewClient(ctx.Context, s.configs.Redis.Addr)
		if err != nil {
			return err
		}

		s.channelCache = discord.NewRedisChannelCache(s.redisClient, s.configs.Discord.CacheTimeout())
	} else {
		s.channelCache = discord.NewMemoryChannelCache(s.configs.Discord.CacheTimeout())
	}

	s.endpoint = discord.New(s.configs.Discord, s.channelCache)
	return nil
}

func (s *srv) loadDomains(ctx *cli.Context) error {
	s.discordDomain = domain.NewDiscordDomain(s.configs.Discord, s.endpoint)
	return nil
}

// newContext builds the request context every command runs with.
func (s *srv) newContext() context.Context {
	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, s.configs)
	ctx = xcontext.WithLogger(ctx, s.logger)
	return ctx
}

func (s *srv) before(ctx *cli.Context) error {
	for _, load := range []func(*cli.Context) error{
		s.loadConfig,
		s.loadLogger,
		s.loadEndpoint,
		s.loadDomains,
	} {
		if err := load(ctx); err != nil {
			return err
		}
	}

	return nil
}
