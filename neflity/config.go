package neflity

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/restartfu/gophig"

	"github.com/neflity/neflity-site/neflity/internal"
	"github.com/neflity/neflity-site/neflity/rank"
	"github.com/neflity/neflity-site/neflity/srv"
	"github.com/neflity/neflity-site/neflity/util"
	"github.com/neflity/neflity-site/neflity/web"
)

// EnvPrefix prefixes every environment variable overriding the config,
// e.g. NEFLITY_SERVER_IP or NEFLITY_STATUS_POLLINTERVAL.
const EnvPrefix = "NEFLITY"

// Config holds the site configuration: the monitored game server, how it is
// polled, and what the pages link to.
type Config struct {
	Site struct {
		SentryDsn  string
		LogLevel   string // Can be "debug", "info", "warn", "error"
		LocalePath string
	}
	Server struct {
		Name            string `validate:"required"`
		IP              string `validate:"required,ip"`
		Port            int    `validate:"min=1,max=65535"`
		Game            string `validate:"required"`
		ConnectProtocol string `validate:"required,alphanum"`
	}
	Status struct {
		QueryURL       string `validate:"required,url"`
		PollInterval   util.Duration
		RequestTimeout util.Duration
	}
	Community struct {
		DiscordInvite string `validate:"required,url"`
	}
	Service struct {
		Address   string  `validate:"required"`
		RateLimit float64 `validate:"gt=0"`
		RateBurst int     `validate:"min=1"`
	}
	Ranks rank.Config
}

// DefaultConfig returns a config with prefilled default values.
func DefaultConfig() Config {
	c := Config{}

	c.Site.SentryDsn = ""
	c.Site.LogLevel = "info" // Default to info level in production
	c.Site.LocalePath = "resources/locales"

	c.Server.Name = "Shattered Universe"
	c.Server.IP = "45.62.160.68"
	c.Server.Port = 27080
	c.Server.Game = "source"
	c.Server.ConnectProtocol = "steam"

	c.Status.QueryURL = "https://gameserveranalytics.com/api/v2/query"
	c.Status.PollInterval = util.Duration(internal.DefaultPollInterval)
	c.Status.RequestTimeout = util.Duration(internal.DefaultRequestTimeout)

	c.Community.DiscordInvite = "https://discord.gg/INVITE_HERE"

	c.Service.Address = ":8080"
	c.Service.RateLimit = 2
	c.Service.RateBurst = 20

	c.Ranks = rank.DefaultConfig()

	return c
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Status.PollInterval.Std() < internal.MinPollInterval {
		return fmt.Errorf("invalid config: poll interval %s is below %s", c.Status.PollInterval.Std(), internal.MinPollInterval)
	}
	if c.Status.RequestTimeout.Std() <= 0 {
		return fmt.Errorf("invalid config: request timeout must be positive")
	}
	return nil
}

// ServerConfig returns the poller's view of the config.
func (c Config) ServerConfig() srv.Config {
	return srv.Config{
		IP:             c.Server.IP,
		Port:           c.Server.Port,
		Game:           c.Server.Game,
		QueryURL:       c.Status.QueryURL,
		Interval:       c.Status.PollInterval.Std(),
		RequestTimeout: c.Status.RequestTimeout.Std(),
	}
}

// WebConfig returns the pages' view of the config.
func (c Config) WebConfig() web.Config {
	return web.Config{
		SiteName:        c.Server.Name,
		Server:          c.ServerConfig(),
		ConnectProtocol: c.Server.ConnectProtocol,
		DiscordInvite:   c.Community.DiscordInvite,
		Ranks:           c.Ranks,
		RateLimit:       c.Service.RateLimit,
		RateBurst:       c.Service.RateBurst,
	}
}

// ParseLogLevel returns the appropriate slog.Level based on string configuration.
// Returns an error if the provided log level string is not recognized.
func ParseLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unrecognized log level: %q", level)
	}
}

// ReadConfig loads the site configuration from the TOML file at path.
// If the file doesn't exist, it creates a new one with default values.
// Variables from a .env file and the environment then override the file,
// and the result is validated.
func ReadConfig(path string) (Config, error) {
	g := gophig.NewGophig[Config](path, gophig.TOMLMarshaler{}, os.ModePerm)
	_, err := g.LoadConf()
	if errors.Is(err, fs.ErrNotExist) {
		err = g.SaveConf(DefaultConfig())
		if err != nil {
			return Config{}, err
		}
	}
	c, err := g.LoadConf()
	if err != nil {
		return Config{}, err
	}

	_ = godotenv.Load()
	if err = envconfig.Process(EnvPrefix, &c); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return c, c.Validate()
}
