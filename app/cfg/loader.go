package cfg

import (
	"cmp"
	"fmt"
	"strconv"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

const DefaultPort = "6060"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Server configuration
	Port string `long:"port" env:"PORT" default:"6060" description:"HTTP server port"`

	// Bluesky credentials (optional; both required to enable /bluesky without a token)
	BlueskyIdentifier string `long:"bluesky-identifier" env:"BLUESKY_IDENTIFIER" description:"Bluesky account identifier (handle or email)"`
	BlueskyPassword   string `long:"bluesky-password" env:"BLUESKY_PASSWORD" description:"Bluesky app password"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"masto-rss/1.0" description:"User agent string for upstream requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:              normalizePort(raw.Port),
		BlueskyIdentifier: raw.BlueskyIdentifier,
		BlueskyPassword:   raw.BlueskyPassword,
		UserAgent:         raw.UserAgent,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if (cfg.BlueskyIdentifier == "") != (cfg.BlueskyPassword == "") {
		return nil, fmt.Errorf("BLUESKY_IDENTIFIER and BLUESKY_PASSWORD must be set together")
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// normalizePort falls back to the default port when the configured value is
// not a usable TCP port (non-numeric, zero, or out of range).
func normalizePort(port string) string {
	n, err := strconv.Atoi(port)
	if err != nil || n <= 0 || n > 65535 {
		return DefaultPort
	}
	return port
}
