package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"cosmossdk.io/log"

	"github.com/otimlabs/wormhole-admin/types"
)

// AppState is the modifiable state of the application.
type AppState struct {
	Config     *types.Config
	ConfigPath string
	LogLevel   string
	Logger     log.Logger

	// overrides from persistent flags, applied over the file and environment
	RPC     string
	Keypair string
}

func NewAppState() *AppState {
	return &AppState{}
}

// InitAppState sets up the logger and loads the config once per process
func (a *AppState) InitAppState() error {
	a.InitLogger()
	return a.loadConfigFile()
}

// InitLogger creates a new logger with the specified log level.
// Logs go to stderr so command results on stdout stay pipeable.
func (a *AppState) InitLogger() {
	if a.Logger != nil {
		return
	}

	var level zerolog.Level
	switch a.LogLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "error":
		level = zerolog.ErrorLevel
	default:
		level = zerolog.InfoLevel
	}

	a.Logger = log.NewLogger(os.Stderr, log.LevelOption(level))
}

func (a *AppState) loadConfigFile() error {
	if a.Config != nil {
		return nil
	}

	cfg, err := ParseConfig(a.ConfigPath)
	if err != nil {
		return fmt.Errorf("unable to parse config file %s: %w", a.ConfigPath, err)
	}

	if a.RPC != "" {
		cfg.Solana.RPC = a.RPC
	}
	if a.Keypair != "" {
		cfg.Solana.KeypairPath = a.Keypair
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	a.Logger.Debug("Successfully parsed config", "location", a.ConfigPath, "rpc", cfg.Solana.RPC)
	a.Config = cfg
	return nil
}
