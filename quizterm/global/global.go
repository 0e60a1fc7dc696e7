package global

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/sagewynn/whosthat/leaderboard"
	"github.com/sagewynn/whosthat/pokeapi"
	"github.com/sagewynn/whosthat/porygon"
	"github.com/sagewynn/whosthat/quizterm/shared/sessionfs"
)

// GlobalConfig comes from config.json in the user config dir; any WHOSTHAT_*
// environment variable wins over the file.
type GlobalConfig struct {
	LocalPlayerName string `json:"localPlayerName" env:"WHOSTHAT_PLAYER_NAME"`
	APIBaseURL      string `json:"apiBaseUrl" env:"WHOSTHAT_API_URL"`
	LeaderboardPath string `json:"leaderboardPath" env:"WHOSTHAT_LEADERBOARD_PATH"`
	SessionPath     string `json:"sessionPath" env:"WHOSTHAT_SESSION_PATH"`
	MaxPokemonID    int    `json:"maxPokemonId" env:"WHOSTHAT_MAX_POKEMON_ID"`
	Debug           bool   `json:"debug" env:"WHOSTHAT_DEBUG"`
}

var (
	TERM_WIDTH, TERM_HEIGHT, _ = term.GetSize(int(os.Stdout.Fd()))

	SelectKey = key.NewBinding(
		key.WithKeys("enter"),
	)
	MoveDownKey = key.NewBinding(
		key.WithKeys("down", "j"),
	)
	MoveUpKey = key.NewBinding(
		key.WithKeys("up", "k"),
	)

	DownTabKey = key.NewBinding(key.WithKeys(tea.KeyTab.String()))
	UpTabKey   = key.NewBinding(key.WithKeys(tea.KeyShiftTab.String()))

	BackKey = key.NewBinding(key.WithKeys(tea.KeyEsc.String()))

	Opt = GlobalConfig{}

	// Collaborators shared by every view, wired up once in GlobalInit.
	Lookup   porygon.Lookup
	Scores   *leaderboard.Store
	Sessions sessionfs.Store
)

func GlobalInit(shouldLog bool) {
	configDir := DefaultConfigDir()
	configFilepath := DefaultConfigLocation()

	// Basic logging for config debugging
	initLogger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	if err := os.MkdirAll(configDir, 0750); err != nil {
		initLogger.Err(err).Msg("error occured trying to create config dir")
	}

	configContents, err := os.ReadFile(configFilepath)
	if err != nil {
		_, err := os.Create(configFilepath)
		if err != nil {
			initLogger.Err(err).Msg("error occurred while trying to create config file")
		}
	}

	if len(configContents) > 0 {
		newOpts := GlobalConfig{}
		if err := json.Unmarshal(configContents, &newOpts); err != nil {
			initLogger.Err(err).Msg("error occurred while trying to read config file")
		} else {
			Opt = populateConfig(newOpts)
		}
	} else {
		config := populateConfig(GlobalConfig{})
		configBytes, err := json.Marshal(config)
		if err != nil {
			initLogger.Err(err).Msg("error occurred while trying to marshal default config values")
		}

		if err := os.WriteFile(configFilepath, configBytes, 0666); err != nil {
			initLogger.Err(err).Msg("error occurred while trying to write default config values")
		}

		Opt = config
	}

	// Environment wins over the file
	if err := env.Parse(&Opt); err != nil {
		initLogger.Err(err).Msg("error occurred while reading env overrides")
	}

	level := zerolog.InfoLevel
	if Opt.Debug {
		level = zerolog.DebugLevel
	}

	log.Logger = createLogger(configDir, level)
	if !shouldLog {
		log.Logger = zerolog.Nop()
	}

	Lookup = pokeapi.NewClient(Opt.APIBaseURL)
	Sessions = sessionfs.New(Opt.SessionPath)

	scores, err := leaderboard.Open(Opt.LeaderboardPath)
	if err != nil {
		// playable without a leaderboard, the views nil-check
		log.Err(err).Str("path", Opt.LeaderboardPath).Msg("could not open the score database")
	} else {
		Scores = scores
	}

	log.Info().
		Str("api", Opt.APIBaseURL).
		Int("maxPokemon", Opt.MaxPokemonID).
		Msg("initialized")
}

func createFileWriter(configDir string) zerolog.ConsoleWriter {
	rollingWriter := NewRollingFileWriter(filepath.Join(configDir, "logs/"), "whosthat")
	return zerolog.ConsoleWriter{Out: rollingWriter, NoColor: true}
}

func createLogger(configDir string, level zerolog.Level) zerolog.Logger {
	return zerolog.New(createFileWriter(configDir)).With().Timestamp().Caller().Logger().Level(level)
}

func populateConfig(config GlobalConfig) GlobalConfig {
	configDir := DefaultConfigDir()

	if config.APIBaseURL == "" {
		config.APIBaseURL = pokeapi.DefaultBaseURL
	}
	if config.LeaderboardPath == "" {
		config.LeaderboardPath = filepath.Join(configDir, "scores.db")
	}
	if config.SessionPath == "" {
		config.SessionPath = sessionfs.DefaultPath(configDir)
	}
	if config.MaxPokemonID < 1 {
		config.MaxPokemonID = porygon.DefaultMaxID
	}

	return config
}
