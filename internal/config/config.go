package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/talkpad/talkpad/internal/app"
	"github.com/talkpad/talkpad/internal/gamepad"
	"github.com/talkpad/talkpad/internal/store"
)

// Config captures runtime configuration for the terminal client.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

// RelayConfig captures runtime configuration for the relay server.
type RelayConfig struct {
	Listen  string
	DBPath  string
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envDB               = "TALKPAD_DB"
	envGateway          = "TALKPAD_GATEWAY"
	envRelay            = "TALKPAD_RELAY"
	envJoystick         = "TALKPAD_JOYSTICK"
	envDeadzone         = "TALKPAD_DEADZONE"
	envDebounce         = "TALKPAD_DEBOUNCE"
	envNavigation       = "TALKPAD_NAVIGATION"
	envExtendedKeyboard = "TALKPAD_EXTENDED_KEYBOARD"
	envWidth            = "TALKPAD_WIDTH"
	envHeight           = "TALKPAD_HEIGHT"
	envNotify           = "TALKPAD_NOTIFY"
	envTrace            = "TALKPAD_TRACE"
	envLogFile          = "TALKPAD_LOG_FILE"
	envListen           = "TALKPAD_LISTEN"
)

const (
	defaultJoystick = "/dev/input/js0"
	defaultListen   = ":3001"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := pflag.NewFlagSet("talkpad", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	db := fs.String("db", envOrDefault(env, envDB, defaultDBPath()), "path to the sqlite database")
	gateway := fs.String("gateway", envOrDefault(env, envGateway, ""), "base URL of the SMS gateway (empty disables SMS)")
	relay := fs.String("relay", envOrDefault(env, envRelay, ""), "base URL of the notification relay (empty disables live updates)")
	joystick := fs.String("joystick", envOrDefault(env, envJoystick, defaultJoystick), "joystick device to read (empty disables the gamepad)")
	deadzone := fs.Float64("deadzone", envOrFloat(env, envDeadzone, gamepad.DefaultDeadzone), "stick deflection that must be exceeded to move")
	debounce := fs.Duration("debounce", envOrDuration(env, envDebounce, gamepad.DefaultDebounce), "minimum time between accepted stick moves")
	navigation := fs.String("navigation", envOrDefault(env, envNavigation, ""), "override the stored navigation mode (DEFAULT or ARROW_KEYS)")
	extended := fs.Bool("extended-keyboard", envOrBool(env, envExtendedKeyboard, false), "add the arrow cluster to the on-screen keyboard")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	notify := fs.Bool("notify", envOrBool(env, envNotify, true), "show desktop notifications for incoming messages")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	mode := strings.ToUpper(strings.TrimSpace(*navigation))
	cfg := Config{
		App: app.Config{
			DBPath:           *db,
			GatewayURL:       *gateway,
			RelayURL:         *relay,
			Joystick:         *joystick,
			Deadzone:         *deadzone,
			Debounce:         *debounce,
			Navigation:       mode,
			ExtendedKeyboard: *extended,
			Width:            *width,
			Height:           *height,
			Notify:           *notify,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"db":               *db,
			"gateway":          *gateway,
			"relay":            *relay,
			"joystick":         *joystick,
			"deadzone":         strconv.FormatFloat(*deadzone, 'f', -1, 64),
			"debounce":         debounce.String(),
			"navigation":       mode,
			"extendedKeyboard": strconv.FormatBool(*extended),
			"width":            strconv.Itoa(*width),
			"height":           strconv.Itoa(*height),
			"notify":           strconv.FormatBool(*notify),
			"trace":            strconv.FormatBool(*trace),
			"logFile":          *logFile,
		},
		Args: append([]string(nil), fs.Args()...),
	}

	return cfg, nil
}

// LoadRelay parses the relay server configuration.
func LoadRelay() (RelayConfig, error) {
	return LoadRelayArgs(os.Args[1:], os.Environ())
}

// LoadRelayArgs allows tests to supply specific args/environment.
func LoadRelayArgs(args []string, environ []string) (RelayConfig, error) {
	env := parseEnv(environ)

	fs := pflag.NewFlagSet("talkpad-relay", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	listen := fs.String("listen", envOrDefault(env, envListen, defaultListen), "address the relay listens on")
	db := fs.String("db", envOrDefault(env, envDB, defaultDBPath()), "path to the sqlite database")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return RelayConfig{}, err
	}
	if strings.TrimSpace(*listen) == "" {
		return RelayConfig{}, fmt.Errorf("listen address must not be empty")
	}

	return RelayConfig{
		Listen:  *listen,
		DBPath:  *db,
		Logging: Logging{FilePath: *logFile, Trace: *trace},
		Flags: map[string]string{
			"listen":  *listen,
			"db":      *db,
			"trace":   strconv.FormatBool(*trace),
			"logFile": *logFile,
		},
		Args: append([]string(nil), fs.Args()...),
	}, nil
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "talkpad.db"
	}
	return filepath.Join(dir, "talkpad", "talkpad.db")
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrFloat(env map[string]string, key string, fallback float64) float64 {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects option combinations the client cannot run with.
func Validate(cfg Config) error {
	switch cfg.App.Navigation {
	case "", store.NavigationDefault, store.NavigationArrowKeys:
	default:
		return fmt.Errorf("navigation must be %s or %s (got %q)", store.NavigationDefault, store.NavigationArrowKeys, cfg.App.Navigation)
	}
	if cfg.App.Deadzone < 0 || cfg.App.Deadzone >= 1 {
		return fmt.Errorf("deadzone must be in [0, 1) (got %v)", cfg.App.Deadzone)
	}
	if cfg.App.Debounce < 0 {
		return fmt.Errorf("debounce must be >= 0 (got %s)", cfg.App.Debounce)
	}
	if strings.TrimSpace(cfg.App.DBPath) == "" {
		return fmt.Errorf("database path must not be empty")
	}
	return nil
}
