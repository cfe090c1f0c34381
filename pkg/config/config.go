package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/gofrs/uuid"

	"pktfwd/pkg/globals"
)

const (
	defaultSPIBus       = "spidev0.0"
	defaultResetPin     = 17
	defaultStartupDelay = 5 * time.Second
	defaultMaxAttempts  = 5
	defaultBackoff      = 2 * time.Second
)

// Config holds the effective supervisor settings, resolved once at startup
// from environment variables and the built-in path defaults.
type Config struct {
	Region       string
	SPIBus       string
	ResetPin     int
	StartupDelay time.Duration

	SentryDSN string
	DeviceID  string
	AppName   string

	DiagnosticsPath string

	RootDir             string
	SX1301ConfigsDir    string
	SX1301ResetScript   string
	SX1301ForwarderDir  string
	SX1302ConfigsDir    string
	SX1302ResetScript   string
	SX1302ForwarderPath string
	ChipIDPath          string

	MaxLaunchAttempts int
	LaunchBackoff     time.Duration
}

var instance *Config
var once sync.Once

// Init resolves the configuration from the environment. REGION is the only
// required variable; everything else has a default.
func Init() error {
	var err error
	once.Do(func() {
		instance, err = load(globals.IdentityPath)
	})
	return err
}

// Get returns the singleton config instance
func Get() *Config {
	if instance == nil {
		panic("config not initialized - call Init() first")
	}
	return instance
}

func load(identityPath string) (*Config, error) {
	region := os.Getenv("REGION")
	if region == "" {
		return nil, fmt.Errorf("REGION environment variable is not set")
	}

	cfg := &Config{
		Region:       region,
		SPIBus:       envStr("SPI_BUS", defaultSPIBus),
		StartupDelay: envSeconds("STARTUP_DELAY_SECONDS", defaultStartupDelay),

		SentryDSN: os.Getenv("SENTRY_DSN"),
		AppName:   envStr("BALENA_APP_NAME", "pktfwd"),

		DiagnosticsPath: envStr("DIAGNOSTICS_FILEPATH", globals.DiagnosticsPath),

		RootDir:             envStr("ROOT_DIR", globals.RootDir),
		SX1301ConfigsDir:    envStr("SX1301_REGION_CONFIGS_DIR", globals.SX1301RegionConfigsDir),
		SX1301ResetScript:   envStr("SX1301_RESET_LGW_FILEPATH", globals.SX1301ResetScriptPath),
		SX1301ForwarderDir:  envStr("SX1301_LORA_PKT_FWD_DIR", globals.SX1301ForwarderDir),
		SX1302ConfigsDir:    envStr("SX1302_REGION_CONFIGS_DIR", globals.SX1302RegionConfigsDir),
		SX1302ResetScript:   envStr("SX1302_RESET_LGW_FILEPATH", globals.SX1302ResetScriptPath),
		SX1302ForwarderPath: envStr("SX1302_LORA_PKT_FWD_FILEPATH", globals.SX1302ForwarderPath),
		ChipIDPath:          envStr("UTIL_CHIP_ID_FILEPATH", globals.ChipIDPath),

		MaxLaunchAttempts: envInt("LORA_PKT_FWD_MAX_TRIES", defaultMaxAttempts),
		LaunchBackoff:     envSeconds("LORA_PKT_FWD_RETRY_SLEEP_SECONDS", defaultBackoff),
	}

	pin, err := strconv.Atoi(envStr("RESET_LGW_PIN", strconv.Itoa(defaultResetPin)))
	if err != nil {
		return nil, fmt.Errorf("invalid RESET_LGW_PIN: %w", err)
	}
	cfg.ResetPin = pin

	// The fleet platform assigns a device UUID; fall back to a locally
	// generated, persisted identity when running outside the fleet.
	cfg.DeviceID = os.Getenv("BALENA_DEVICE_UUID")
	if cfg.DeviceID == "" {
		id, err := ensureIdentity(identityPath)
		if err != nil {
			return nil, err
		}
		cfg.DeviceID = id
	}

	return cfg, nil
}

type identity struct {
	ID string `json:"id"`
}

// ensureIdentity reads the persisted gateway identity, creating it on
// first boot.
func ensureIdentity(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		var ident identity
		if err := json.Unmarshal(data, &ident); err == nil && ident.ID != "" {
			return ident.ID, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("failed to generate gateway ID: %w", err)
	}

	data, err = json.MarshalIndent(identity{ID: id.String()}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal identity: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write identity: %w", err)
	}

	return id.String(), nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envSeconds(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return time.Duration(n) * time.Second
}
