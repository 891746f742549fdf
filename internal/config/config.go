package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageFile   = "file"
	StorageMemory = "memory"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Host             string
	Port             string
	MaxConnections   int
	DataFile         string
	Storage          string
	PersistCustomers bool
	AdminAddr        string
	EventsURL        string
	EventsQueue      string
	LogLevel         string
	ShutdownTimeout  time.Duration
}

// Load applies envFile (when it exists) and then reads HOTEL_* variables.
// Variables already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	//nolint:exhaustruct
	conf := &Config{
		Host:        envStr("HOTEL_HOST", "127.0.0.1"),
		Port:        envStr("HOTEL_PORT", "2807"),
		DataFile:    envStr("HOTEL_DATA_FILE", defaultDataFile()),
		Storage:     strings.ToLower(envStr("HOTEL_STORAGE", StorageFile)),
		AdminAddr:   envStr("HOTEL_ADMIN_ADDR", ""),
		EventsURL:   envStr("HOTEL_EVENTS_URL", ""),
		EventsQueue: envStr("HOTEL_EVENTS_QUEUE", "hotel.bookings"),
		LogLevel:    envStr("HOTEL_LOG_LEVEL", "info"),
	}

	var err error

	if conf.MaxConnections, err = envInt("HOTEL_MAX_CONNECTIONS", 64); err != nil { //nolint:gomnd
		return nil, err
	}

	if conf.PersistCustomers, err = envBool("HOTEL_PERSIST_CUSTOMERS", false); err != nil {
		return nil, err
	}

	if conf.ShutdownTimeout, err = envDuration("HOTEL_SHUTDOWN_TIMEOUT", 4*time.Second); err != nil { //nolint:gomnd
		return nil, err
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

func (c *Config) validate() error {
	if c.MaxConnections < 1 {
		return fmt.Errorf("HOTEL_MAX_CONNECTIONS must be positive: %w", ErrInvalid)
	}

	if c.Storage != StorageFile && c.Storage != StorageMemory {
		return fmt.Errorf("HOTEL_STORAGE %q is not %s or %s: %w", c.Storage, StorageFile, StorageMemory, ErrInvalid)
	}

	if c.Storage == StorageFile && c.DataFile == "" {
		return fmt.Errorf("HOTEL_DATA_FILE is empty: %w", ErrInvalid)
	}

	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("HOTEL_SHUTDOWN_TIMEOUT must be positive: %w", ErrInvalid)
	}

	return nil
}

// defaultDataFile keeps the data where earlier server builds wrote it.
func defaultDataFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("Server App", "hotels.txt")
	}

	return filepath.Join(home, "Server App", "hotels.txt")
}

func envStr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}

	return def
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not a number: %w", key, v, ErrInvalid)
	}

	return n, nil
}

func envBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s=%q is not a boolean: %w", key, v, ErrInvalid)
	}

	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not a duration: %w", key, v, ErrInvalid)
	}

	return d, nil
}
