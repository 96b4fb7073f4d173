package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type envConfig struct {
	APP_PORT      string
	LOG_FILE_PATH string
	LOG_LEVEL     string

	DB_HOST              string
	DB_PORT              int
	DB_USER              string
	DB_PASSWORD          string
	DB_NAME              string
	DB_SSL_MODE          string
	DB_MAX_OPEN_CONNS    int
	DB_MAX_IDLE_CONNS    int
	DB_CONN_MAX_LIFETIME time.Duration

	ES_URL           string
	ES_PRODUCT_INDEX string

	GCP_PROJECT_ID string

	REPORT_CONFIG_PATH string
	PDF_LAYOUT         string
	IMAGE_WORKERS      int
	CURRENCY_PREFIX    string
}

// DefaultEnvConfig holds the configuration loaded by LoadEnvConfig.
var DefaultEnvConfig = &envConfig{}

// LoadEnvConfig reads an optional .env file and then the process environment.
// Values already present in the environment win over the file.
func LoadEnvConfig(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &envConfig{
		APP_PORT:      getString("APP_PORT", "8080"),
		LOG_FILE_PATH: getString("LOG_FILE_PATH", ""),
		LOG_LEVEL:     getString("LOG_LEVEL", "info"),

		DB_HOST:     getString("DB_HOST", ""),
		DB_USER:     getString("DB_USER", "postgres"),
		DB_PASSWORD: getString("DB_PASSWORD", ""),
		DB_NAME:     getString("DB_NAME", "farmnex"),
		DB_SSL_MODE: getString("DB_SSL_MODE", "disable"),

		ES_URL:           getString("ES_URL", ""),
		ES_PRODUCT_INDEX: getString("ES_PRODUCT_INDEX", "products"),

		GCP_PROJECT_ID: getString("GCP_PROJECT_ID", ""),

		REPORT_CONFIG_PATH: getString("REPORT_CONFIG_PATH", ""),
		PDF_LAYOUT:         getString("PDF_LAYOUT", "auto"),
		CURRENCY_PREFIX:    getString("CURRENCY_PREFIX", "LKR"),
	}

	var err error
	if cfg.DB_PORT, err = getInt("DB_PORT", 5432); err != nil {
		return err
	}
	if cfg.DB_MAX_OPEN_CONNS, err = getInt("DB_MAX_OPEN_CONNS", 25); err != nil {
		return err
	}
	if cfg.DB_MAX_IDLE_CONNS, err = getInt("DB_MAX_IDLE_CONNS", 5); err != nil {
		return err
	}
	if cfg.IMAGE_WORKERS, err = getInt("IMAGE_WORKERS", 4); err != nil {
		return err
	}
	if cfg.DB_CONN_MAX_LIFETIME, err = getDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute); err != nil {
		return err
	}

	switch cfg.PDF_LAYOUT {
	case "auto", "manual":
	default:
		return fmt.Errorf("invalid PDF_LAYOUT %q: expected auto or manual", cfg.PDF_LAYOUT)
	}

	DefaultEnvConfig = cfg
	return nil
}

func getString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
