package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/robfig/cron/v3"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "JOBTRIAGE"

	defaultDBPath       = "jobtriage.db"
	defaultLogFile      = "jobtriage.log"
	defaultPageSize     = 20
	maxPageSize         = 500
	defaultPollSchedule = "@every 30s"
	defaultSaveDebounce = time.Second
)

// Keys double as flag names and, upper-cased with the prefix, as
// environment variable names (JOBTRIAGE_API, JOBTRIAGE_PAGE_SIZE, ...).
const (
	KeyAPI      = "api"
	KeyToken    = "token"
	KeyDB       = "db"
	KeyLogFile  = "log-file"
	KeyLogLevel = "log-level"
	KeyPageSize = "page-size"
	KeyPoll     = "poll"
	KeyDebounce = "debounce"
)

// Config holds runtime settings for the CLI app.
type Config struct {
	APIBaseURL   string
	Token        string
	DBPath       string
	LogFile      string
	LogLevel     string
	PageSize     int
	PollSchedule string
	SaveDebounce time.Duration
}

// NewViper returns a viper instance reading JOBTRIAGE_* variables with
// every default set.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyDB, defaultDBPath)
	v.SetDefault(KeyLogFile, defaultLogFile)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyPageSize, defaultPageSize)
	v.SetDefault(KeyPoll, defaultPollSchedule)
	v.SetDefault(KeyDebounce, defaultSaveDebounce)
	return v
}

// BindFlags registers the command line flags on fs and binds them to v.
// Flags win over environment variables.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	fs.String(KeyAPI, "", "base URL of the jobs API (env JOBTRIAGE_API)")
	fs.String(KeyToken, "", "bearer token for the jobs API (env JOBTRIAGE_TOKEN)")
	fs.String(KeyDB, defaultDBPath, "path of the local SQLite database")
	fs.String(KeyLogFile, defaultLogFile, "file receiving the application log")
	fs.String(KeyLogLevel, "info", "log level (debug, info, warn, error)")
	fs.Int(KeyPageSize, defaultPageSize, "jobs fetched per page")
	fs.String(KeyPoll, defaultPollSchedule, "cron spec for the new-jobs check")
	fs.Duration(KeyDebounce, defaultSaveDebounce, "delay before a text edit is saved")

	var result *multierror.Error
	for _, key := range []string{KeyAPI, KeyToken, KeyDB, KeyLogFile, KeyLogLevel, KeyPageSize, KeyPoll, KeyDebounce} {
		if err := v.BindPFlag(key, fs.Lookup(key)); err != nil {
			result = multierror.Append(result, fmt.Errorf("bind flag %s: %w", key, err))
		}
	}
	return result.ErrorOrNil()
}

// Load reads the configuration from v and validates it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		APIBaseURL:   strings.TrimSpace(v.GetString(KeyAPI)),
		Token:        v.GetString(KeyToken),
		DBPath:       v.GetString(KeyDB),
		LogFile:      v.GetString(KeyLogFile),
		LogLevel:     v.GetString(KeyLogLevel),
		PageSize:     v.GetInt(KeyPageSize),
		PollSchedule: v.GetString(KeyPoll),
		SaveDebounce: v.GetDuration(KeyDebounce),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFromEnv reads the configuration from the environment only.
func LoadFromEnv() (Config, error) {
	return Load(NewViper())
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var result *multierror.Error

	if c.APIBaseURL == "" {
		result = multierror.Append(result, errors.New("JOBTRIAGE_API is required"))
	} else {
		if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
			result = multierror.Append(result, fmt.Errorf("APIBaseURL must be an http(s) URL: %s", c.APIBaseURL))
		}
		if strings.HasSuffix(c.APIBaseURL, "/") {
			result = multierror.Append(result, fmt.Errorf("APIBaseURL must not end with '/': %s", c.APIBaseURL))
		}
	}
	if c.DBPath == "" {
		result = multierror.Append(result, errors.New("DBPath is required"))
	}
	if c.LogFile == "" {
		result = multierror.Append(result, errors.New("LogFile is required"))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		result = multierror.Append(result, fmt.Errorf("LogLevel must be debug, info, warn or error: %s", c.LogLevel))
	}
	if c.PageSize < 1 || c.PageSize > maxPageSize {
		result = multierror.Append(result, fmt.Errorf("PageSize must be between 1 and %d: %d", maxPageSize, c.PageSize))
	}
	if _, err := cron.ParseStandard(c.PollSchedule); err != nil {
		result = multierror.Append(result, fmt.Errorf("PollSchedule %q: %w", c.PollSchedule, err))
	}
	if c.SaveDebounce <= 0 {
		result = multierror.Append(result, fmt.Errorf("SaveDebounce must be positive: %s", c.SaveDebounce))
	}

	return result.ErrorOrNil()
}
