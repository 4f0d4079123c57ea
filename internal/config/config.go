// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zzstar101/jellyfin-playback-report/internal/validation"
)

// Classification policies for series category resolution. The two policies
// have incompatible fallback behavior and are never mixed within a run.
const (
	PolicyLibrary = "library" // classify by parent library id, unknowns default to tv
	PolicyGenres  = "genres"  // classify by genre/tag markers, unknowns default to anime
)

// Config holds the application configuration.
type Config struct {
	App        AppConfig
	Logger     LoggerConfig
	EventLog   EventLogConfig
	Jellyfin   JellyfinConfig
	MoviePilot MoviePilotConfig
	Report     ReportConfig
	Delivery   DeliveryConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string `name:"ENV" validate:"oneof=development staging production"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// EventLogConfig describes where the playback event-log snapshot lives and
// how it is synced locally before a run.
type EventLogConfig struct {
	// SSH connection for pulling the snapshot from the media host.
	Host       string
	Port       int
	User       string
	Password   string
	RemotePath string

	// CacheDir holds the local copy of the snapshot database.
	CacheDir string
}

// DBPath returns the local path of the cached snapshot database.
func (c EventLogConfig) DBPath() string {
	return filepath.Join(c.CacheDir, "playback_reporting.db")
}

// JellyfinConfig holds the media server API configuration.
type JellyfinConfig struct {
	BaseURL string `name:"JELLYFIN_URL" validate:"required"`
	APIKey  string `name:"JELLYFIN_API_KEY" validate:"required"`
	Timeout time.Duration
}

// MoviePilotConfig holds the subscription service API configuration.
type MoviePilotConfig struct {
	BaseURL  string
	APIToken string
	Username string
	Password string
	Timeout  time.Duration
}

// ReportConfig holds report generation configuration.
type ReportConfig struct {
	SiteName string
	TopN     int `name:"TOP_N" validate:"min=1"`

	// TimezoneOffsetHours shifts the report window from UTC.
	TimezoneOffsetHours int

	// ClassificationPolicy selects how series are split between tv and anime.
	ClassificationPolicy string `name:"CLASSIFICATION_POLICY" validate:"oneof=library genres"`
	// AnimeLibraryID and TVLibraryID are the parent container ids used by the
	// library policy.
	AnimeLibraryID string
	TVLibraryID    string

	// ResolverConcurrency bounds the category-resolution fan-out.
	ResolverConcurrency int `name:"RESOLVER_CONCURRENCY" validate:"min=1"`

	OutputDir string
	FontPath  string
	BoldFont  string

	// SubscriptionsFile is a local YAML fallback used for the calendar when
	// MoviePilot is not configured.
	SubscriptionsFile string
}

// Location returns the report timezone.
func (c ReportConfig) Location() *time.Location {
	return time.FixedZone("report", c.TimezoneOffsetHours*3600)
}

// DeliveryConfig holds image hosting and push notification configuration.
type DeliveryConfig struct {
	Enabled       bool
	LskyURL       string
	LskyToken     string
	ServerChanKey string
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")

	sshHost := flag.String("ssh-host", "", "Media host for event-log snapshot fetch")
	sshPort := flag.String("ssh-port", "", "SSH port (default: 22)")
	sshUser := flag.String("ssh-user", "", "SSH user")
	sshPassword := flag.String("ssh-password", "", "SSH password")
	remoteDBPath := flag.String("remote-db-path", "", "Remote path of playback_reporting.db")
	cacheDir := flag.String("cache-dir", "", "Local cache directory (default: ./cache)")

	jellyfinURL := flag.String("jellyfin-url", "", "Jellyfin server base URL")
	jellyfinKey := flag.String("jellyfin-api-key", "", "Jellyfin API key")

	moviepilotURL := flag.String("moviepilot-url", "", "MoviePilot base URL")
	moviepilotToken := flag.String("moviepilot-token", "", "MoviePilot API token")
	moviepilotUser := flag.String("moviepilot-user", "", "MoviePilot username")
	moviepilotPassword := flag.String("moviepilot-password", "", "MoviePilot password")

	siteName := flag.String("site-name", "", "Site name shown on posters")
	topN := flag.String("top-n", "", "Entries per category (default: 3)")
	tzOffset := flag.String("tz-offset", "", "Report timezone offset in hours (default: 8)")
	policy := flag.String("classification-policy", "", "Series classification policy: library or genres (default: library)")
	animeLibraryID := flag.String("anime-library-id", "", "Parent library id for anime")
	tvLibraryID := flag.String("tv-library-id", "", "Parent library id for tv series")
	concurrency := flag.String("resolver-concurrency", "", "Category resolution worker count (default: 4)")
	outputDir := flag.String("output-dir", "", "Poster output directory (default: ./posters)")
	fontPath := flag.String("font-path", "", "Path to a TTF/TTC font for poster text")
	boldFont := flag.String("bold-font-path", "", "Path to a bold TTF/TTC font")
	subsFile := flag.String("subscriptions-file", "", "Local YAML subscriptions fallback for the calendar")

	pushEnabled := flag.String("push-enabled", "", "Upload and push the report (default: true)")
	lskyURL := flag.String("lsky-url", "", "Lsky image host base URL")
	lskyToken := flag.String("lsky-token", "", "Lsky API token")
	serverChanKey := flag.String("serverchan-key", "", "ServerChan push key")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		EventLog: EventLogConfig{
			Host:       getConfigValue(*sshHost, "SSH_HOST", ""),
			Port:       getIntConfigValue(*sshPort, "SSH_PORT", 22),
			User:       getConfigValue(*sshUser, "SSH_USER", ""),
			Password:   getConfigValue(*sshPassword, "SSH_PASSWORD", ""),
			RemotePath: getConfigValue(*remoteDBPath, "REMOTE_DB_PATH", ""),
			CacheDir:   getConfigValue(*cacheDir, "CACHE_DIR", "./cache"),
		},
		Jellyfin: JellyfinConfig{
			BaseURL: strings.TrimRight(getConfigValue(*jellyfinURL, "JELLYFIN_URL", ""), "/"),
			APIKey:  getConfigValue(*jellyfinKey, "JELLYFIN_API_KEY", ""),
			Timeout: 10 * time.Second,
		},
		MoviePilot: MoviePilotConfig{
			BaseURL:  strings.TrimRight(getConfigValue(*moviepilotURL, "MOVIEPILOT_URL", ""), "/"),
			APIToken: getConfigValue(*moviepilotToken, "MOVIEPILOT_API_TOKEN", ""),
			Username: getConfigValue(*moviepilotUser, "MOVIEPILOT_USERNAME", ""),
			Password: getConfigValue(*moviepilotPassword, "MOVIEPILOT_PASSWORD", ""),
			Timeout:  30 * time.Second,
		},
		Report: ReportConfig{
			SiteName:             getConfigValue(*siteName, "SITE_NAME", "Jellyfin"),
			TopN:                 getIntConfigValue(*topN, "TOP_N", 3),
			TimezoneOffsetHours:  getIntConfigValue(*tzOffset, "TZ_OFFSET", 8),
			ClassificationPolicy: getConfigValue(*policy, "CLASSIFICATION_POLICY", PolicyLibrary),
			AnimeLibraryID:       getConfigValue(*animeLibraryID, "ANIME_LIBRARY_ID", ""),
			TVLibraryID:          getConfigValue(*tvLibraryID, "TV_LIBRARY_ID", ""),
			ResolverConcurrency:  getIntConfigValue(*concurrency, "RESOLVER_CONCURRENCY", 4),
			OutputDir:            getConfigValue(*outputDir, "OUTPUT_DIR", "./posters"),
			FontPath:             getConfigValue(*fontPath, "FONT_PATH", ""),
			BoldFont:             getConfigValue(*boldFont, "BOLD_FONT_PATH", ""),
			SubscriptionsFile:    getConfigValue(*subsFile, "SUBSCRIPTIONS_FILE", ""),
		},
		Delivery: DeliveryConfig{
			Enabled:       getBoolConfigValue(*pushEnabled, "PUSH_ENABLED", true),
			LskyURL:       strings.TrimRight(getConfigValue(*lskyURL, "LSKY_URL", ""), "/"),
			LskyToken:     getConfigValue(*lskyToken, "LSKY_TOKEN", ""),
			ServerChanKey: getConfigValue(*serverChanKey, "SERVERCHAN_KEY", ""),
		},
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if err := validation.New().Validate(c); err != nil {
		return err
	}

	// Levels are matched case-insensitively, so they stay outside the
	// struct tags.
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	return nil
}

// expandPaths expands ~ and makes the cache and output paths absolute.
func (c *Config) expandPaths() error {
	expanded, err := expandPath(c.EventLog.CacheDir, "./cache")
	if err != nil {
		return fmt.Errorf("invalid cache dir: %w", err)
	}
	c.EventLog.CacheDir = expanded

	expanded, err = expandPath(c.Report.OutputDir, "./posters")
	if err != nil {
		return fmt.Errorf("invalid output dir: %w", err)
	}
	c.Report.OutputDir = expanded

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		path = defaultPath
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, `"'`)

		// Env vars take precedence over the .env file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
