package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rostersync/rostersync/internal/store/redis"
	"github.com/rostersync/rostersync/pkg/constants"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Store selection: firebase, redis, sqlite or memory
	Store string

	// Firebase
	FirebaseURL       string
	FirebaseSubdomain string
	FirebaseAuth      string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	// SQLite
	SQLitePath string

	// Snapshot is the YAML file the memory store loads and saves.
	Snapshot string

	// Armory
	ArmoryURL       string
	ArmoryUTCOffset time.Duration
	HTTPTimeout     time.Duration

	// Run
	RealmConcurrency     int
	GuildConcurrency     int
	CharacterConcurrency int
	Retries              int
	ContinueOnError      bool
	GuildTimeout         time.Duration
	TasksFile            string

	// Logging configuration. LogLevel is the --log-level flag,
	// ConfigLogLevel the log_level key from env or config file.
	LogLevel       string
	ConfigLogLevel string
	LogFormat      string
	LogOutput      string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.rostersync.yaml or ./.rostersync.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig(viper.New(), "")
}

// loadConfig reads configuration into v, using configFile when set.
func loadConfig(v *viper.Viper, configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".rostersync")
		// missing default config files are fine
		_ = v.ReadInConfig()
	}

	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		Store: strings.ToLower(v.GetString("store")),

		FirebaseURL:       v.GetString("firebase_url"),
		FirebaseSubdomain: v.GetString("firebase_subdomain"),
		FirebaseAuth:      v.GetString("firebase_auth"),

		RedisAddr:     v.GetString("redis_addr"),
		RedisPassword: v.GetString("redis_password"),
		RedisDB:       v.GetInt("redis_db"),
		RedisPrefix:   v.GetString("redis_prefix"),

		SQLitePath: v.GetString("sqlite_path"),
		Snapshot:   v.GetString("snapshot"),

		ArmoryURL:       v.GetString("armory_url"),
		ArmoryUTCOffset: v.GetDuration("armory_utc_offset"),
		HTTPTimeout:     v.GetDuration("http_timeout"),

		RealmConcurrency:     v.GetInt("realm_concurrency"),
		GuildConcurrency:     v.GetInt("guild_concurrency"),
		CharacterConcurrency: v.GetInt("character_concurrency"),
		Retries:              v.GetInt("retries"),
		ContinueOnError:      v.GetBool("continue_on_error"),
		GuildTimeout:         v.GetDuration("guild_timeout"),
		TasksFile:            v.GetString("tasks_file"),

		ConfigLogLevel: v.GetString("log_level"),
		LogFormat:      v.GetString("log_format"),
		LogOutput:      v.GetString("log_output"),
	}, nil
}

// setDefaults registers the default of every key, which also makes each
// key visible to AutomaticEnv.
func setDefaults(v *viper.Viper) {
	redisDefaults := redis.DefaultConfig()

	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("no_color", false)
	v.SetDefault("format", "")

	v.SetDefault("store", "firebase")
	v.SetDefault("firebase_url", "")
	v.SetDefault("firebase_subdomain", "")
	v.SetDefault("firebase_auth", "")
	v.SetDefault("redis_addr", redisDefaults.Addr)
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_prefix", redisDefaults.Prefix)
	v.SetDefault("sqlite_path", "rostersync.db")
	v.SetDefault("snapshot", "")

	v.SetDefault("armory_url", constants.DefaultArmoryURL)
	v.SetDefault("armory_utc_offset", constants.DefaultArmoryUTCOffset)
	v.SetDefault("http_timeout", constants.DefaultHTTPTimeout)

	v.SetDefault("realm_concurrency", constants.DefaultRealmConcurrency)
	v.SetDefault("guild_concurrency", constants.DefaultGuildConcurrency)
	v.SetDefault("character_concurrency", constants.DefaultCharacterConcurrency)
	v.SetDefault("retries", constants.DefaultRetries)
	v.SetDefault("continue_on_error", false)
	v.SetDefault("guild_timeout", constants.GuildSyncTimeout)
	v.SetDefault("tasks_file", "")

	v.SetDefault("log_level", "")
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel, storeName string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	c.LogLevel = logLevel
	if storeName != "" {
		c.Store = strings.ToLower(storeName)
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		// godotenv never overrides variables that are already set, so the
		// file loaded first wins
		_ = godotenv.Load(envFile)
	}
}
