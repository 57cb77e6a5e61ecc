package app

import (
	"errors"
	"time"
)

// Config contains all runtime configuration loaded from environment variables.
type Config struct {
	HTTPAddr string
	LogLevel string

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int

	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	// If true, /readyz returns 503 unless the database is configured and
	// reachable.
	ReadinessRequireDB bool

	// CORS allowlist. Empty disables origin checks entirely. An entry may
	// end in ":*" to allow any port on that host.
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
	CORSMaxAgeSeconds    int

	// TokenKeyHex is the hex-encoded 32-byte symmetric key all session
	// tokens are encrypted with. Required.
	TokenKeyHex string

	// Classification service settings. The API key is required; the rest
	// default sanely.
	BadWordsURL       string
	BadWordsAPIKey    string
	BadWordsRetryBase time.Duration
	BadWordsTimeout   time.Duration
}

// LoadConfig loads Config from environment variables. It fails fast when a
// required secret is missing so a misconfigured deployment never answers
// requests.
func LoadConfig() (Config, error) {
	cfg := Config{
		HTTPAddr: EnvString("QUILL_HTTP_ADDR", "0.0.0.0:8080"),
		LogLevel: EnvString("QUILL_LOG_LEVEL", "info"),

		ReadHeaderTimeout: EnvDuration("QUILL_HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       EnvDuration("QUILL_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      EnvDuration("QUILL_HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:       EnvDuration("QUILL_HTTP_IDLE_TIMEOUT", 60*time.Second),

		MaxHeaderBytes: EnvInt("QUILL_HTTP_MAX_HEADER_BYTES", 1<<20),

		DatabaseURL: EnvString("QUILL_DATABASE_URL", ""),
		DBMaxConns:  EnvInt32("QUILL_DB_MAX_CONNS", 10),
		DBMinConns:  EnvInt32("QUILL_DB_MIN_CONNS", 0),

		ReadinessRequireDB: EnvBool("QUILL_READINESS_REQUIRE_DB", false),

		CORSAllowedOrigins:   EnvStringList("QUILL_CORS_ALLOWED_ORIGINS"),
		CORSAllowCredentials: EnvBool("QUILL_CORS_ALLOW_CREDENTIALS", false),
		CORSMaxAgeSeconds:    EnvInt("QUILL_CORS_MAX_AGE_SECONDS", 600),

		TokenKeyHex: EnvString("QUILL_TOKEN_KEY_HEX", ""),

		BadWordsURL:       EnvString("QUILL_BAD_WORDS_URL", "https://api.apilayer.com/bad_words"),
		BadWordsAPIKey:    EnvString("QUILL_BAD_WORDS_API_KEY", ""),
		BadWordsRetryBase: EnvDuration("QUILL_BAD_WORDS_RETRY_BASE", 250*time.Millisecond),
		BadWordsTimeout:   EnvDuration("QUILL_BAD_WORDS_TIMEOUT", 10*time.Second),
	}

	if cfg.TokenKeyHex == "" {
		return Config{}, errors.New("QUILL_TOKEN_KEY_HEX must be set")
	}
	if cfg.BadWordsAPIKey == "" {
		return Config{}, errors.New("QUILL_BAD_WORDS_API_KEY must be set")
	}
	return cfg, nil
}
