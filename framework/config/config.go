package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the central typed configuration struct. The kernel registers it
// with the locator under "config", so recipes can reference it by that name.
type Config struct {
	App     AppConfig
	Locator LocatorConfig
	Log     LogConfig
	Trace   TraceConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
	Port  string

	// ShutdownTimeout bounds the graceful stop of the inspection server.
	ShutdownTimeout time.Duration
}

// LocatorConfig says where recipe files live.
type LocatorConfig struct {
	RecipeDir     string
	RecipePattern string // fmt pattern taking the identifier, e.g. locate.%s.yaml
}

type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // json | console
}

type TraceConfig struct {
	Enabled     bool
	Exporter    string // stdout | otlp
	Endpoint    string
	ServiceName string
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name:  Get("APP_NAME", "GoLocator"),
			Env:   Get("APP_ENV", "local"),
			Debug: GetBool("APP_DEBUG", true),
			Port:  Get("APP_PORT", "8000"),

			ShutdownTimeout: time.Duration(GetInt("APP_SHUTDOWN_TIMEOUT", 10)) * time.Second,
		},
		Locator: LocatorConfig{
			RecipeDir:     Get("LOCATOR_RECIPE_DIR", "./locator"),
			RecipePattern: Get("LOCATOR_RECIPE_PATTERN", "locate.%s.yaml"),
		},
		Log: LogConfig{
			Level:  Get("LOG_LEVEL", "info"),
			Format: Get("LOG_FORMAT", "json"),
		},
		Trace: TraceConfig{
			Enabled:     GetBool("TRACE_ENABLED", false),
			Exporter:    Get("TRACE_EXPORTER", "stdout"),
			Endpoint:    Get("TRACE_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName: Get("TRACE_SERVICE_NAME", "go-locator"),
		},
	}
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}
