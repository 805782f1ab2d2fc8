package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// EnvPathVar points at an alternate .env file when none sits next to
	// the executable.
	EnvPathVar = "SCREEN_ANSWER_ENV"
)

// Config is the resolved runtime configuration.
type Config struct {
	APIKey       string
	Model        string
	EnableSearch bool
	AIRetries    int

	XThresh      int
	YThresh      int
	GroupYThresh int
	Visualize    bool

	ClickRule    string
	ClickBackend string
	ClickMargin  int
	ClickButton  string
	MoveDuration time.Duration
	MoveSteps    int

	AnswerKey string
	CopyKey   string

	ScreenshotDir     string
	PassDeadline      time.Duration
	EnableFileLogging bool
}

// Load reads configuration from a .env file (executable directory, then
// SCREEN_ANSWER_ENV) and the process environment.
func Load() (*Config, error) {
	if envPath := resolveEnvPath(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	cfg := &Config{
		APIKey:       os.Getenv("GEMINI_API_KEY"),
		Model:        getEnvWithDefault("MODEL", "gemini-2.5-flash"),
		EnableSearch: strings.ToLower(os.Getenv("ENABLE_SEARCH")) == "true",
		AIRetries:    getEnvInt("AI_RETRIES", 2),

		XThresh:      getEnvInt("X_THRESH", 20),
		YThresh:      getEnvInt("Y_THRESH", 4),
		GroupYThresh: getEnvInt("GROUP_Y_THRESH", 35),
		Visualize:    strings.ToLower(os.Getenv("VISUALIZE")) == "true",

		ClickRule:    getEnvWithDefault("CLICK_RULE", "random"),
		ClickBackend: getEnvWithDefault("CLICK_BACKEND", "auto"),
		ClickMargin:  getEnvInt("CLICK_MARGIN", 2),
		ClickButton:  getEnvWithDefault("CLICK_BUTTON", "left"),
		MoveDuration: time.Duration(getEnvInt("MOVE_DURATION_MS", 200)) * time.Millisecond,
		MoveSteps:    getEnvInt("MOVE_STEPS", 15),

		AnswerKey: getEnvWithDefault("ANSWER_KEY", "p"),
		CopyKey:   getEnvWithDefault("COPY_KEY", "o"),

		ScreenshotDir:     getEnvWithDefault("SCREENSHOT_DIR", "img"),
		PassDeadline:      time.Duration(getEnvInt("PASS_DEADLINE_SEC", 60)) * time.Second,
		EnableFileLogging: strings.ToLower(os.Getenv("ENABLE_FILE_LOGGING")) == "true",
	}

	return cfg, nil
}

func resolveEnvPath() string {
	execPath, err := os.Executable()
	if err == nil {
		exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
		if _, err := os.Stat(exeEnv); err == nil {
			return exeEnv
		}
	}

	if alt := os.Getenv(EnvPathVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	return ""
}

func getEnvWithDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
