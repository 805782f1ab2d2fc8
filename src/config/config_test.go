package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"GEMINI_API_KEY", "MODEL", "ENABLE_SEARCH", "AI_RETRIES",
		"X_THRESH", "Y_THRESH", "GROUP_Y_THRESH", "VISUALIZE",
		"CLICK_RULE", "CLICK_BACKEND", "CLICK_MARGIN", "CLICK_BUTTON",
		"MOVE_DURATION_MS", "MOVE_STEPS", "ANSWER_KEY", "COPY_KEY",
		"SCREENSHOT_DIR", "PASS_DEADLINE_SEC", "ENABLE_FILE_LOGGING",
	} {
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.XThresh != 20 || cfg.YThresh != 4 || cfg.GroupYThresh != 35 {
		t.Errorf("thresholds = %d/%d/%d", cfg.XThresh, cfg.YThresh, cfg.GroupYThresh)
	}
	if cfg.ClickRule != "random" || cfg.ClickBackend != "auto" || cfg.ClickButton != "left" {
		t.Errorf("click defaults = %q/%q/%q", cfg.ClickRule, cfg.ClickBackend, cfg.ClickButton)
	}
	if cfg.ClickMargin != 2 {
		t.Errorf("ClickMargin = %d", cfg.ClickMargin)
	}
	if cfg.MoveDuration != 200*time.Millisecond || cfg.MoveSteps != 15 {
		t.Errorf("move = %v/%d", cfg.MoveDuration, cfg.MoveSteps)
	}
	if cfg.AnswerKey != "p" || cfg.CopyKey != "o" {
		t.Errorf("keys = %q/%q", cfg.AnswerKey, cfg.CopyKey)
	}
	if cfg.ScreenshotDir != "img" {
		t.Errorf("ScreenshotDir = %q", cfg.ScreenshotDir)
	}
	if cfg.PassDeadline != 60*time.Second {
		t.Errorf("PassDeadline = %v", cfg.PassDeadline)
	}
	if cfg.AIRetries != 2 {
		t.Errorf("AIRetries = %d", cfg.AIRetries)
	}
	if cfg.EnableSearch || cfg.Visualize || cfg.EnableFileLogging {
		t.Error("boolean flags should default to false")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k-123")
	t.Setenv("MODEL", "gemini-2.5-pro")
	t.Setenv("ENABLE_SEARCH", "TRUE")
	t.Setenv("X_THRESH", "30")
	t.Setenv("CLICK_RULE", "left-middle")
	t.Setenv("MOVE_DURATION_MS", "500")
	t.Setenv("PASS_DEADLINE_SEC", "15")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIKey != "k-123" || cfg.Model != "gemini-2.5-pro" {
		t.Errorf("api = %q/%q", cfg.APIKey, cfg.Model)
	}
	if !cfg.EnableSearch {
		t.Error("EnableSearch should be true")
	}
	if cfg.XThresh != 30 {
		t.Errorf("XThresh = %d", cfg.XThresh)
	}
	if cfg.ClickRule != "left-middle" {
		t.Errorf("ClickRule = %q", cfg.ClickRule)
	}
	if cfg.MoveDuration != 500*time.Millisecond {
		t.Errorf("MoveDuration = %v", cfg.MoveDuration)
	}
	if cfg.PassDeadline != 15*time.Second {
		t.Errorf("PassDeadline = %v", cfg.PassDeadline)
	}
}

func TestLoadIgnoresMalformedInts(t *testing.T) {
	t.Setenv("X_THRESH", "twenty")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.XThresh != 20 {
		t.Errorf("XThresh = %d, want default 20", cfg.XThresh)
	}
}

func TestLoadReadsDotEnvFromOverridePath(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "custom.env")
	if err := os.WriteFile(envFile, []byte("GROUP_Y_THRESH=50\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	os.Unsetenv("GROUP_Y_THRESH")
	t.Setenv(EnvPathVar, envFile)
	defer os.Unsetenv("GROUP_Y_THRESH")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GroupYThresh != 50 {
		t.Errorf("GroupYThresh = %d, want 50", cfg.GroupYThresh)
	}
}
