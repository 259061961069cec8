package config

import (
	"log/slog"
	"reflect"
	"testing"
	"time"
)

func lookupFrom(env map[string]string) func(string) string {
	return func(key string) string { return env[key] }
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(lookupFrom(nil))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Addr() != "127.0.0.1:3000" {
		t.Fatalf("unexpected addr %s", cfg.Addr())
	}
	if cfg.SurveyDuration != 60*time.Second {
		t.Fatalf("unexpected duration %s", cfg.SurveyDuration)
	}
	if cfg.DefaultTitle != "New Survey" {
		t.Fatalf("unexpected title %q", cfg.DefaultTitle)
	}
	if !reflect.DeepEqual(cfg.DefaultChoices, []string{"A", "B", "C", "D", "E"}) {
		t.Fatalf("unexpected choices %v", cfg.DefaultChoices)
	}
	if cfg.LogLevel != slog.LevelInfo || cfg.LogFormat != "text" {
		t.Fatalf("unexpected log settings %v %s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse(lookupFrom(map[string]string{
		"APP_PORT":               "8081",
		"SURVEY_DURATION":        "2m",
		"SURVEY_DEFAULT_CHOICES": " red , green,,blue ",
		"VOTE_RATE_PER_MINUTE":   "0",
		"LOG_LEVEL":              "DEBUG",
		"LOG_FORMAT":             "JSON",
	}))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Port != "8081" || cfg.SurveyDuration != 2*time.Minute {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.DefaultChoices, []string{"red", "green", "blue"}) {
		t.Fatalf("unexpected choices %v", cfg.DefaultChoices)
	}
	if cfg.VoteRatePerMinute != 0 {
		t.Fatalf("expected rate limiting disabled")
	}
	if cfg.LogLevel != slog.LevelDebug || cfg.LogFormat != "json" {
		t.Fatalf("unexpected log settings %v %s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestParseRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "bad duration", env: map[string]string{"SURVEY_DURATION": "soon"}},
		{name: "zero duration", env: map[string]string{"SURVEY_DURATION": "0s"}},
		{name: "negative rate", env: map[string]string{"VOTE_RATE_PER_MINUTE": "-1"}},
		{name: "bad burst", env: map[string]string{"VOTE_RATE_BURST": "lots"}},
		{name: "bad level", env: map[string]string{"LOG_LEVEL": "loud"}},
		{name: "bad format", env: map[string]string{"LOG_FORMAT": "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(lookupFrom(tt.env)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
