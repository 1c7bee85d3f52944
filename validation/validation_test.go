package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/slaybot/errors"
)

type inner struct {
	Token string `mapstructure:"token" validate:"required"`
}

type outer struct {
	Name     string `mapstructure:"name" validate:"required"`
	Capacity int    `mapstructure:"history_capacity" validate:"gte=1"`
	Telegram inner  `mapstructure:"telegram"`
	Format   string `json:"format" validate:"omitempty,oneof=json console"`
}

func TestValidate_Valid(t *testing.T) {
	err := Validate(outer{Name: "bot", Capacity: 20, Telegram: inner{Token: "t"}, Format: "json"})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestValidate_ReportsConfigKeys(t *testing.T) {
	err := Validate(outer{Capacity: 0, Format: "xml"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}

	msg := err.Error()
	for _, want := range []string{
		"name is required",
		"history_capacity must be greater than or equal to 1",
		"telegram.token is required",
		"format must be one of: json console",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}

	appErr, _ := errors.AsAppError(err)
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 4 {
		t.Errorf("expected 4 field errors, got %v", appErr.Details["fields"])
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Name":        "name",
		"MediaRef":    "media_ref",
		"idleTimeout": "idle_timeout",
		"A":           "a",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
