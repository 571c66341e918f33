package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *GlobalConfig {
	cfg := DefaultGlobalConfig()
	cfg.Sources = []SourceConfig{
		{Name: "system", Path: "system.log", Format: FormatText, Pattern: DefaultTextPattern},
		{Name: "event", Path: "event.jsonl", Format: FormatJSONL},
	}
	cfg.Rules = []RuleConfig{
		{Source: "system"},
		{Source: "event", Message: "C", NewSession: true, SessionTitle: "Session C"},
		{Source: "event"},
	}
	return &cfg
}

func hasError(result *ValidationResult, field string) bool {
	for _, e := range result.Errors {
		if e.Field == field {
			return true
		}
	}
	return false
}

func hasWarning(result *ValidationResult, field string) bool {
	for _, w := range result.Warnings {
		if w.Field == field {
			return true
		}
	}
	return false
}

// TestValidate_Valid tests a clean configuration
// TestValidate_Valid 测试一个干净的配置
func TestValidate_Valid(t *testing.T) {
	result := NewConfigValidator().Validate(validConfig())
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

// TestValidate_Errors tests each error class
// TestValidate_Errors 测试每一类错误
func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *GlobalConfig)
		field  string
	}{
		{
			name:   "Undeclared source",
			mutate: func(cfg *GlobalConfig) { cfg.Rules[0].Source = "radio" },
			field:  "rules[0].source",
		},
		{
			name:   "Empty rule source",
			mutate: func(cfg *GlobalConfig) { cfg.Rules[0].Source = "" },
			field:  "rules[0].source",
		},
		{
			name:   "Bad message pattern",
			mutate: func(cfg *GlobalConfig) { cfg.Rules[1].Message = "(" },
			field:  "rules[1].message",
		},
		{
			name:   "Bad tag pattern",
			mutate: func(cfg *GlobalConfig) { cfg.Rules[1].Tag = "[" },
			field:  "rules[1].tag",
		},
		{
			name:   "Duplicate source",
			mutate: func(cfg *GlobalConfig) { cfg.Sources[1].Name = "system" },
			field:  "sources[1].name",
		},
		{
			name:   "Unknown source format",
			mutate: func(cfg *GlobalConfig) { cfg.Sources[0].Format = "csv" },
			field:  "sources[0].format",
		},
		{
			name:   "Missing named group",
			mutate: func(cfg *GlobalConfig) { cfg.Sources[0].Pattern = `^(?P<ts>\d+) (?P<msg>.*)$` },
			field:  "sources[0].pattern",
		},
		{
			name:   "Missing path",
			mutate: func(cfg *GlobalConfig) { cfg.Sources[0].Path = "" },
			field:  "sources[0].path",
		},
		{
			name:   "Unknown report format",
			mutate: func(cfg *GlobalConfig) { cfg.Report.Format = "pdf" },
			field:  "report.format",
		},
		{
			name:   "Unknown log format",
			mutate: func(cfg *GlobalConfig) { cfg.Logging.Format = "logfmt" },
			field:  "logging.format",
		},
		{
			name:   "No rules",
			mutate: func(cfg *GlobalConfig) { cfg.Rules = nil },
			field:  "rules",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			result := NewConfigValidator().Validate(cfg)
			assert.False(t, result.Valid)
			assert.True(t, hasError(result, tt.field), "expected error on %s, got %+v", tt.field, result.Errors)
		})
	}
}

// TestValidate_Warnings tests non-fatal findings
// TestValidate_Warnings 测试非致命问题
func TestValidate_Warnings(t *testing.T) {
	t.Run("Unreachable rule", func(t *testing.T) {
		cfg := validConfig()
		cfg.Rules = append(cfg.Rules, RuleConfig{Source: "event", Tag: "never"})
		result := NewConfigValidator().Validate(cfg)
		assert.True(t, result.Valid)
		assert.True(t, hasWarning(result, "rules[3]"))
	})

	t.Run("Catch-all opening sessions", func(t *testing.T) {
		cfg := validConfig()
		cfg.Rules[0].NewSession = true
		result := NewConfigValidator().Validate(cfg)
		assert.True(t, hasWarning(result, "rules[0].new_session"))
	})

	t.Run("Unreferenced source", func(t *testing.T) {
		cfg := validConfig()
		cfg.Sources = append(cfg.Sources, SourceConfig{Name: "radio", Path: "radio.log", Format: FormatText, Pattern: DefaultTextPattern})
		result := NewConfigValidator().Validate(cfg)
		assert.True(t, result.Valid)
		require.True(t, hasWarning(result, "sources"))
	})

	t.Run("File logging without path", func(t *testing.T) {
		cfg := validConfig()
		cfg.Logging.Enabled = true
		cfg.Logging.Path = ""
		result := NewConfigValidator().Validate(cfg)
		assert.True(t, result.Valid)
		assert.True(t, hasWarning(result, "logging.path"))
	})

	t.Run("Title without new session", func(t *testing.T) {
		cfg := validConfig()
		cfg.Rules[0].SessionTitle = "ignored"
		result := NewConfigValidator().Validate(cfg)
		assert.True(t, hasWarning(result, "rules[0].session_title"))
	})
}

// TestValidateSyntax tests raw YAML syntax checks
// TestValidateSyntax 测试原始 YAML 语法检查
func TestValidateSyntax(t *testing.T) {
	v := NewConfigValidator()
	assert.True(t, v.ValidateSyntax([]byte("rules: []\n")).Valid)
	assert.False(t, v.ValidateSyntax([]byte("rules: [\n")).Valid)
}
