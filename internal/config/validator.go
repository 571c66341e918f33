package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/livp123/logweave/internal/utils/logger"
	"gopkg.in/yaml.v3"
)

// ValidationError represents a single validation error.
// ValidationError 表示单个验证错误。
type ValidationError struct {
	Field   string `json:"field" yaml:"field"`                     // Field path (e.g., "rules[2].message")
	Message string `json:"message" yaml:"message"`                 // Error message
	Value   any    `json:"value,omitempty" yaml:"value,omitempty"` // The invalid value (optional)
}

// ValidationWarning represents a potential issue that's not critical.
// ValidationWarning 表示非关键的潜在问题。
type ValidationWarning struct {
	Field   string `json:"field" yaml:"field"`
	Message string `json:"message" yaml:"message"`
	Value   any    `json:"value,omitempty" yaml:"value,omitempty"`
}

// ValidationResult contains all validation errors and warnings.
// ValidationResult 包含所有验证错误和警告。
type ValidationResult struct {
	Valid    bool                `json:"valid" yaml:"valid"`
	Errors   []ValidationError   `json:"errors" yaml:"errors"`
	Warnings []ValidationWarning `json:"warnings" yaml:"warnings"`
}

// AddError adds a validation error.
// AddError 添加验证错误。
func (r *ValidationResult) AddError(field, message string, value any) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	})
	r.Valid = false
}

// AddWarning adds a validation warning.
// AddWarning 添加验证警告。
func (r *ValidationResult) AddWarning(field, message string, value any) {
	r.Warnings = append(r.Warnings, ValidationWarning{
		Field:   field,
		Message: message,
		Value:   value,
	})
}

func newResult() *ValidationResult {
	return &ValidationResult{Valid: true, Errors: []ValidationError{}, Warnings: []ValidationWarning{}}
}

// ConfigValidator provides configuration validation functionality.
// Expression conditions (rules[].when) are checked by the rule compiler, not here.
// ConfigValidator 提供配置验证功能。表达式条件由规则编译器检查。
type ConfigValidator struct {
	// MaxRules caps the rule list to catch generated configs gone wrong.
	// MaxRules 限制规则数量。
	MaxRules int
}

// NewConfigValidator creates a new ConfigValidator with default limits.
// NewConfigValidator 创建具有默认限制的新 ConfigValidator。
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{
		MaxRules: 10000,
	}
}

// ValidateSyntax validates the YAML syntax of the configuration.
// ValidateSyntax 验证配置的 YAML 语法。
func (v *ConfigValidator) ValidateSyntax(configData []byte) *ValidationResult {
	result := newResult()

	var rawConfig map[string]any
	if err := yaml.Unmarshal(configData, &rawConfig); err != nil {
		result.AddError("config", fmt.Sprintf("YAML syntax error: %v", err), nil)
	}
	return result
}

// Validate validates the entire configuration.
// Validate 验证整个配置。
func (v *ConfigValidator) Validate(cfg *GlobalConfig) *ValidationResult {
	result := newResult()

	v.validateLogging(&cfg.Logging, result)
	declared := v.validateSources(cfg.Sources, result)
	v.validateReport(&cfg.Report, result)
	referenced := v.validateRules(cfg.Rules, declared, result)

	for _, s := range cfg.Sources {
		if s.Name != "" && !referenced[s.Name] {
			result.AddWarning("sources", "source is not referenced by any rule", s.Name)
		}
	}

	return result
}

// validateSources checks names, formats and patterns and returns the declared names.
// validateSources 检查名称、格式和模式，并返回已声明的名称。
func (v *ConfigValidator) validateSources(sources []SourceConfig, result *ValidationResult) map[string]bool {
	declared := make(map[string]bool, len(sources))
	for i, s := range sources {
		field := fmt.Sprintf("sources[%d]", i)
		if s.Name == "" {
			result.AddError(field+".name", "source name is required", nil)
			continue
		}
		if declared[s.Name] {
			result.AddError(field+".name", "duplicate source name", s.Name)
		}
		declared[s.Name] = true

		if s.Path == "" {
			result.AddError(field+".path", "source path is required", nil)
		}
		switch s.Format {
		case FormatText:
			re, err := regexp.Compile(s.Pattern)
			if err != nil {
				result.AddError(field+".pattern", fmt.Sprintf("invalid regular expression: %v", err), s.Pattern)
				continue
			}
			for _, group := range []string{"ts", "tag", "msg"} {
				if re.SubexpIndex(group) < 0 {
					result.AddError(field+".pattern", fmt.Sprintf("missing named group %q", group), s.Pattern)
				}
			}
		case FormatJSONL:
			if s.Pattern != "" {
				result.AddWarning(field+".pattern", "pattern is ignored for jsonl sources", s.Pattern)
			}
		default:
			result.AddError(field+".format", "format must be text or jsonl", s.Format)
		}
	}
	return declared
}

func (v *ConfigValidator) validateLogging(l *logger.LoggingConfig, result *ValidationResult) {
	switch strings.ToLower(strings.TrimSpace(l.Format)) {
	case "", logger.FormatConsole, logger.FormatJSON:
	default:
		result.AddError("logging.format", "format must be console or json", l.Format)
	}
	if l.Enabled && l.Path == "" {
		result.AddWarning("logging.path", "file logging is enabled without a path, logging to stderr", nil)
	}
}

func (v *ConfigValidator) validateReport(r *ReportConfig, result *ValidationResult) {
	switch r.Format {
	case ReportText, ReportJSON, ReportYAML:
	default:
		result.AddError("report.format", "format must be text, json or yaml", r.Format)
	}
}

// validateRules checks references and patterns and flags rules that can never fire.
// validateRules 检查引用和模式，并标记永远不会触发的规则。
func (v *ConfigValidator) validateRules(rules []RuleConfig, declared map[string]bool, result *ValidationResult) map[string]bool {
	referenced := make(map[string]bool)
	if len(rules) == 0 {
		result.AddError("rules", "at least one rule is required", nil)
		return referenced
	}
	if v.MaxRules > 0 && len(rules) > v.MaxRules {
		result.AddError("rules", fmt.Sprintf("too many rules (max %d)", v.MaxRules), len(rules))
	}

	catchAll := make(map[string]int)
	for i, r := range rules {
		field := fmt.Sprintf("rules[%d]", i)
		if r.Source == "" {
			result.AddError(field+".source", "rule source is required", nil)
			continue
		}
		referenced[r.Source] = true
		if !declared[r.Source] {
			result.AddError(field+".source", "rule references an undeclared source", r.Source)
		}

		for _, p := range []struct{ name, pattern string }{
			{"tag", r.Tag}, {"message", r.Message}, {"raw", r.Raw},
		} {
			if p.pattern == "" {
				continue
			}
			if _, err := regexp.Compile(p.pattern); err != nil {
				result.AddError(field+"."+p.name, fmt.Sprintf("invalid regular expression: %v", err), p.pattern)
			}
		}

		if prev, ok := catchAll[r.Source]; ok {
			result.AddWarning(field, fmt.Sprintf("unreachable: rules[%d] already matches every %s line", prev, r.Source), r.Name(i))
		} else if r.IsCatchAll() {
			catchAll[r.Source] = i
			if r.NewSession {
				result.AddWarning(field+".new_session", "every line of this source opens a new session", r.Source)
			}
		}
		if !r.NewSession && r.SessionTitle != "" {
			result.AddWarning(field+".session_title", "session_title has no effect without new_session", r.SessionTitle)
		}
	}
	return referenced
}
