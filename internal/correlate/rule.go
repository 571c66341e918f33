package correlate

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/livp123/logweave/internal/config"
	lwerrors "github.com/livp123/logweave/pkg/errors"
)

// Rule represents a compiled rule. A nil pattern is a wildcard.
// Rule 表示已编译的规则。nil 模式为通配。
type Rule struct {
	ID      string
	Source  string
	Tag     *regexp.Regexp
	Message *regexp.Regexp
	Raw     *regexp.Regexp
	// When is an optional boolean program over Env.
	When       *vm.Program
	WhenSource string
	NewSession bool
	Title      string
}

// RuleGroup is the ordered list of rules sharing one source. The first full match wins.
// RuleGroup 是共享同一数据源的有序规则列表，首个完全匹配的规则生效。
type RuleGroup struct {
	Source string
	Rules  []*Rule
}

// Matches reports whether every specified condition of the rule holds for line.
// env must already be loaded with line.
func (r *Rule) Matches(line *LogLine, env *Env) bool {
	if r.Tag != nil && !r.Tag.MatchString(line.Tag) {
		return false
	}
	if r.Message != nil && !r.Message.MatchString(line.Message) {
		return false
	}
	if r.Raw != nil && !r.Raw.MatchString(line.Raw) {
		return false
	}
	if r.When != nil {
		output, err := expr.Run(r.When, env)
		if err != nil {
			return false
		}
		matched, ok := output.(bool)
		return ok && matched
	}
	return true
}

// Match returns the first rule of the group that matches line.
// Match 返回组内第一个匹配该行的规则。
func (g *RuleGroup) Match(line *LogLine) (*Rule, bool) {
	env := envPool.Get().(*Env)
	defer func() {
		env.Reset()
		envPool.Put(env)
	}()
	env.load(g.Source, line)

	for _, rule := range g.Rules {
		if rule.Matches(line, env) {
			return rule, true
		}
	}
	return nil, false
}

// Compile groups rules by source, keeping the order in which each source is
// first referenced. Every defect of every rule is reported in the returned error.
// Compile 按数据源对规则分组，保留每个数据源首次被引用的顺序，并报告所有规则的全部错误。
func Compile(rules []config.RuleConfig, resolver SourceResolver) ([]*RuleGroup, error) {
	var (
		groups []*RuleGroup
		index  = make(map[string]*RuleGroup)
		errs   []error
	)

	for i, cfg := range rules {
		name := cfg.Name(i)
		if cfg.Source == "" {
			errs = append(errs, fmt.Errorf("rule %s: %w", name, lwerrors.NewConfigError("source", "")))
			continue
		}
		known := true
		if resolver != nil {
			if _, ok := resolver.Lines(cfg.Source); !ok {
				errs = append(errs, fmt.Errorf("rule %s: %w", name, lwerrors.NewUnknownSourceError(cfg.Source)))
				known = false
			}
		}

		rule, err := compileRule(cfg, name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !known {
			continue
		}

		g, ok := index[cfg.Source]
		if !ok {
			g = &RuleGroup{Source: cfg.Source}
			index[cfg.Source] = g
			groups = append(groups, g)
		}
		g.Rules = append(g.Rules, rule)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return groups, nil
}

func compileRule(cfg config.RuleConfig, name string) (*Rule, error) {
	rule := &Rule{
		ID:         name,
		Source:     cfg.Source,
		WhenSource: cfg.When,
		NewSession: cfg.NewSession,
		Title:      cfg.SessionTitle,
	}

	var err error
	if rule.Tag, err = compilePattern("tag", cfg.Tag, cfg.IgnoreCase); err != nil {
		return nil, fmt.Errorf("rule %s: %w", name, err)
	}
	if rule.Message, err = compilePattern("message", cfg.Message, cfg.IgnoreCase); err != nil {
		return nil, fmt.Errorf("rule %s: %w", name, err)
	}
	if rule.Raw, err = compilePattern("raw", cfg.Raw, cfg.IgnoreCase); err != nil {
		return nil, fmt.Errorf("rule %s: %w", name, err)
	}

	if cfg.When != "" {
		program, err := expr.Compile(cfg.When, expr.Env(&Env{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", name, lwerrors.NewPatternError("when", cfg.When, err))
		}
		rule.When = program
	}
	return rule, nil
}

func compilePattern(field, pattern string, ignoreCase bool) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	src := pattern
	if ignoreCase {
		src = "(?i)" + pattern
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, lwerrors.NewPatternError(field, pattern, err)
	}
	return re, nil
}
