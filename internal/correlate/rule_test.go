package correlate

import (
	"testing"

	"github.com/livp123/logweave/internal/config"
	lwerrors "github.com/livp123/logweave/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCompile_GroupsBySourceInReferenceOrder tests grouping and order
// TestCompile_GroupsBySourceInReferenceOrder 测试分组和首次引用顺序
func TestCompile_GroupsBySourceInReferenceOrder(t *testing.T) {
	resolver := mapResolver{"system": nil, "event": nil, "main": nil}
	groups, err := Compile([]config.RuleConfig{
		{Source: "event", Message: "a"},
		{Source: "system"},
		{Source: "event"},
		{Source: "main", Tag: "^am_"},
	}, resolver)
	require.NoError(t, err)
	require.Len(t, groups, 3)

	assert.Equal(t, "event", groups[0].Source)
	assert.Equal(t, "system", groups[1].Source)
	assert.Equal(t, "main", groups[2].Source)

	require.Len(t, groups[0].Rules, 2)
	assert.NotNil(t, groups[0].Rules[0].Message)
	assert.Nil(t, groups[0].Rules[1].Message)
	assert.Equal(t, "rule#0", groups[0].Rules[0].ID)
	assert.Equal(t, "rule#2", groups[0].Rules[1].ID)
}

// TestCompile_Errors tests ConfigError cases
// TestCompile_Errors 测试配置错误情况
func TestCompile_Errors(t *testing.T) {
	resolver := mapResolver{"system": mkLines("system", 1, "x")}
	tests := []struct {
		name   string
		rule   config.RuleConfig
		target error
	}{
		{"Unknown source", config.RuleConfig{Source: "radio"}, lwerrors.ErrUnknownSource},
		{"Empty source", config.RuleConfig{Source: ""}, lwerrors.ErrConfigInvalid},
		{"Bad tag", config.RuleConfig{Source: "system", Tag: "("}, lwerrors.ErrInvalidPattern},
		{"Bad message", config.RuleConfig{Source: "system", Message: "[a-"}, lwerrors.ErrInvalidPattern},
		{"Bad raw", config.RuleConfig{Source: "system", Raw: "*"}, lwerrors.ErrInvalidPattern},
		{"Bad when syntax", config.RuleConfig{Source: "system", When: "Tag =="}, lwerrors.ErrInvalidPattern},
		{"Non-boolean when", config.RuleConfig{Source: "system", When: "Timestamp + 1"}, lwerrors.ErrInvalidPattern},
		{"Unknown when field", config.RuleConfig{Source: "system", When: "Nope > 1"}, lwerrors.ErrInvalidPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups, err := Compile([]config.RuleConfig{tt.rule}, resolver)
			require.Error(t, err)
			assert.Nil(t, groups)
			assert.ErrorIs(t, err, tt.target)
			assert.ErrorIs(t, err, lwerrors.ErrConfigInvalid)
		})
	}
}

// TestCompile_ReportsAllErrors tests every bad rule is reported at once
// TestCompile_ReportsAllErrors 测试一次性报告所有错误规则
func TestCompile_ReportsAllErrors(t *testing.T) {
	_, err := Compile([]config.RuleConfig{
		{ID: "first", Source: "radio"},
		{ID: "second", Source: "system", Message: "("},
	}, mapResolver{"system": nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule first")
	assert.Contains(t, err.Error(), "rule second")
	assert.ErrorIs(t, err, lwerrors.ErrUnknownSource)
	assert.ErrorIs(t, err, lwerrors.ErrInvalidPattern)
}

// TestCompile_ReportsEveryDefectOfARule tests a rule with an unknown source
// still has its patterns checked
// TestCompile_ReportsEveryDefectOfARule 测试引用未知数据源的规则仍会检查其模式
func TestCompile_ReportsEveryDefectOfARule(t *testing.T) {
	_, err := Compile([]config.RuleConfig{
		{ID: "broken", Source: "radio", Tag: "(", When: "Message +"},
	}, mapResolver{"system": nil})
	require.Error(t, err)
	assert.ErrorIs(t, err, lwerrors.ErrUnknownSource)
	assert.ErrorIs(t, err, lwerrors.ErrInvalidPattern)
	assert.Contains(t, err.Error(), `tag="("`)
}

// TestRule_Matches tests sub-pattern conjunction and wildcards
// TestRule_Matches 测试子模式的合取与通配
func TestRule_Matches(t *testing.T) {
	line := &LogLine{Timestamp: 42, Tag: "ActivityManager", Message: "Start proc 1234:com.android.phone", Raw: "42 ActivityManager: Start proc"}
	tests := []struct {
		name string
		rule config.RuleConfig
		want bool
	}{
		{"Wildcard", config.RuleConfig{Source: "main"}, true},
		{"Tag only", config.RuleConfig{Source: "main", Tag: "^Activity"}, true},
		{"Tag mismatch", config.RuleConfig{Source: "main", Tag: "^WindowManager$"}, false},
		{"Tag and message", config.RuleConfig{Source: "main", Tag: "Activity", Message: `Start proc \d+`}, true},
		{"Message mismatch", config.RuleConfig{Source: "main", Tag: "Activity", Message: "Kill"}, false},
		{"Raw", config.RuleConfig{Source: "main", Raw: "^42 "}, true},
		{"Case sensitive", config.RuleConfig{Source: "main", Message: "start proc"}, false},
		{"Ignore case", config.RuleConfig{Source: "main", Message: "start proc", IgnoreCase: true}, true},
		{"When true", config.RuleConfig{Source: "main", When: `Timestamp >= 42 && Contains(Message, "phone")`}, true},
		{"When false", config.RuleConfig{Source: "main", When: `Timestamp > 42`}, false},
		{"When helpers", config.RuleConfig{Source: "main", When: `IContains(Tag, "activitymanager") && Match(Message, "^Start")`}, true},
		{"When source", config.RuleConfig{Source: "main", When: `Source == "main"`}, true},
		{"Pattern and when", config.RuleConfig{Source: "main", Tag: "Activity", When: `Timestamp < 10`}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups, err := Compile([]config.RuleConfig{tt.rule}, mapResolver{"main": nil})
			require.NoError(t, err)
			_, ok := groups[0].Match(line)
			assert.Equal(t, tt.want, ok)
		})
	}
}

// TestRuleGroup_FirstMatchWins tests routing metadata comes from the first match
// TestRuleGroup_FirstMatchWins 测试路由元数据来自首个匹配规则
func TestRuleGroup_FirstMatchWins(t *testing.T) {
	groups, err := Compile([]config.RuleConfig{
		{ID: "plain", Source: "event", Message: "boot"},
		{ID: "opener", Source: "event", Message: "boot", NewSession: true, SessionTitle: "Boot"},
	}, mapResolver{"event": nil})
	require.NoError(t, err)

	rule, ok := groups[0].Match(&LogLine{Message: "boot completed"})
	require.True(t, ok)
	assert.Equal(t, "plain", rule.ID)
	assert.False(t, rule.NewSession)
}

// TestEnv_Get tests key lookups inside messages
// TestEnv_Get 测试消息中的键查找
func TestEnv_Get(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		key      string
		expected string
	}{
		{"Key with equals", "pid=1234 uid=1000", "pid", "1234"},
		{"Key with colon", "pid: 1234 uid: 1000", "pid", "1234"},
		{"Quoted value", `reason="low memory" pid=7`, "reason", "low memory"},
		{"Last value", "pid=1234", "pid", "1234"},
		{"Key not found", "pid=1234", "uid", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := &Env{Message: tt.message}
			assert.Equal(t, tt.expected, env.Get(tt.key))
		})
	}
}

// TestEnv_Match tests regex helper caching and invalid patterns
// TestEnv_Match 测试正则辅助函数的缓存与无效模式
func TestEnv_Match(t *testing.T) {
	env := &Env{}
	assert.True(t, env.Match("am_proc_start", "^am_"))
	assert.True(t, env.Match("am_proc_died", "^am_"))
	assert.False(t, env.Match("wm_task", "^am_"))
	assert.False(t, env.Match("anything", "("))
	assert.Equal(t, []string{"a", "b"}, (&Env{Message: " a  b "}).Fields())
}
