package correlate

import (
	"regexp"
	"strconv"
)

var placeholderRe = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// RenderTitle interpolates the winning rule's title template with the line's
// fields and the named capture groups of the rule's patterns.
// Unknown placeholders are kept verbatim.
// RenderTitle 使用行字段和规则模式的命名捕获组插值标题模板，未知占位符保持原样。
func RenderTitle(m *Match) string {
	tmpl := m.Rule.Title
	if tmpl == "" {
		return m.Source + " session"
	}

	var captures map[string]string
	return placeholderRe.ReplaceAllStringFunc(tmpl, func(ph string) string {
		key := ph[1 : len(ph)-1]
		switch key {
		case "timestamp":
			return strconv.FormatInt(m.Line.Timestamp, 10)
		case "tag":
			return m.Line.Tag
		case "message":
			return m.Line.Message
		case "raw":
			return m.Line.Raw
		case "id":
			return m.Line.ID
		case "source":
			return m.Source
		}
		if captures == nil {
			captures = namedCaptures(m)
		}
		if v, ok := captures[key]; ok {
			return v
		}
		return ph
	})
}

// namedCaptures collects named groups from the tag, message and raw patterns,
// in that order; a later pattern does not override an earlier one.
func namedCaptures(m *Match) map[string]string {
	out := make(map[string]string)
	for _, p := range []struct {
		re    *regexp.Regexp
		value string
	}{
		{m.Rule.Tag, m.Line.Tag},
		{m.Rule.Message, m.Line.Message},
		{m.Rule.Raw, m.Line.Raw},
	} {
		if p.re == nil {
			continue
		}
		sub := p.re.FindStringSubmatch(p.value)
		if sub == nil {
			continue
		}
		for i, name := range p.re.SubexpNames() {
			if name == "" {
				continue
			}
			if _, seen := out[name]; !seen {
				out[name] = sub[i]
			}
		}
	}
	return out
}
