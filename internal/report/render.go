package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/livp123/logweave/internal/config"
	"github.com/livp123/logweave/internal/utils/fileutil"
	"github.com/livp123/logweave/internal/utils/fmtutil"
	lwerrors "github.com/livp123/logweave/pkg/errors"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

// Renderer writes a Document in one output format.
// Renderer 以某种输出格式写出 Document。
type Renderer interface {
	Render(w io.Writer, doc *Document) error
}

// NewRenderer returns the renderer for format (text, json or yaml).
// NewRenderer 返回指定格式（text、json 或 yaml）的渲染器。
func NewRenderer(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case config.ReportText, "":
		return TextRenderer{}, nil
	case config.ReportJSON:
		return JSONRenderer{}, nil
	case config.ReportYAML:
		return YAMLRenderer{}, nil
	default:
		return nil, lwerrors.NewFormatError(format)
	}
}

// WriteFile renders doc and writes it to path atomically, or to stdout when
// path is empty or "-".
// WriteFile 渲染 doc 并原子写入 path；path 为空或 "-" 时写到 stdout。
func WriteFile(path string, stdout io.Writer, r Renderer, doc *Document) error {
	if path == "" || path == "-" {
		return r.Render(stdout, doc)
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, doc); err != nil {
		return err
	}
	return fileutil.AtomicWriteFile(path, buf.Bytes(), 0644)
}

// TextRenderer prints one block per session with aligned columns.
// Column widths use display width so CJK tags line up.
// TextRenderer 为每个会话打印一个列对齐的块，列宽按显示宽度计算以对齐中日韩标签。
type TextRenderer struct{}

// Render implements Renderer.
func (TextRenderer) Render(w io.Writer, doc *Document) error {
	var b strings.Builder
	for i, ch := range doc.Sessions {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "== %s [%s] (%s lines)\n", ch.Title, ch.Anchor, fmtutil.FormatCount(len(ch.Entries)))

		tsW, srcW, tagW := 0, 0, 0
		for _, e := range ch.Entries {
			tsW = max(tsW, len(strconv.FormatInt(e.Timestamp, 10)))
			srcW = max(srcW, runewidth.StringWidth(e.Source))
			tagW = max(tagW, runewidth.StringWidth(e.Tag))
		}
		for _, e := range ch.Entries {
			ts := strconv.FormatInt(e.Timestamp, 10)
			b.WriteString("  ")
			b.WriteString(strings.Repeat(" ", tsW-len(ts)))
			b.WriteString(ts)
			b.WriteString("  ")
			b.WriteString(runewidth.FillRight(e.Source, srcW))
			b.WriteString("  ")
			b.WriteString(runewidth.FillRight(e.Tag, tagW))
			b.WriteString("  ")
			b.WriteString(e.Message)
			b.WriteByte('\n')
		}
	}
	for _, warn := range doc.Warnings {
		fmt.Fprintf(&b, "[WARN]  %s\n", warn)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// JSONRenderer writes indented JSON using sonic.
type JSONRenderer struct{}

// Render implements Renderer.
func (JSONRenderer) Render(w io.Writer, doc *Document) error {
	data, err := sonic.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// YAMLRenderer writes YAML using yaml.v3.
type YAMLRenderer struct{}

// Render implements Renderer.
func (YAMLRenderer) Render(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return enc.Close()
}
