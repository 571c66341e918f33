// Package fmtutil provides formatting utilities for human-readable output.
// Package fmtutil 提供用于人类可读输出的格式化工具。
package fmtutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatCount formats a count with thousand separators.
// FormatCount 格式化计数，添加千位分隔符。
func FormatCount(n int) string {
	s := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	var b strings.Builder
	b.WriteString(sign)
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// FormatPercent formats a percentage value with proper precision.
// FormatPercent 格式化百分比值，使用适当的精度。
func FormatPercent(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", value)
}

// FormatRatio formats part/total as a percentage; a zero total gives 0.00%.
// FormatRatio 将 part/total 格式化为百分比，total 为零时返回 0.00%。
func FormatRatio(part, total int) string {
	if total == 0 {
		return FormatPercent(0)
	}
	return FormatPercent(float64(part) / float64(total) * 100)
}

// FormatDuration formats a duration to human readable format.
// Sub-second durations are rounded to the microsecond.
// FormatDuration 将持续时间格式化为可读格式。
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Microsecond).String()
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}
	return strings.Join(parts, " ")
}
