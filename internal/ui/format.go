package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// formatPayload renders a decoded JSON document as indented key/value
// lines. Object keys are sorted; arrays are numbered from zero.
func formatPayload(payload map[string]any) []string {
	var lines []string
	writeValue(&lines, payload, 0)
	return lines
}

func writeValue(lines *[]string, v any, depth int) {
	indent := strings.Repeat("  ", depth)
	switch val := v.(type) {
	case map[string]any:
		if len(val) == 0 {
			*lines = append(*lines, indent+"(empty)")
			return
		}
		keys := make([]string, 0, len(val))
		width := 0
		for k := range val {
			keys = append(keys, k)
			if len(k) > width {
				width = len(k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			child := val[k]
			if isScalar(child) {
				*lines = append(*lines, fmt.Sprintf("%s%-*s  %s", indent, width, humanKey(k), scalar(child)))
				continue
			}
			*lines = append(*lines, indent+humanKey(k))
			writeValue(lines, child, depth+1)
		}
	case []any:
		if len(val) == 0 {
			*lines = append(*lines, indent+"(none)")
			return
		}
		for i, item := range val {
			if isScalar(item) {
				*lines = append(*lines, fmt.Sprintf("%s[%d]  %s", indent, i, scalar(item)))
				continue
			}
			*lines = append(*lines, fmt.Sprintf("%s[%d]", indent, i))
			writeValue(lines, item, depth+1)
		}
	default:
		*lines = append(*lines, indent+scalar(val))
	}
}

func isScalar(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return false
	default:
		return true
	}
}

func scalar(v any) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case string:
		if val == "" {
			return "-"
		}
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "yes"
		}
		return "no"
	default:
		return fmt.Sprint(val)
	}
}

// humanKey turns snake_case keys into words.
func humanKey(k string) string {
	return strings.ReplaceAll(k, "_", " ")
}

// formatRemaining renders a token lifetime compactly, e.g. "3h12m".
func formatRemaining(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	d = d.Round(time.Minute)
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	switch {
	case h > 0:
		return fmt.Sprintf("%dh%02dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return "<1m"
	}
}

// truncate cuts s to max runes with an ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
