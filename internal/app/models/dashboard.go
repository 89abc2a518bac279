package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DashboardPayload is the role-specific document returned by the backend's
// dashboard endpoints. Its shape varies per role, so it is kept opaque and
// read through the accessors below.
type DashboardPayload map[string]any

// Section returns a nested object, or nil.
func (p DashboardPayload) Section(key string) map[string]any {
	if p == nil {
		return nil
	}
	m, _ := p[key].(map[string]any)
	return m
}

// ProfileFields returns the payload's "profile" object.
func (p DashboardPayload) ProfileFields() map[string]any {
	return p.Section("profile")
}

// KPI returns the formatted value of kpis[key].
func (p DashboardPayload) KPI(key string) (string, bool) {
	v, ok := p.Section("kpis")[key]
	if !ok || v == nil {
		return "", false
	}
	return FormatValue(v), true
}

// KPIKeys returns the kpi names in a stable order.
func (p DashboardPayload) KPIKeys() []string {
	kpis := p.Section("kpis")
	keys := make([]string, 0, len(kpis))
	for k := range kpis {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Series returns charts[key] as a list of rows.
func (p DashboardPayload) Series(key string) []map[string]any {
	return rows(p.Section("charts")[key])
}

// Items returns a top-level list such as "students" or "schemes".
func (p DashboardPayload) Items(key string) []map[string]any {
	if p == nil {
		return nil
	}
	return rows(p[key])
}

// Text returns a top-level scalar rendered as text.
func (p DashboardPayload) Text(key string) string {
	if p == nil || p[key] == nil {
		return ""
	}
	return FormatValue(p[key])
}

// Insight returns the ai_insight block, which the backend sends either as
// a string or as an object with a prediction text.
func (p DashboardPayload) Insight() string {
	if p == nil {
		return ""
	}
	switch v := p["ai_insight"].(type) {
	case string:
		return v
	case map[string]any:
		for _, k := range []string{"prediction_text", "message", "text", "insight"} {
			if s, ok := v[k].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func rows(v any) []map[string]any {
	list, ok := v.([]any)
	if !ok {
		if typed, ok := v.([]map[string]any); ok {
			return typed
		}
		return nil
	}
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// FormatValue renders a decoded JSON scalar for display.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// HumanizeKey turns "total_institutions" into "Total Institutions".
func HumanizeKey(key string) string {
	title := cases.Title(language.English, cases.NoLower)
	parts := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' })
	for i, part := range parts {
		switch strings.ToLower(part) {
		case "gpa", "nirf", "id":
			parts[i] = strings.ToUpper(part)
		default:
			parts[i] = title.String(part)
		}
	}
	return strings.Join(parts, " ")
}

// MergeProfile overlays the payload's profile on the role default. Payload
// fields win when non-empty; details prefer course, then subject.
func MergeProfile(fields map[string]any, def Profile) Profile {
	pick := func(keys ...string) string {
		for _, k := range keys {
			if s := FormatValue(fields[k]); s != "" {
				return s
			}
		}
		return ""
	}
	out := def
	if fields == nil {
		return out
	}
	if s := pick("name"); s != "" {
		out.Name = s
	}
	if s := pick("avatar"); s != "" {
		out.Avatar = s
	}
	if s := pick("course", "subject"); s != "" {
		out.Details = s
	}
	if s := pick("institution"); s != "" {
		out.Institution = s
	}
	return out
}
