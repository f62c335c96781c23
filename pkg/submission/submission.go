package submission

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldKind classifies a submission field by what its value contributes to
// the daily time budget.
type FieldKind int

const (
	KindText FieldKind = iota
	// KindHours fields contribute value*60 minutes to the budget total.
	KindHours
	// KindMinutes fields contribute their value directly.
	KindMinutes
	// KindCount fields are normalized to integers but excluded from the
	// minute total.
	KindCount
)

// KindOfField classifies a field by its name suffix. The suffix convention is
// load-bearing: any field ending in _hours or _minutes participates in the
// budget sum without being enumerated anywhere.
func KindOfField(name string) FieldKind {
	switch {
	case strings.HasSuffix(name, "_hours"):
		return KindHours
	case strings.HasSuffix(name, "_minutes"):
		return KindMinutes
	case strings.HasSuffix(name, "_Count"):
		return KindCount
	default:
		return KindText
	}
}

// Field is one allow-listed column of an audit partition table.
type Field struct {
	// Name is the submission field name, e.g. "Website_Audit_hours".
	Name string
	// Column is the storage column name, e.g. "website_audit_hours".
	Column string
	Kind   FieldKind
}

func field(name string) Field {
	return Field{Name: name, Column: strings.ToLower(name), Kind: KindOfField(name)}
}

// AuditSchema is the fixed, ordered allow-list of columns written to every
// department's audit partition. Fields not listed here are dropped silently
// on insert; this is the write-schema guard, not the budget rule.
func AuditSchema() []Field {
	return []Field{
		field("User_Mail"),
		field("Department"),
		field("Date"),
		field("Brand"),
		field("Category"),
		field("Remark"),
		field("Website_Audit_hours"),
		field("Website_Audit_minutes"),
		field("Keyword_Research_hours"),
		field("Keyword_Research_minutes"),
		field("Content_Review_hours"),
		field("Content_Review_minutes"),
		field("Meeting_hours"),
		field("Meeting_minutes"),
		field("Backlinks_Count"),
		field("Posts_Count"),
	}
}

// Normalize collapses a decoded form/JSON body into one flat submission.
// Numeric fields (by suffix) are coerced to integers, defaulting to 0 when
// missing or unparseable; negative values are clamped to 0, since tracked
// durations and counts are non-negative. Array values occur when a multi-row
// form repeats a field; numeric arrays are summed, text arrays joined with
// ", ". Normalizing an already-normalized submission is a no-op.
func Normalize(raw map[string]any) map[string]any {
	normalized := make(map[string]any, len(raw))
	for name, value := range raw {
		kind := KindOfField(name)
		switch v := value.(type) {
		case []any:
			if kind == KindText {
				parts := make([]string, 0, len(v))
				for _, item := range v {
					parts = append(parts, stringify(item))
				}
				normalized[name] = strings.Join(parts, ", ")
			} else {
				sum := 0
				for _, item := range v {
					sum += nonNegInt(item)
				}
				normalized[name] = sum
			}
		default:
			if kind == KindText {
				normalized[name] = stringify(value)
			} else {
				normalized[name] = nonNegInt(value)
			}
		}
	}
	return normalized
}

// TrackedMinutes sums the tracked duration of a submission or stored row:
// every field ending in _hours counts 60 minutes per unit, every field ending
// in _minutes counts as-is. Count and text fields do not participate.
func TrackedMinutes(fields map[string]any) int {
	total := 0
	for name, value := range fields {
		switch KindOfField(name) {
		case KindHours:
			total += coerceInt(value) * 60
		case KindMinutes:
			total += coerceInt(value)
		}
	}
	return total
}

// SplitMinutes expresses a minute total as whole hours plus remainder.
func SplitMinutes(minutes int) (hours int, remainder int) {
	return minutes / 60, minutes % 60
}

// FormatMinutes renders a minute total the way the dashboards display it,
// e.g. "7h 30m".
func FormatMinutes(minutes int) string {
	h, m := SplitMinutes(minutes)
	return fmt.Sprintf("%dh %dm", h, m)
}

// nonNegInt coerces a numeric field value and clamps negatives to 0.
func nonNegInt(value any) int {
	n := coerceInt(value)
	if n < 0 {
		return 0
	}
	return n
}

func coerceInt(value any) int {
	switch v := value.(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
