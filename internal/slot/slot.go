// Package slot maps free-text timeslot labels to canonical time ranges.
package slot

import (
	"fmt"
	"strings"
)

// Label is the canonical timeslot category.
type Label string

const (
	Morning   Label = "오전"
	Afternoon Label = "오후"
	AllDay    Label = "하루종일"
)

func (l Label) String() string { return string(l) }

// Slot is a resolved timeslot: a canonical label plus its clock-time range.
// Start and End are HH:MM strings, both nil for all-day and both set
// otherwise.
type Slot struct {
	Label Label
	Start *string
	End   *string
}

var (
	morningStart   = "09:00"
	morningEnd     = "13:00"
	afternoonStart = "13:00"
	afternoonEnd   = "18:00"
)

// Resolve maps a free-text timeslot string to a Slot. Matching is by
// substring containment, first match wins: all-day tokens ("하루", "종일")
// take precedence over morning ("오전", "am") which takes precedence over
// afternoon ("오후", "pm"). Unrecognized or empty input falls back to
// morning rather than failing; submissions are never rejected over the
// timeslot field.
func Resolve(raw string) Slot {
	s := strings.TrimSpace(raw)
	switch {
	case strings.Contains(s, "하루") || strings.Contains(s, "종일"):
		return Slot{Label: AllDay}
	case strings.Contains(s, "오전") || strings.EqualFold(s, "am"):
		return Slot{Label: Morning, Start: &morningStart, End: &morningEnd}
	case strings.Contains(s, "오후") || strings.EqualFold(s, "pm"):
		return Slot{Label: Afternoon, Start: &afternoonStart, End: &afternoonEnd}
	default:
		return Slot{Label: Morning, Start: &morningStart, End: &morningEnd}
	}
}

// SynthesizeTitle builds a display title from a reserver's name and a
// resolved label, used when the client sends a name instead of a title.
func SynthesizeTitle(name string, label Label) string {
	return fmt.Sprintf("%s (%s)", strings.TrimSpace(name), label)
}
