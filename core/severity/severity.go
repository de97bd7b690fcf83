// ABOUTME: Ordered severity levels used to rank how serious an error is
// ABOUTME: Severities serialize by name; ranks exist only for comparison

package severity

// Severity classifies how serious an error is, independently of its type tag.
// The zero value means "unclassified" and is not the lowest level.
type Severity string

const (
	Debug   Severity = "debug"
	Info    Severity = "info"
	Warning Severity = "warning"
	Error   Severity = "error"
	Fatal   Severity = "fatal"
)

// Levels maps every recognized severity to its rank. Ranks are strictly
// increasing from Debug to Fatal.
var Levels = map[Severity]int{
	Debug:   0,
	Info:    1,
	Warning: 2,
	Error:   3,
	Fatal:   4,
}

// All lists the severities in ascending order.
var All = []Severity{Debug, Info, Warning, Error, Fatal}

// IsSeverity reports whether value is one of the recognized severity names.
func IsSeverity(value string) bool {
	_, ok := Levels[Severity(value)]
	return ok
}

// Parse converts untrusted input into a Severity.
func Parse(value string) (Severity, bool) {
	if !IsSeverity(value) {
		return "", false
	}
	return Severity(value), true
}

// IsValid reports whether s is a recognized severity.
func (s Severity) IsValid() bool {
	return IsSeverity(string(s))
}

// IsSet reports whether a severity was assigned at all.
func (s Severity) IsSet() bool {
	return s != ""
}

// Rank returns the ordering rank, or -1 for unclassified or unknown values.
func (s Severity) Rank() int {
	if rank, ok := Levels[s]; ok {
		return rank
	}
	return -1
}

// AtLeast reports whether s is as severe as other or more.
func (s Severity) AtLeast(other Severity) bool {
	return s.Rank() >= other.Rank()
}

func (s Severity) String() string {
	if s == "" {
		return "unclassified"
	}
	return string(s)
}

// Compare returns -1, 0 or 1 depending on whether a ranks below, equal to,
// or above b.
func Compare(a, b Severity) int {
	ra, rb := a.Rank(), b.Rank()
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	default:
		return 0
	}
}

// Max returns the most severe of the given severities, or "" if none is set.
func Max(values ...Severity) Severity {
	var out Severity
	for _, v := range values {
		if v.Rank() > out.Rank() {
			out = v
		}
	}
	return out
}
