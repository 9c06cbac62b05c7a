package quiz

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Equivalent reports whether two strings are the same answer. Strings are
// equivalent iff they are equal after trimming leading/trailing whitespace,
// case-folding, and Unicode NFC normalization ("é" typed with a combining
// accent matches the precomposed form). Nothing else is normalized:
// punctuation is preserved so that malformed answers are not silently
// accepted.
func Equivalent(a, b string) bool {
	return strings.EqualFold(canonicalize(a), canonicalize(b))
}

func canonicalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Match reports whether the submitted string matches any accepted variant
// of the answer.
func Match(ans Answer, submitted string) bool {
	for _, variant := range ans {
		if Equivalent(variant, submitted) {
			return true
		}
	}
	return false
}

// MatchOne returns the index of the first answer slot the submitted string
// satisfies, or -1 if it satisfies none.
func MatchOne(slots []Answer, submitted string) int {
	for i, ans := range slots {
		if Match(ans, submitted) {
			return i
		}
	}
	return -1
}

// ListOutcome is the result of matching submitted lines against the
// required slots of a list-shaped question.
type ListOutcome struct {
	// Required holds the slots that count toward the score, i.e. the
	// question's answer slots minus nocredit entries.
	Required []Answer
	// Satisfied marks which required slots were matched. Same length as
	// Required.
	Satisfied []bool
	// Extras holds submitted lines that matched no remaining slot. They
	// consume nothing and earn nothing.
	Extras []string
}

// MatchedCount returns the number of satisfied slots.
func (o *ListOutcome) MatchedCount() int {
	n := 0
	for _, s := range o.Satisfied {
		if s {
			n++
		}
	}
	return n
}

// Missed returns the canonical forms of the unsatisfied slots.
func (o *ListOutcome) Missed() []string {
	var missed []string
	for i, s := range o.Satisfied {
		if !s {
			missed = append(missed, o.Required[i].Canonical())
		}
	}
	return missed
}

// MatchUnordered matches submitted lines against required slots in entry
// order. Each line is assigned to the first not-yet-matched slot it
// satisfies; a line matching no remaining slot is recorded as an extra.
// NoCredit entries are stripped from both sides first, so they affect
// neither numerator nor denominator.
func MatchUnordered(slots []Answer, noCredit []string, lines []string) ListOutcome {
	required := stripNoCreditSlots(slots, noCredit)
	submitted := stripNoCreditLines(lines, noCredit)

	out := ListOutcome{
		Required:  required,
		Satisfied: make([]bool, len(required)),
	}
	for _, line := range submitted {
		idx := -1
		for i, ans := range required {
			if !out.Satisfied[i] && Match(ans, line) {
				idx = i
				break
			}
		}
		if idx >= 0 {
			out.Satisfied[idx] = true
		} else {
			out.Extras = append(out.Extras, line)
		}
	}
	return out
}

// MatchOrdered matches the k-th submitted line against the k-th required
// slot. A correct value in the wrong position satisfies nothing.
func MatchOrdered(slots []Answer, noCredit []string, lines []string) ListOutcome {
	required := stripNoCreditSlots(slots, noCredit)
	submitted := stripNoCreditLines(lines, noCredit)

	out := ListOutcome{
		Required:  required,
		Satisfied: make([]bool, len(required)),
	}
	for i, line := range submitted {
		if i >= len(required) {
			out.Extras = append(out.Extras, line)
			continue
		}
		if Match(required[i], line) {
			out.Satisfied[i] = true
		}
	}
	return out
}

// stripNoCreditSlots removes required slots that contain a nocredit entry
// among their variants.
func stripNoCreditSlots(slots []Answer, noCredit []string) []Answer {
	if len(noCredit) == 0 {
		return slots
	}
	var kept []Answer
	for _, ans := range slots {
		excluded := false
		for _, variant := range ans {
			if matchesNoCredit(variant, noCredit) {
				excluded = true
				break
			}
		}
		if !excluded {
			kept = append(kept, ans)
		}
	}
	return kept
}

// stripNoCreditLines removes submitted lines that are nocredit entries.
func stripNoCreditLines(lines, noCredit []string) []string {
	if len(noCredit) == 0 {
		return lines
	}
	var kept []string
	for _, line := range lines {
		if matchesNoCredit(line, noCredit) {
			continue
		}
		kept = append(kept, line)
	}
	return kept
}

func matchesNoCredit(s string, noCredit []string) bool {
	for _, nc := range noCredit {
		if Equivalent(nc, s) {
			return true
		}
	}
	return false
}
