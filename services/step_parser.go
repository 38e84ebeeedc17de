package services

import (
	"regexp"
	"strings"
)

var (
	// "Шаг N: описание" lines as the model is prompted to produce them.
	// Appearance order wins, the number is not used to reorder: models
	// occasionally misnumber.
	stepLinePattern = regexp.MustCompile(`(?i)^шаг\s*(\d+)\s*[:.]\s*(.+)$`)

	// markdown decoration models like to wrap step lines in
	markdownPrefix = regexp.MustCompile(`^[\s>*#_-]+`)

	// bullet / enumeration markers stripped from heuristic segments
	bulletPrefix = regexp.MustCompile(`^\s*(?:[•●◦▪·]|\*|-|–|—|\d+\s*[.)])\s*`)

	// arrows and dashes acting as step separators; a bare hyphen only
	// counts when surrounded by spaces, so hyphenated words survive
	dashFamilySplit = regexp.MustCompile(`\s*(?:->|=>|→|⇒|—|–)\s*|\s+-\s+`)
)

// ParseSteps turns model output or raw user text into ordered step labels.
// Numbered "Шаг N: ..." lines take priority; when none match, the splitter
// falls back to separator heuristics, coarsest first.
func ParseSteps(text string) []string {
	if steps := extractNumberedSteps(text); len(steps) > 0 {
		return steps
	}
	return splitHeuristic(text)
}

func extractNumberedSteps(text string) []string {
	var steps []string
	for _, line := range strings.Split(text, "\n") {
		line = markdownPrefix.ReplaceAllString(line, "")
		m := stepLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		label := strings.TrimSpace(strings.TrimRight(m[2], "*_ "))
		if label != "" {
			steps = append(steps, label)
		}
	}
	return steps
}

// splitHeuristic tries newline, dash/arrow, period and comma splits in that
// order, accepting the first one that yields more than one step. A text that
// refuses to split becomes a single step.
func splitHeuristic(text string) []string {
	candidates := [][]string{
		strings.Split(text, "\n"),
		dashFamilySplit.Split(text, -1),
		strings.Split(text, "."),
		strings.Split(text, ","),
	}
	for _, parts := range candidates {
		steps := normalizeSegments(parts)
		if len(steps) > 1 {
			return steps
		}
	}
	if whole := strings.TrimSpace(text); whole != "" {
		return []string{whole}
	}
	return nil
}

func normalizeSegments(parts []string) []string {
	var steps []string
	for _, part := range parts {
		if s := normalizeSegment(part); s != "" {
			steps = append(steps, s)
		}
	}
	return steps
}

func normalizeSegment(s string) string {
	s = strings.TrimSpace(s)
	s = bulletPrefix.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
