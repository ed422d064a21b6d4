// Package textutil normalizes free-form text blocks (prompt snippets, chat
// messages, markdown fragments) into a dedented, single-spaced,
// heading-free form, and truncates them at line boundaries.
package textutil

import (
	"regexp"
	"strings"
)

var (
	horizontalSpaceRe = regexp.MustCompile(`[\p{Zs}\t\f\r\v]+`)
	blankRunRe        = regexp.MustCompile(`\n{3,}`)
	headingMarkerRe   = regexp.MustCompile(`(?m)^ ?(?:#+[ \t]*)+`)
	trailingSpaceRe   = regexp.MustCompile(`(?m) +$`)
)

// CleanText dedents raw, collapses horizontal whitespace runs to single
// spaces, keeps paragraph breaks, strips markdown heading markers and trims
// the result. Inline emphasis markers are left alone. A line indented deeper
// than the block keeps a single leading space.
// CleanText is total and idempotent.
func CleanText(raw string) string {
	if raw == "" {
		return ""
	}

	text := collapseWhitespace(Dedent(raw))
	for {
		next := strings.TrimSpace(stripHeadings(text))
		if next == text {
			return next
		}
		text = next
	}
}

func collapseWhitespace(text string) string {
	text = horizontalSpaceRe.ReplaceAllString(text, " ")
	text = trailingSpaceRe.ReplaceAllString(text, "")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// stripHeadings drops "#" runs at line start. A marker-only line leaves an
// empty line behind, so blank runs are collapsed again. Trimming can bring a
// new marker to the start of the block, hence the loop in CleanText.
func stripHeadings(text string) string {
	text = headingMarkerRe.ReplaceAllString(text, "")
	text = trailingSpaceRe.ReplaceAllString(text, "")
	return blankRunRe.ReplaceAllString(text, "\n\n")
}

// Dedent removes the longest leading-whitespace prefix shared by every
// non-blank line. Lines holding only whitespace are emptied and do not take
// part in computing the prefix.
func Dedent(text string) string {
	lines := strings.Split(text, "\n")

	margin := ""
	first := true
	for i, line := range lines {
		if strings.TrimLeft(line, " \t") == "" {
			lines[i] = ""
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			margin = indent
			first = false
			continue
		}
		margin = commonPrefix(margin, indent)
	}

	if margin == "" {
		return strings.Join(lines, "\n")
	}
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, margin)
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
