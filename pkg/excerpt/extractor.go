// Package excerpt narrows a full document body to the sub-section a query
// targets: one exercise out of a full exam paper, with or without its
// solution. It is a pure text parser over markdown-style headings.
package excerpt

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/normalizer"
)

var (
	headingPattern = regexp.MustCompile(`^(##|###)\s+(.*)$`)
	digitPattern   = regexp.MustCompile(`\b(\d{1,2})\b`)
)

// target describes what the query asks to isolate.
type target struct {
	number       int      // explicit exercise number, 0 if none
	wantSolution bool     // query asks for the answer/correction
	topics       []string // folded content tokens used for topic matching
}

// heading is one ##/### line of the body.
type heading struct {
	line   int    // index into the body's line slice
	folded string // folded heading text
}

// Extractor isolates document excerpts. It is stateless and safe for
// concurrent use.
type Extractor struct{}

// New returns an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract returns the excerpt of body matching the query and true, or
// ("", false) when the query does not target a specific exercise or topic,
// in which case the caller keeps the full body.
func (e *Extractor) Extract(body, query string) (string, bool) {
	tgt := parseTarget(query)
	if tgt.number == 0 && len(tgt.topics) == 0 {
		return "", false
	}

	lines := strings.Split(body, "\n")
	headings := scanHeadings(lines)

	matched := findHeading(headings, tgt)
	if matched < 0 {
		return "", false
	}

	// Header block: title plus exam-card metadata, everything before the
	// first heading of any kind.
	headerEnd := len(lines)
	if len(headings) > 0 {
		headerEnd = headings[0].line
	}
	header := strings.TrimSpace(strings.Join(lines[:headerEnd], "\n"))

	blocks := []string{captureBlock(lines, headings, matched)}
	if tgt.wantSolution {
		if sol := findSolutionAfter(headings, matched, tgt.number); sol >= 0 {
			blocks = append(blocks, captureBlock(lines, headings, sol))
		}
	}

	var out []string
	if header != "" {
		out = append(out, header)
	}
	out = append(out, blocks...)
	return strings.Join(out, "\n\n"), true
}

// parseTarget folds the query and pulls out the explicit exercise number,
// whether the solution is requested, and the remaining topic tokens.
func parseTarget(query string) target {
	folded := normalizer.Fold(query)
	tokens := strings.Fields(folded)

	var tgt target
	for _, tok := range tokens {
		if n, ok := ordinalWords[tok]; ok {
			tgt.number = n
			break
		}
		if m := digitPattern.FindString(tok); m != "" {
			if n, err := strconv.Atoi(m); err == nil && n > 0 && n <= 30 {
				tgt.number = n
				break
			}
		}
	}

	tgt.wantSolution = hasMarkerToken(tokens, solutionMarkers)

	for _, tok := range tokens {
		if len([]rune(tok)) < 3 || fillerTokens[tok] {
			continue
		}
		if isMarkerToken(tok, exerciseMarkers) || isMarkerToken(tok, solutionMarkers) {
			continue
		}
		if _, ok := ordinalWords[tok]; ok {
			continue
		}
		if digitPattern.MatchString(tok) {
			continue
		}
		tgt.topics = append(tgt.topics, tok)
	}
	return tgt
}

func scanHeadings(lines []string) []heading {
	var out []heading
	for i, line := range lines {
		if m := headingPattern.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			out = append(out, heading{line: i, folded: normalizer.Fold(m[2])})
		}
	}
	return out
}

// findHeading locates the heading the target asks for. Number targets
// require an exercise heading carrying that number; topic targets require a
// heading containing a topic token.
func findHeading(headings []heading, tgt target) int {
	if tgt.number > 0 {
		for i, h := range headings {
			if isSolutionHeading(h.folded) {
				continue
			}
			if isExerciseHeading(h.folded) && headingNumber(h.folded) == tgt.number {
				return i
			}
		}
		// An explicit number with no matching heading is a miss; topic
		// matching would capture an unrelated section.
		return -1
	}
	for i, h := range headings {
		for _, topic := range tgt.topics {
			if strings.Contains(h.folded, topic) {
				return i
			}
		}
	}
	return -1
}

// captureBlock returns the text from the matched heading up to the next
// heading that is itself an exercise/solution/subject marker. Plain
// subheadings (question parts) stay inside the block.
func captureBlock(lines []string, headings []heading, idx int) string {
	start := headings[idx].line
	end := len(lines)
	for i := idx + 1; i < len(headings); i++ {
		h := headings[i]
		if isExerciseHeading(h.folded) || isSolutionHeading(h.folded) || isSubjectHeading(h.folded) {
			end = h.line
			break
		}
	}
	return strings.TrimSpace(strings.Join(lines[start:end], "\n"))
}

// findSolutionAfter returns the solution heading belonging to the question.
// Papers either interleave answers with questions or append them all at the
// end, so the whole remainder is scanned: a numbered solution heading must
// carry the question's number, and an unnumbered one (e.g. "Model Answer")
// is used only when no numbered match exists.
func findSolutionAfter(headings []heading, questionIdx, number int) int {
	firstUnnumbered := -1
	for i := questionIdx + 1; i < len(headings); i++ {
		h := headings[i]
		if !isSolutionHeading(h.folded) {
			continue
		}
		n := headingNumber(h.folded)
		if n != 0 && number != 0 && n == number {
			return i
		}
		if n == 0 && firstUnnumbered < 0 {
			firstUnnumbered = i
		}
	}
	return firstUnnumbered
}

func headingNumber(folded string) int {
	for _, tok := range strings.Fields(folded) {
		if n, ok := ordinalWords[tok]; ok {
			return n
		}
	}
	if m := digitPattern.FindString(folded); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n
		}
	}
	return 0
}

func isExerciseHeading(folded string) bool {
	return hasMarkerToken(strings.Fields(folded), exerciseMarkers)
}

func isSolutionHeading(folded string) bool {
	return hasMarkerToken(strings.Fields(folded), solutionMarkers) ||
		strings.Contains(folded, "model answer")
}

func isSubjectHeading(folded string) bool {
	return hasMarkerToken(strings.Fields(folded), subjectMarkers)
}

// isMarkerToken reports whether tok equals one of the single-word markers.
// Exact token equality avoids false hits like Arabic words merely containing
// the two letters of "حل".
func isMarkerToken(tok string, markers []string) bool {
	for _, m := range markers {
		if tok == m {
			return true
		}
	}
	return false
}

func hasMarkerToken(tokens []string, markers []string) bool {
	for _, tok := range tokens {
		if isMarkerToken(tok, markers) {
			return true
		}
	}
	return false
}
