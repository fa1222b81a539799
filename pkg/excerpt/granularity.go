package excerpt

import "strings"

// ExerciseNumber returns the explicit exercise number the query refers to,
// via digit or ordinal word, or 0 when the query targets no particular
// exercise.
func ExerciseNumber(query string) int {
	return parseTarget(query).number
}

// HasExercise reports whether body carries an exercise heading with the
// given number.
func HasExercise(body string, number int) bool {
	if number <= 0 {
		return false
	}
	for _, h := range scanHeadings(strings.Split(body, "\n")) {
		if isSolutionHeading(h.folded) {
			continue
		}
		if isExerciseHeading(h.folded) && headingNumber(h.folded) == number {
			return true
		}
	}
	return false
}
