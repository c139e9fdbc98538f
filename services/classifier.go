package services

import "strings"

const (
	// RefusalSentence is the exact reply the model is instructed to give when the
	// supplied material does not contain the answer.
	RefusalSentence = "I'm sorry, I cannot find an answer to that in the provided document."

	// refusalMarker is what ClassifyAnswer looks for; it is a prefix of RefusalSentence.
	refusalMarker = "I'm sorry, I cannot find an answer"
)

// ClassifyAnswer reports whether raw counts as answered: false iff it contains the
// refusal marker verbatim (case-sensitive), true otherwise.
func ClassifyAnswer(raw string) bool {
	return !strings.Contains(raw, refusalMarker)
}
