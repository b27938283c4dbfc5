// Package correct implements the correction orchestration engine: prompt
// construction, the retried call to a completion backend, decoding and
// validation of the model's reply, and batch fan-out with per-item failure
// isolation.
package correct

// Correction describes a single corrected word.
type Correction struct {
	WrongWord     string `json:"wrong_word"`
	CorrectWord   string `json:"correct_word"`
	ReasonOfError string `json:"reason_of_error"`
}

// Result is the outcome of correcting one sentence. OriginalSentence is
// always the verbatim input; it is set by the service, never by the model.
// On failure placeholders (batch path) Corrections is empty and
// CorrectSentence carries a diagnostic message.
type Result struct {
	Corrections      []Correction `json:"corrections"`
	CorrectSentence  string       `json:"correct_sentence"`
	OriginalSentence string       `json:"original_sentence"`
}
