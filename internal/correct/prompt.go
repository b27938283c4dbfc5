package correct

import (
	"bytes"
	_ "embed"
	"text/template"
)

//go:embed system.tmpl
var systemPrompt string

//go:embed user.tmpl
var userPromptTmpl string

var userTemplate = template.Must(template.New("user").Parse(userPromptTmpl))

// SystemPrompt returns the system prompt for sentence correction.
func SystemPrompt() string {
	return systemPrompt
}

// UserPrompt builds the user prompt for one sentence. The output is
// deterministic: the same sentence always yields the same instruction text.
func UserPrompt(sentence string) string {
	var buf bytes.Buffer
	data := struct{ Sentence string }{Sentence: sentence}
	if err := userTemplate.Execute(&buf, data); err != nil {
		// Fallback to raw template on error
		return userPromptTmpl
	}
	return buf.String()
}
