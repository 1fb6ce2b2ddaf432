// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"text/template"
)

// sectionFormat lists the labelled sections every prompt asks for. Labels
// must match types.DefaultLabels so the extractor can find them.
const sectionFormat = `Actors: (List of all actors)
Preconditions: (Conditions required before starting)
Main Flow: (Detailed steps)
Postconditions: (Expected outcomes)
Exceptions: (Potential deviations)
`

var userStoryTmpl = template.Must(template.New("user-story").Parse(`Using the provided BRD content, generate a user story in a structured format.
{{- if .Focus}}
Restructure the user story according to the user prompt below.
{{- end}}
The content involves cargo management, operational processes, and task flows.
Output the user story with the following format:
` + sectionFormat + `
Content:
{{.BRD}}
{{- if .Focus}}
User prompt:
{{.Focus}}
{{- end}}
`))

var useCaseTmpl = template.Must(template.New("use-case").Parse(`Extract the following information from the generated user story:
` + sectionFormat + `
User Story:
{{.Story}}
`))

// renderUserStoryPrompt fills the user-story prompt. An empty focus leaves
// the user-prompt block out entirely.
func renderUserStoryPrompt(brd, focus string) (string, error) {
	var buf bytes.Buffer
	err := userStoryTmpl.Execute(&buf, struct{ BRD, Focus string }{BRD: brd, Focus: focus})
	return buf.String(), err
}

func renderUseCasePrompt(story string) (string, error) {
	var buf bytes.Buffer
	err := useCaseTmpl.Execute(&buf, struct{ Story string }{Story: story})
	return buf.String(), err
}
