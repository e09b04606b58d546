package commands

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// templateFuncs provides sprig plus a few helpers for response text.
var templateFuncs = func() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["series"] = series
	return funcs
}()

var (
	roomTemplate = template.Must(template.New("room").Funcs(templateFuncs).Parse(
		`You are currently in: {{ .Room.Name }}
{{ .Room.Description }}
From here, you can go: {{ series .Directions }}.
Items visible: {{ if .Items }}{{ join ", " .Items }}{{ else }}none{{ end }}.`))

	summaryTemplate = template.Must(template.New("summary").Funcs(templateFuncs).Parse(
		`Thanks for playing! Here's a quick history of your room traversal:
{{ range .Visited }}{{ . }}
{{ end }}`))
)

// ExpandTemplate expands a template string using the provided data.
// The data can be any struct - templates access fields via {{ .FieldName }}.
func ExpandTemplate(tmplStr string, data any) (string, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	return execute(tmpl, data)
}

func execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// series joins words as "a", "a or b", or "a, b, or c".
func series(words []string) string {
	switch len(words) {
	case 0:
		return "nowhere"
	case 1:
		return words[0]
	case 2:
		return words[0] + " or " + words[1]
	default:
		return strings.Join(words[:len(words)-1], ", ") + ", or " + words[len(words)-1]
	}
}
