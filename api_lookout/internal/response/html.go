package response

import (
	"bytes"
	"html/template"
)

var htmlTemplate = template.Must(template.New("document").Parse(`
{{- range . -}}
{{- if eq .Kind "heading" -}}
{{- if eq .Level 2 -}}
<h2 class="text-xl text-green-400 border-b border-green-500 pb-2 mb-4">{{ .Text }}</h2>
{{ else -}}
<h3 class="text-lg text-green-400 mt-4">{{ .Text }}</h3>
{{ end -}}
{{- else if eq .Kind "table" -}}
<table>
<thead>
<tr>{{ range .Headers }}<th>{{ . }}</th>{{ end }}</tr>
</thead>
<tbody>
{{ range .Rows }}<tr>{{ range . }}<td>{{ if .Link }}<a href="{{ .Link }}" target="_blank" class="text-cyan-400">{{ .Text }}</a>{{ else }}{{ .Text }}{{ end }}</td>{{ end }}</tr>
{{ end -}}
</tbody>
</table>
{{ else if eq .Kind "preformatted" -}}
{{- if eq .Tone "data" -}}
<pre class="bg-black p-4 rounded-md text-yellow-200 border border-yellow-400">{{ .Text }}</pre>
{{ else -}}
<pre class="bg-gray-900 p-4 rounded-md text-white border border-green-500">{{ .Text }}</pre>
{{ end -}}
{{- else if eq .Kind "notice" -}}
<p class="text-gray-500">{{ .Text }}</p>
{{ else if eq .Kind "error" -}}
<p class="text-red-500">{{ .Text }}</p>
{{ end -}}
{{- end -}}
`))

// HTML renders the document for the web page. Text is escaped and link
// targets are sanitized by html/template.
func HTML(doc *Document) (template.HTML, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, doc.Fragments()); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
