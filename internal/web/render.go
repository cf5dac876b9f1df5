package web

import (
	"html/template"
	"io"

	"github.com/jask/dualpick/core/element"
)

const selectHTML = `{{define "select"}}<select multiple="multiple" id="{{.ID}}" name="{{.Name}}">
{{- range .Options}}
  <option value="{{.Value}}"{{if .Selected}} selected="selected"{{end}}{{if .FilterText}} data-filter-text="{{.FilterText}}"{{end}} data-index="{{.Index}}">{{.Label}}</option>
{{- end}}
</select>{{end}}`

const pageHTML = `<!doctype html>
<html lang="{{.Lang}}">
  <head>
    <meta charset="utf-8" />
    <title>{{.Title}}</title>
    <link rel="stylesheet" href="/assets/dualpick.css" />
  </head>
  <body>
    <form method="post" action="/sets/{{.Set}}">
      <h1>{{.Title}}</h1>
      <div class="dualpick-host" data-dualpick-config="{{.Config}}">
        {{template "select" .Element}}
      </div>
      <button type="submit">{{.Submit}}</button>
    </form>
  </body>
</html>
`

var (
	selectTmpl = template.Must(template.New("select").Parse(selectHTML))
	pageTmpl   = template.Must(template.Must(template.New("page").Parse(selectHTML)).Parse(pageHTML))
)

// RenderSelect writes the plain multi-select markup of el. Options carry
// their ordinal as data-index and, when present, their filter text as
// data-filter-text.
func RenderSelect(w io.Writer, el *element.Element) error {
	return selectTmpl.ExecuteTemplate(w, "select", el)
}

type pageModel struct {
	Lang    string
	Title   string
	Set     string
	Config  string
	Submit  string
	Element *element.Element
}

func renderPage(w io.Writer, m pageModel) error {
	return pageTmpl.ExecuteTemplate(w, "page", m)
}
