// Package templates holds the HTML views, embedded into the binary.
package templates

import (
	"embed"
	"html/template"
	"time"
)

//go:embed *.tmpl
var files embed.FS

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("2 Jan 2006 15:04")
	},
	"media": func(path string) string {
		return "/media/" + path
	},
}

// Load parses every view. Template names are the file names, e.g. "index.tmpl".
func Load() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "*.tmpl")
}
