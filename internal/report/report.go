// Package report assembles the rendered lab document: per-lesson markdown
// narrative, model text, summary tables, and plot images, written as a
// single HTML file next to the images it references.
package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gomarkdown/markdown"

	"bayeslab/internal/errors"
	"bayeslab/internal/summarize"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

// Plot references a rendered plot image relative to the report file.
type Plot struct {
	Caption string
	File    string
}

// Section is one lesson's block in the report.
type Section struct {
	Lesson    string
	Title     string
	Narrative string // markdown source
	ModelText string
	Summaries []summarize.Summary
	Plots     []Plot
}

type page struct {
	Title       string
	GeneratedAt string
	Sections    []Section
}

// Builder renders report documents from lesson sections.
type Builder struct {
	tmpl *template.Template
}

// NewBuilder parses the embedded report template
func NewBuilder() (*Builder, error) {
	funcMap := template.FuncMap{
		"f4": func(v float64) string { return fmt.Sprintf("%.4f", v) },
		"markdown": func(src string) template.HTML {
			return template.HTML(markdown.ToHTML([]byte(src), nil, nil))
		},
	}
	tmpl, err := template.New("report.html.tmpl").Funcs(funcMap).ParseFS(templateFS, "templates/report.html.tmpl")
	if err != nil {
		return nil, errors.RenderError("parsing report template", err)
	}
	return &Builder{tmpl: tmpl}, nil
}

// Render writes the report document to w.
func (b *Builder) Render(w io.Writer, title string, sections []Section) error {
	data := page{
		Title:       title,
		GeneratedAt: time.Now().Format("2006-01-02 15:04"),
		Sections:    sections,
	}
	if err := b.tmpl.Execute(w, data); err != nil {
		return errors.RenderError("executing report template", err)
	}
	return nil
}

// WriteFile renders the report into dir as index.html.
func (b *Builder) WriteFile(dir, title string, sections []Section) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.RenderError("creating output directory", err)
	}
	path := filepath.Join(dir, "index.html")
	f, err := os.Create(path)
	if err != nil {
		return "", errors.RenderError("creating report file", err)
	}
	defer f.Close()

	if err := b.Render(f, title, sections); err != nil {
		return "", err
	}
	return path, nil
}
