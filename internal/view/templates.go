package view

import (
	"fmt"
	"html/template"
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/retailpulse/retailpulse/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CurrentPath string
	Data        any
}

// funcMap exposes the money and count formatters used by the metric cards.
func funcMap() template.FuncMap {
	printer := message.NewPrinter(language.AmericanEnglish)
	return template.FuncMap{
		"currency": func(v float64) string {
			return printer.Sprintf("$%.0f", v)
		},
		"currencyCents": func(v float64) string {
			return printer.Sprintf("$%.2f", v)
		},
		"count": func(v int) string {
			return printer.Sprintf("%d", v)
		},
	}
}

// NewEngine parses templates at build-time.
func NewEngine() (*Engine, error) {
	tpl, err := template.New("root").Funcs(funcMap()).ParseFS(web.Templates, "templates/layouts/*.html", "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Render executes a named template with TemplateData.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return e.templates.ExecuteTemplate(w, name, data)
}
