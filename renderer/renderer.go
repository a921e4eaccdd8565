// Package renderer turns revenue reports into markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/revrec"
)

//go:embed templates/*.md
var templates embed.FS

// ReportMarkdown renders a revenue report as a markdown document with one
// table row per aggregated (month, zip) pair.
func ReportMarkdown(report *revrec.RevenueReport) string {
	return renderTemplate("report", "templates/report.md", report)
}

// renderTemplate renders one embedded template file with the given data.
func renderTemplate(templateName, file string, data any) string {
	content, err := fs.ReadFile(templates, file)
	if err != nil {
		return fmt.Sprintf("error reading template %q: %v", file, err)
	}
	tmpl, err := template.New(templateName).Parse(string(content))
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", file, err)
	}
	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
