package email

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	texttemplate "text/template"

	"invitationgallery/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// Each message is three files: <name>_subject.txt, <name>.html and <name>.txt.
var (
	htmlTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))
	textTemplates = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/*.txt"))
)

type templateRenderer struct{}

// NewTemplateRenderer returns a renderer over the embedded templates directory.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return templateRenderer{}
}

type executeFunc func(w io.Writer, name string, data any) error

func (templateRenderer) Render(name string, data any) (subject, htmlBody, textBody string, err error) {
	parts := []struct {
		file    string
		execute executeFunc
		out     *string
	}{
		{name + "_subject.txt", textTemplates.ExecuteTemplate, &subject},
		{name + ".html", htmlTemplates.ExecuteTemplate, &htmlBody},
		{name + ".txt", textTemplates.ExecuteTemplate, &textBody},
	}
	for _, p := range parts {
		var b strings.Builder
		if err := p.execute(&b, p.file, data); err != nil {
			return "", "", "", fmt.Errorf("render %s: %w", p.file, err)
		}
		*p.out = b.String()
	}
	return strings.TrimSpace(subject), htmlBody, textBody, nil
}
