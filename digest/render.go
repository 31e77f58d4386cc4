package digest

import (
	"bytes"
	"digest-lab/domain"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/digest.html
var templatesFS embed.FS

// Context is everything the digest template needs for one user.
type Context struct {
	FullName         string
	Realm            string
	PeriodDays       int
	UnreadPMCount    int
	PMPreviews       []Preview
	HotConversations []Conversation
	NewStreams       []domain.Stream
	NewUsers         []string
	UnsubscribeURL   string
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/digest.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse digest template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Subject builds the email subject line for a realm.
func (r *Renderer) Subject(realm string) string {
	return fmt.Sprintf("While you were away - %s", realm)
}

// Render produces the HTML body for one digest context.
func (r *Renderer) Render(ctx Context) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("failed to render digest: %w", err)
	}
	return buf.String(), nil
}
