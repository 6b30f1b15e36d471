// Package view renders the HTML pages of the blog.
package view

import (
	"crypto/md5"
	"embed"
	"encoding/hex"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"path"
	"strings"

	"personal-blog/internal/sanitizer"

	"github.com/labstack/echo/v4"
)

//go:embed templates
var templateFS embed.FS

const (
	gravatarBase    = "https://www.gravatar.com/avatar/"
	gravatarSize    = "100"
	gravatarRating  = "g"
	gravatarDefault = "retro"
)

// Gravatar returns the avatar URL for email.
func Gravatar(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	q := url.Values{}
	q.Set("s", gravatarSize)
	q.Set("r", gravatarRating)
	q.Set("d", gravatarDefault)
	return gravatarBase + hex.EncodeToString(sum[:]) + "?" + q.Encode()
}

// richText re-sanitizes stored HTML before it is trusted by the template.
func richText(s string) template.HTML {
	return template.HTML(sanitizer.RichText(s))
}

var funcs = template.FuncMap{
	"gravatar": Gravatar,
	"richText": richText,
}

// Renderer implements echo.Renderer. Each page is parsed together with the
// shared partials so pages can define their own blocks.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page under templates/.
func NewRenderer() (*Renderer, error) {
	return newRenderer(templateFS)
}

func newRenderer(fsys fs.FS) (*Renderer, error) {
	pages, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no templates found")
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, p := range pages {
		name := path.Base(p)
		t, err := template.New(name).
			Option("missingkey=zero").
			Funcs(funcs).
			ParseFS(fsys, "templates/partials/*.html", p)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, name, data)
}
