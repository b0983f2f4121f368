// Package view renders the catalog's server-side pages. Every page template
// in templates/ is parsed together with layout.html and executed through it.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	layoutFile = "layout.html"
	layoutName = "layout"
)

// Renderer implements gin's render.HTMLRender with one template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

// New parses the embedded templates.
func New() (*Renderer, error) {
	return NewFromFS(templatesFS, "templates")
}

// NewFromFS parses dir/layout.html plus every other dir/*.html in fsys.
func NewFromFS(fsys fs.FS, dir string) (*Renderer, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}

	layout := path.Join(dir, layoutFile)
	r := &Renderer{pages: make(map[string]*template.Template, len(files))}

	for _, file := range files {
		if file == layout {
			continue
		}

		name := strings.TrimSuffix(path.Base(file), ".html")
		t, err := template.New(name).Funcs(funcs).ParseFS(fsys, layout, file)
		if err != nil {
			return nil, fmt.Errorf("parse view %s: %w", name, err)
		}
		r.pages[name] = t
	}

	if len(r.pages) == 0 {
		return nil, fmt.Errorf("no views found in %s", dir)
	}

	return r, nil
}

// MustNew is New that panics on error.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Instance returns the render for the named page. Unknown names panic, which
// gin's recovery turns into a 500.
func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.pages[name]
	if !ok {
		panic(fmt.Sprintf("view: unknown template %q", name))
	}

	return render.HTML{
		Template: t,
		Name:     layoutName,
		Data:     data,
	}
}

// Has reports whether a page with the given name was parsed.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}
