// Package report composes rendered figures, data exports and explanatory
// prose into a self-contained HTML report directory.
package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"sync"
)

//go:embed templates/*.html
var templatesFS embed.FS

// TemplateProvider abstracts template loading and execution so the composer
// can run against the bundled templates in production and a mock in tests.
type TemplateProvider interface {
	// GetTemplate returns a parsed template by name.
	GetTemplate(name string) (*template.Template, error)
	// ExecuteTemplate renders the named template with data.
	ExecuteTemplate(w io.Writer, name string, data interface{}) error
}

// DefaultTemplates returns the report templates bundled into the binary.
func DefaultTemplates() TemplateProvider {
	return &bundledTemplates{}
}

// bundledTemplates serves the go:embed template set, parsed once on first
// use. Templates are addressed by base name, report.html and friends.
type bundledTemplates struct {
	once sync.Once
	root *template.Template
	err  error
}

func (b *bundledTemplates) GetTemplate(name string) (*template.Template, error) {
	b.once.Do(func() {
		b.root, b.err = template.ParseFS(templatesFS, "templates/*.html")
	})
	if b.err != nil {
		return nil, fmt.Errorf("parsing bundled templates: %w", b.err)
	}
	t := b.root.Lookup(name)
	if t == nil {
		return nil, fmt.Errorf("template %q: %w", name, fs.ErrNotExist)
	}
	return t, nil
}

func (b *bundledTemplates) ExecuteTemplate(w io.Writer, name string, data interface{}) error {
	t, err := b.GetTemplate(name)
	if err != nil {
		return err
	}
	return t.Execute(w, data)
}

// MockTemplateProvider serves templates from literal strings and records
// every execution, for tests that assert on the data handed to a template.
type MockTemplateProvider struct {
	Templates    map[string]string
	ExecuteError error
	ExecuteCalls []executeCall
}

type executeCall struct {
	Name string
	Data interface{}
}

// NewMockTemplateProvider creates a mock provider over the given template
// sources, keyed by name.
func NewMockTemplateProvider(templates map[string]string) *MockTemplateProvider {
	return &MockTemplateProvider{Templates: templates}
}

func (m *MockTemplateProvider) GetTemplate(name string) (*template.Template, error) {
	content, ok := m.Templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q: %w", name, fs.ErrNotExist)
	}
	return template.New(name).Parse(content)
}

// ExecuteTemplate records the call, then renders the named template, or
// fails with ExecuteError when one is injected.
func (m *MockTemplateProvider) ExecuteTemplate(w io.Writer, name string, data interface{}) error {
	m.ExecuteCalls = append(m.ExecuteCalls, executeCall{Name: name, Data: data})
	if m.ExecuteError != nil {
		return m.ExecuteError
	}
	t, err := m.GetTemplate(name)
	if err != nil {
		return err
	}
	return t.Execute(w, data)
}
