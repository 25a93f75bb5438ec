package web

import (
	"embed"
	"html/template"
	"strings"

	"tasklist/internal/model"
)

//go:embed templates/*.html static/*.css
var assetsFS embed.FS

// Renderer turns items into the HTML fragments the client swaps into the
// page. Rendering is pure: the same input always yields the same bytes, and
// nothing here touches the store.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("base").ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (rn *Renderer) render(name string, data any) (string, error) {
	var b strings.Builder
	if err := rn.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Item renders one list row. The row carries its own id anchor so per-item
// responses can swap it in place.
func (rn *Renderer) Item(it model.Item) (string, error) {
	return rn.render("item", it)
}

// ItemEdit renders the in-place edit form for one row.
func (rn *Renderer) ItemEdit(it model.Item) (string, error) {
	return rn.render("item_edit", it)
}

// List renders the whole list. An empty list renders an explicit placeholder,
// never an empty container.
func (rn *Renderer) List(items []model.Item) (string, error) {
	return rn.render("list", items)
}

// Error renders the small fragment used as the body of validation failures.
func (rn *Renderer) Error(msg string) (string, error) {
	return rn.render("error", msg)
}

type pageVM struct {
	PageTitle string
	Items     []model.Item
}

// Page renders the full index document around the current list.
func (rn *Renderer) Page(pageTitle string, items []model.Item) (string, error) {
	return rn.render("index.html", pageVM{PageTitle: pageTitle, Items: items})
}
