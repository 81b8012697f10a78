// Package web renders the RecipeShare pages. Pages get their data through the
// recipe API client, the same way any other front-end would.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
	"github.com/yuin/goldmark"

	"recipeshare_backend/client"
	"recipeshare_backend/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// RecipeSource is the part of the API client the pages use.
type RecipeSource interface {
	ListRecipes(ctx context.Context) ([]models.Recipe, error)
	SearchRecipes(ctx context.Context, query string) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, id string) (models.Recipe, error)
}

// listState is everything the list page shows.
type listState struct {
	Query   string
	Error   string
	Recipes []models.Recipe
}

type detailState struct {
	Error  string
	Recipe models.Recipe
	Steps  []template.HTML
}

// Option configures the pages.
type Option func(*Pages)

// WithImageProxy routes card thumbnails through the image resize endpoint at
// path. An empty path links the original images directly.
func WithImageProxy(path string) Option {
	return func(p *Pages) {
		p.imageProxy = path
	}
}

// Pages serves the HTML front-end.
type Pages struct {
	source     RecipeSource
	imageProxy string
	templates  *template.Template
	markdown   goldmark.Markdown
	router     *mux.Router
}

func New(source RecipeSource, opts ...Option) *Pages {
	p := &Pages{
		source:     source,
		imageProxy: "/api/image",
		markdown:   goldmark.New(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.templates = template.Must(template.New("").Funcs(template.FuncMap{
		"thumb": p.thumbnailURL,
	}).ParseFS(templateFS, "templates/*.html"))

	p.router = mux.NewRouter()
	p.router.HandleFunc("/", p.handleList).Methods(http.MethodGet)
	p.router.HandleFunc("/recipe/{id}", p.handleDetail).Methods(http.MethodGet)
	p.router.NotFoundHandler = http.HandlerFunc(p.handleNotFound)

	return p
}

func (p *Pages) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.router.ServeHTTP(w, r)
}

// handleList shows every recipe, or the search results when the form was
// submitted with a non-blank query.
func (p *Pages) handleList(w http.ResponseWriter, r *http.Request) {
	state := listState{Query: strings.TrimSpace(r.URL.Query().Get("query"))}

	var (
		recipes []models.Recipe
		err     error
	)
	if state.Query == "" {
		recipes, err = p.source.ListRecipes(r.Context())
	} else {
		recipes, err = p.source.SearchRecipes(r.Context(), state.Query)
	}

	status := http.StatusOK
	if err != nil {
		slog.Warn("failed to load recipes", "query", state.Query, "error", err)
		state.Error = "Failed to load recipes. Please try again."
		status = http.StatusBadGateway
	} else {
		state.Recipes = recipes
	}

	p.render(w, status, "list.html", state)
}

func (p *Pages) handleDetail(w http.ResponseWriter, r *http.Request) {
	recipe, err := p.source.GetRecipe(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		var apiErr *client.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			p.handleNotFound(w, r)
			return
		}
		slog.Warn("failed to load recipe", "error", err)
		p.render(w, http.StatusBadGateway, "detail.html", detailState{
			Error: "Failed to load recipe. Please try again.",
		})
		return
	}

	state := detailState{Recipe: recipe}
	for _, step := range recipe.Instructions {
		state.Steps = append(state.Steps, p.renderStep(step))
	}
	p.render(w, http.StatusOK, "detail.html", state)
}

func (p *Pages) handleNotFound(w http.ResponseWriter, r *http.Request) {
	p.render(w, http.StatusNotFound, "notfound.html", nil)
}

// renderStep converts one instruction to HTML. goldmark escapes raw HTML by
// default, so the result is safe to embed.
func (p *Pages) renderStep(step string) template.HTML {
	var buf bytes.Buffer
	if err := p.markdown.Convert([]byte(step), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(step))
	}
	html := strings.TrimSpace(buf.String())
	html = strings.TrimSuffix(strings.TrimPrefix(html, "<p>"), "</p>")
	return template.HTML(html)
}

func (p *Pages) thumbnailURL(image string) string {
	if p.imageProxy == "" || image == "" {
		return image
	}
	return p.imageProxy + "?url=" + url.QueryEscape(image)
}

// render executes into a buffer first so a template error never leaves a
// half-written page.
func (p *Pages) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := p.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("failed to render page", "template", name, "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
