package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/dom/pokedex-web/internal/domain"
)

// IndexPage is the search landing page. Result is set when the inline
// variant rendered a search in place.
type IndexPage struct {
	Generations []domain.Generation
	Query       string
	Error       string
	Result      *ResultView
}

// ResultView is everything the results page needs about one Pokemon.
type ResultView struct {
	Pokemon *domain.Pokemon
	Stages  []domain.EvolutionStage
	PrevID  int
	NextID  int
	HasPrev bool
	HasNext bool
}

type ResultsPage struct {
	Result *ResultView
}

type GenerationPage struct {
	Generation  domain.Generation
	PrevOrdinal int
	NextOrdinal int
	HasPrev     bool
	HasNext     bool
}

type NotFoundPage struct {
	Query   string
	Message string
	Popular []string
}

const layoutTemplate = `
{{define "header"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.}} | Pokédex</title>
  <link rel="stylesheet" href="/static/style.css">
</head>
<body>
  <header class="header">
    <a href="/" class="logo">Pokédex</a>
    <form method="post" action="/search" class="search-form">
      <input type="text" name="q" class="search-input" placeholder="Search by name or ID" />
      <button type="submit" class="search-btn">Search</button>
    </form>
  </header>
{{end}}

{{define "footer"}}
</body>
</html>{{end}}

{{define "result"}}<div class="pokemon-card">
  {{card .Pokemon}}
  {{stats .Pokemon}}
  {{details .Pokemon}}
  {{chain .Stages}}
</div>{{end}}

{{define "index"}}{{template "header" "Search"}}
<main class="container">
  <form method="post" action="/search" id="pokemonSearch">
    <input type="text" id="pokemonIdInput" name="q" value="{{.Query}}" placeholder="Enter a Pokémon name or ID" />
    <input type="hidden" name="from" value="index" />
    <button type="submit">Search</button>
  </form>
  <div id="pokemonCard">
    {{if .Error}}<p class="error-message">{{.Error}}</p>{{end}}
    {{if .Result}}{{template "result" .Result}}{{end}}
  </div>
  <section class="generations">
    {{range .Generations}}<a class="generation-card" href="/generations/{{.Ordinal}}">
      <h3>Generation {{.Ordinal}}</h3>
      <p>{{.Region}} Region</p>
      <p>#{{.StartID}} - #{{.EndID}}</p>
    </a>{{end}}
  </section>
</main>
{{template "footer"}}{{end}}

{{define "results"}}{{template "header" "Results"}}
<main class="results"><div class="container">
{{if .Result}}
  <div class="nav-buttons">
    <form method="post" action="/results/step">
      <input type="hidden" name="id" value="{{.Result.Pokemon.ID}}" />
      <button type="submit" name="dir" value="previous" class="nav-button"{{if not .Result.HasPrev}} disabled{{end}}>Previous</button>
      <button type="submit" name="dir" value="next" class="nav-button"{{if not .Result.HasNext}} disabled{{end}}>Next</button>
    </form>
  </div>
  <div id="pokemonResult">{{template "result" .Result}}</div>
{{else}}
  <div id="pokemonResult" class="empty-result">
    <h2>No Pokémon data found</h2>
    <p>Please search for a Pokémon from the home page.</p>
    <a href="/">Go back to home</a>
  </div>
{{end}}
</div></main>
{{template "footer"}}{{end}}

{{define "generation-head"}}{{template "header" (printf "Generation %d" .Generation.Ordinal)}}
<main class="container">
  <div id="generationHeader">
    <h2>Generation {{.Generation.Ordinal}}</h2>
    <h3>{{.Generation.Region}} Region</h3>
  </div>
  <div class="nav-buttons">
    {{if .HasPrev}}<a class="nav-button" href="/generations/{{.PrevOrdinal}}">Previous Generation</a>{{else}}<button type="button" class="nav-button" disabled>Previous Generation</button>{{end}}
    {{if .HasNext}}<a class="nav-button" href="/generations/{{.NextOrdinal}}">Next Generation</a>{{else}}<button type="button" class="nav-button" disabled>Next Generation</button>{{end}}
  </div>
  <div id="generationPokemon">
{{end}}

{{define "generation-chunk"}}{{range .Cards}}{{.}}{{end}}
<p class="loading-message" data-loaded="{{.Loaded}}" data-total="{{.Total}}">{{.Progress}}</p>
{{end}}

{{define "generation-tail"}}  </div>
</main>
{{template "footer"}}{{end}}

{{define "not-found"}}{{template "header" "Not Found"}}
<main class="container error-page">
  <h1>404</h1>
  <h2>Pokémon not found</h2>
  {{if .Message}}<p class="error-message">{{.Message}}</p>{{end}}
  <section class="search-section">
    <form method="post" action="/search">
      <input type="text" name="q" class="search-input" value="{{.Query}}" placeholder="Try another name or ID" />
      <input type="hidden" name="from" value="not-found" />
      <button type="submit" class="search-btn">Search Again</button>
    </form>
  </section>
  <section class="popular">
    <h3>Popular Pokémon</h3>
    {{range .Popular}}<form method="post" action="/not-found/popular" class="pokemon-card">
      <input type="hidden" name="name" value="{{.}}" />
      <button type="submit"><h3>{{.}}</h3></button>
    </form>{{end}}
  </section>
</main>
{{template "footer"}}{{end}}
`

// Renderer executes full pages. Fragments are shared with the pure
// Render* functions.
type Renderer struct {
	pages *template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"card":    RenderCard,
		"stats":   RenderStatsBlock,
		"details": RenderDetails,
		"chain":   RenderEvolutionChain,
	}
	pages, err := template.New("pages").Funcs(funcs).Parse(layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page templates: %w", err)
	}
	return &Renderer{pages: pages}, nil
}

func (r *Renderer) Index(w io.Writer, page IndexPage) error {
	return r.pages.ExecuteTemplate(w, "index", page)
}

func (r *Renderer) Results(w io.Writer, page ResultsPage) error {
	return r.pages.ExecuteTemplate(w, "results", page)
}

func (r *Renderer) NotFound(w io.Writer, page NotFoundPage) error {
	return r.pages.ExecuteTemplate(w, "not-found", page)
}

// GenerationHead writes everything up to the card grid so the page can
// stream while chunks load.
func (r *Renderer) GenerationHead(w io.Writer, page GenerationPage) error {
	return r.pages.ExecuteTemplate(w, "generation-head", page)
}

// ChunkView is one loaded batch of listing cards.
type ChunkView struct {
	Cards    []template.HTML
	Loaded   int
	Total    int
	Progress string
}

func (r *Renderer) GenerationChunk(w io.Writer, chunk ChunkView) error {
	return r.pages.ExecuteTemplate(w, "generation-chunk", chunk)
}

func (r *Renderer) GenerationTail(w io.Writer) error {
	return r.pages.ExecuteTemplate(w, "generation-tail", nil)
}
