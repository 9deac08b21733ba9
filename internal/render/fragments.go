package render

import (
	"bytes"
	"html/template"
	"log"

	"github.com/dom/pokedex-web/internal/domain"
)

const NoEvolutionChain = `<p class="no-evolution">No evolution chain available</p>`

var fragmentFuncs = template.FuncMap{
	"title":        Title,
	"statLabel":    StatLabel,
	"formatHeight": FormatHeight,
	"formatWeight": FormatWeight,
}

const fragmentTemplates = `
{{define "types"}}<div class="pokemon-types">{{range $i, $t := .}}{{if $i}} {{end}}<span class="type {{$t}}">{{title $t}}</span>{{end}}</div>{{end}}

{{define "card"}}<div class="pokemon-card-inner">
  <img class="pokemon-img" src="{{.ImageURL}}" alt="{{title .Name}}" />
  <h2 class="pokemon-name">{{title .Name}}</h2>
  {{template "types" .Types}}
  <p class="pokemon-id">#{{.ID}}</p>
</div>{{end}}

{{define "stats"}}<div class="pokemon-stats">
  <h3>Base Stats</h3>
  <div>{{range .Stats}}
    <div><span>{{statLabel .Name}}</span><span>{{.Base}}</span></div>{{end}}
  </div>
</div>{{end}}

{{define "details"}}<div class="pokemon-details">
  <h3>Details</h3>
  <div>
    <p><strong>Height:</strong> {{formatHeight .Height}}</p>
    <p><strong>Weight:</strong> {{formatWeight .Weight}}</p>
    <p><strong>Base Experience:</strong> {{.BaseExperience}}</p>
  </div>
</div>{{end}}

{{define "stage"}}{{if .Pokemon}}<div class="evo-stage">
  <img class="pokemon-img" src="{{.Pokemon.ImageURL}}" alt="{{title .Name}}" />
  <div>{{title .Name}}</div>
</div>{{else}}<div class="evo-stage">{{title .Name}}</div>{{end}}{{end}}

{{define "chain"}}<div class="evolution-chain">
  <h3>Evolution Chain</h3>
  <div class="evolution-stages">{{range $i, $s := .}}{{if $i}}<span class="arrow">&rarr;</span>{{end}}{{template "stage" $s}}{{end}}</div>
</div>{{end}}

{{define "listing-card"}}<div class="pokemon-card" data-pokemon-name="{{.Name}}">
  <form method="post" action="/search">
    <input type="hidden" name="q" value="{{.Name}}" />
    <button type="submit" class="pokemon-card-inner">
      <img src="{{.ImageURL}}" alt="{{title .Name}}" class="pokemon-img">
      <div class="pokemon-info">
        <h3 class="pokemon-name">{{title .Name}}</h3>
        {{template "types" .Types}}
        <p class="pokemon-id">#{{.ID}}</p>
      </div>
    </button>
  </form>
</div>{{end}}
`

var fragments = template.Must(template.New("fragments").Funcs(fragmentFuncs).Parse(fragmentTemplates))

func executeFragment(name string, data interface{}) template.HTML {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("ERROR [render.%s]: %v", name, err)
		return ""
	}
	return template.HTML(buf.String())
}

// RenderCard renders the identity block: sprite, name, types and id.
func RenderCard(p *domain.Pokemon) template.HTML {
	return executeFragment("card", p)
}

func RenderStatsBlock(p *domain.Pokemon) template.HTML {
	return executeFragment("stats", p)
}

func RenderDetails(p *domain.Pokemon) template.HTML {
	return executeFragment("details", p)
}

// RenderEvolutionChain renders stages in sequence order. One stage or
// fewer gets the fixed placeholder instead of an empty widget.
func RenderEvolutionChain(stages []domain.EvolutionStage) template.HTML {
	if len(stages) <= 1 {
		return template.HTML(NoEvolutionChain)
	}
	return executeFragment("chain", stages)
}

// RenderListingCard renders a clickable card that re-issues a search for
// the Pokemon's name.
func RenderListingCard(p *domain.Pokemon) template.HTML {
	return executeFragment("listing-card", p)
}
