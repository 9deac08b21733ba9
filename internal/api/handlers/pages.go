package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dom/pokedex-web/internal/api/middleware"
	"github.com/dom/pokedex-web/internal/domain"
	"github.com/dom/pokedex-web/internal/render"
	"github.com/dom/pokedex-web/internal/service"
	"github.com/go-chi/chi/v5"
)

const (
	msgEmptyQuery      = "Please enter a Pokémon name or ID."
	msgNotFound        = "Pokémon not found"
	msgTryAgain        = "Pokémon not found! Please try a different name or ID."
	msgGenerationEmpty = "Generation not found. Please select a generation from the home page."
)

// PageHandler serves the HTML pages: search, results, generation listing
// and the not-found page.
type PageHandler struct {
	navigation *service.NavigationService
	listing    *service.ListingService
	renderer   *render.Renderer
}

func NewPageHandler(navigation *service.NavigationService, listing *service.ListingService, renderer *render.Renderer) *PageHandler {
	return &PageHandler{
		navigation: navigation,
		listing:    listing,
		renderer:   renderer,
	}
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderIndex(w, http.StatusOK, render.IndexPage{})
}

// Search handles every search form. The index page renders in place when
// the inline variant is active; everywhere else a hit is handed off and
// the browser is sent to /results.
func (h *PageHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.FormValue("q"))
	from := r.FormValue("from")

	if query == "" {
		switch from {
		case "index":
			h.renderIndex(w, http.StatusBadRequest, render.IndexPage{Error: msgEmptyQuery})
		case "not-found":
			h.renderNotFound(w, render.NotFoundPage{Message: msgEmptyQuery})
		default:
			http.Redirect(w, r, "/", http.StatusSeeOther)
		}
		return
	}

	if from == "index" && h.navigation.Variant() == domain.VariantInline {
		h.searchInline(w, r, query)
		return
	}

	h.searchAndRedirect(w, r, query, from == "not-found")
}

func (h *PageHandler) searchInline(w http.ResponseWriter, r *http.Request, query string) {
	out, err := h.navigation.SearchInline(r.Context(), query)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Printf("ERROR [pages.Search] query=%s: %v", query, err)
		}
		h.renderIndex(w, http.StatusNotFound, render.IndexPage{Query: query, Error: msgNotFound})
		return
	}

	view := h.resultView(out)
	h.renderIndex(w, http.StatusOK, render.IndexPage{Result: view})
}

func (h *PageHandler) searchAndRedirect(w http.ResponseWriter, r *http.Request, query string, stayOnNotFound bool) {
	sessionID := middleware.MustSessionID(r.Context())

	if _, err := h.navigation.SearchAndPublish(r.Context(), sessionID, query); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Printf("ERROR [pages.Search] query=%s: %v", query, err)
		}
		if stayOnNotFound {
			h.renderNotFound(w, render.NotFoundPage{Query: query, Message: msgTryAgain})
			return
		}
		http.Redirect(w, r, "/not-found?q="+url.QueryEscape(query), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/results", http.StatusSeeOther)
}

// Results renders whatever the session handed off, consuming it.
func (h *PageHandler) Results(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.MustSessionID(r.Context())

	out, err := h.navigation.Load(r.Context(), sessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrNoHandoff) {
			log.Printf("ERROR [pages.Results] session=%s: %v", sessionID, err)
		}
		h.renderResults(w, render.ResultsPage{})
		return
	}

	h.renderResults(w, render.ResultsPage{Result: h.resultView(out)})
}

// Step handles the previous/next buttons on the results page.
func (h *PageHandler) Step(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	dir, ok := domain.ParseDirection(r.FormValue("dir"))
	if !ok {
		http.Error(w, "Invalid direction", http.StatusBadRequest)
		return
	}

	sessionID := middleware.MustSessionID(r.Context())
	if _, err := h.navigation.Step(r.Context(), sessionID, id, dir); err != nil {
		switch {
		case errors.Is(err, domain.ErrNavigationDisabled):
			http.Error(w, "Navigation disabled", http.StatusBadRequest)
		case errors.Is(err, domain.ErrNotFound):
			http.Redirect(w, r, "/not-found", http.StatusSeeOther)
		default:
			log.Printf("ERROR [pages.Step] id=%d: %v", id, err)
			http.Error(w, "Failed to navigate", http.StatusInternalServerError)
		}
		return
	}

	http.Redirect(w, r, "/results", http.StatusSeeOther)
}

func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderNotFound(w, render.NotFoundPage{Query: r.URL.Query().Get("q")})
}

// Popular handles the suggestion cards on the not-found page.
func (h *PageHandler) Popular(w http.ResponseWriter, r *http.Request) {
	query := domain.PopularQuery(r.FormValue("name"))
	if query == "" {
		h.renderNotFound(w, render.NotFoundPage{})
		return
	}
	h.searchAndRedirect(w, r, query, true)
}

// Generation streams a generation's cards one chunk at a time, with a
// progress line after each chunk.
func (h *PageHandler) Generation(w http.ResponseWriter, r *http.Request) {
	ordinal, err := strconv.Atoi(chi.URLParam(r, "ordinal"))
	if err != nil {
		h.renderNotFound(w, render.NotFoundPage{Message: msgGenerationEmpty})
		return
	}
	gen, err := domain.GenerationByOrdinal(ordinal)
	if err != nil {
		h.renderNotFound(w, render.NotFoundPage{Message: msgGenerationEmpty})
		return
	}

	prev, hasPrev := domain.StepGeneration(ordinal, domain.Previous)
	next, hasNext := domain.StepGeneration(ordinal, domain.Next)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	flusher, _ := w.(http.Flusher)
	flush := func() {
		if flusher != nil {
			flusher.Flush()
		}
	}

	if err := h.renderer.GenerationHead(w, render.GenerationPage{
		Generation:  gen,
		PrevOrdinal: prev,
		NextOrdinal: next,
		HasPrev:     hasPrev,
		HasNext:     hasNext,
	}); err != nil {
		log.Printf("ERROR [pages.Generation] ordinal=%d: %v", ordinal, err)
		return
	}
	flush()

	err = h.listing.ListGeneration(r.Context(), ordinal, func(chunk service.Chunk) error {
		cards := make([]template.HTML, 0, len(chunk.Pokemon))
		for _, p := range chunk.Pokemon {
			cards = append(cards, render.RenderListingCard(p))
		}
		if err := h.renderer.GenerationChunk(w, render.ChunkView{
			Cards:    cards,
			Loaded:   chunk.Loaded,
			Total:    chunk.Total,
			Progress: chunk.Progress(),
		}); err != nil {
			return err
		}
		flush()
		return nil
	})
	if err != nil {
		log.Printf("ERROR [pages.Generation] ordinal=%d: %v", ordinal, err)
		return
	}

	if err := h.renderer.GenerationTail(w); err != nil {
		log.Printf("ERROR [pages.Generation] ordinal=%d: %v", ordinal, err)
	}
}

func (h *PageHandler) resultView(out *service.Outcome) *render.ResultView {
	prev, hasPrev, next, hasNext := h.navigation.Neighbours(out.Pokemon.ID)
	return &render.ResultView{
		Pokemon: out.Pokemon,
		Stages:  out.Stages,
		PrevID:  prev,
		NextID:  next,
		HasPrev: hasPrev,
		HasNext: hasNext,
	}
}

func (h *PageHandler) renderIndex(w http.ResponseWriter, status int, page render.IndexPage) {
	page.Generations = domain.Generations
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.renderer.Index(w, page); err != nil {
		log.Printf("ERROR [pages.Index]: %v", err)
	}
}

func (h *PageHandler) renderResults(w http.ResponseWriter, page render.ResultsPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Results(w, page); err != nil {
		log.Printf("ERROR [pages.Results]: %v", err)
	}
}

func (h *PageHandler) renderNotFound(w http.ResponseWriter, page render.NotFoundPage) {
	page.Popular = domain.PopularDisplayNames
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := h.renderer.NotFound(w, page); err != nil {
		log.Printf("ERROR [pages.NotFound]: %v", err)
	}
}
