package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dom/pokedex-web/internal/domain"
	"github.com/dom/pokedex-web/internal/render"
	"github.com/dom/pokedex-web/internal/service"
	"github.com/go-chi/chi/v5"
)

type PokemonHandler struct {
	navigation *service.NavigationService
	evolution  *service.EvolutionService
}

func NewPokemonHandler(navigation *service.NavigationService, evolution *service.EvolutionService) *PokemonHandler {
	return &PokemonHandler{navigation: navigation, evolution: evolution}
}

type StatResponse struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Base  int    `json:"base"`
}

type PokemonResponse struct {
	ID             int            `json:"id"`
	Name           string         `json:"name"`
	DisplayName    string         `json:"displayName"`
	Types          []string       `json:"types"`
	Stats          []StatResponse `json:"stats"`
	Height         int            `json:"height"`
	Weight         int            `json:"weight"`
	HeightLabel    string         `json:"heightLabel"`
	WeightLabel    string         `json:"weightLabel"`
	BaseExperience int            `json:"baseExperience"`
	ImageURL       string         `json:"imageUrl"`
	SpeciesURL     string         `json:"speciesUrl"`
	PrevID         *int           `json:"prevId"`
	NextID         *int           `json:"nextId"`
}

type StageResponse struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	ID          int    `json:"id,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

type EvolutionResponse struct {
	Pokemon  string          `json:"pokemon"`
	Sequence []string        `json:"sequence"`
	Stages   []StageResponse `json:"stages"`
}

type GenerationsResponse struct {
	Generations []domain.Generation `json:"generations"`
}

func (h *PokemonHandler) Get(w http.ResponseWriter, r *http.Request) {
	query := chi.URLParam(r, "query")

	p, err := h.navigation.Lookup(r.Context(), query)
	if err != nil {
		h.lookupError(w, "pokemon.Get", query, err)
		return
	}

	writeJSON(w, h.toResponse(p))
}

// Evolution never fails once the Pokemon itself resolves; an unavailable
// chain comes back as an empty sequence.
func (h *PokemonHandler) Evolution(w http.ResponseWriter, r *http.Request) {
	query := chi.URLParam(r, "query")

	p, err := h.navigation.Lookup(r.Context(), query)
	if err != nil {
		h.lookupError(w, "pokemon.Evolution", query, err)
		return
	}

	seq := h.evolution.Resolve(r.Context(), p)
	resp := EvolutionResponse{
		Pokemon:  p.Name,
		Sequence: seq,
		Stages:   []StageResponse{},
	}
	if seq.HasChain() {
		for _, stage := range h.evolution.ResolveStages(r.Context(), seq) {
			sr := StageResponse{Name: stage.Name, DisplayName: render.Title(stage.Name)}
			if stage.Pokemon != nil {
				sr.ID = stage.Pokemon.ID
				sr.ImageURL = stage.Pokemon.ImageURL()
			}
			resp.Stages = append(resp.Stages, sr)
		}
	}

	writeJSON(w, resp)
}

func (h *PokemonHandler) Generations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, GenerationsResponse{Generations: domain.Generations})
}

func (h *PokemonHandler) lookupError(w http.ResponseWriter, op, query string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		http.Error(w, "Query required", http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		log.Printf("ERROR [%s] query=%s: %v", op, query, err)
		http.Error(w, "Pokemon not found", http.StatusNotFound)
	default:
		log.Printf("ERROR [%s] query=%s: %v", op, query, err)
		http.Error(w, "Failed to get pokemon", http.StatusInternalServerError)
	}
}

func (h *PokemonHandler) toResponse(p *domain.Pokemon) PokemonResponse {
	resp := PokemonResponse{
		ID:             p.ID,
		Name:           p.Name,
		DisplayName:    render.Title(p.Name),
		Types:          p.Types,
		Stats:          make([]StatResponse, len(p.Stats)),
		Height:         p.Height,
		Weight:         p.Weight,
		HeightLabel:    render.FormatHeight(p.Height),
		WeightLabel:    render.FormatWeight(p.Weight),
		BaseExperience: p.BaseExperience,
		ImageURL:       p.ImageURL(),
		SpeciesURL:     p.SpeciesURL,
	}
	for i, s := range p.Stats {
		resp.Stats[i] = StatResponse{Name: s.Name, Label: render.StatLabel(s.Name), Base: s.Base}
	}

	prev, hasPrev, next, hasNext := h.navigation.Neighbours(p.ID)
	if hasPrev {
		resp.PrevID = &prev
	}
	if hasNext {
		resp.NextID = &next
	}
	return resp
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR [handlers.writeJSON]: %v", err)
	}
}
