package api

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/meur/pokedex/internal/catalog"
	"github.com/meur/pokedex/internal/models"
	"github.com/meur/pokedex/internal/present"
	"go.uber.org/zap"
)

type facetsResponse struct {
	Types       []present.Option    `json:"types"`
	Generations []present.Option    `json:"generations"`
	Ranges      []models.Generation `json:"ranges"`
}

type viewResponse struct {
	SessionID       string         `json:"session_id,omitempty"`
	Cards           []present.Card `json:"cards"`
	TotalCount      int            `json:"total_count"`
	Recommendations []present.Card `json:"recommendations,omitempty"`
	Message         string         `json:"message,omitempty"`
	Query           catalog.Query  `json:"query"`
	Sprites         string         `json:"sprites"`
	SpritesLabel    string         `json:"sprites_label"`
	Initial         bool           `json:"initial"`
}

type formsResponse struct {
	Title   string             `json:"title"`
	Forms   []present.FormCard `json:"forms"`
	Message string             `json:"message,omitempty"`
}

func newViewResponse(v catalog.View, recommend bool) viewResponse {
	resp := viewResponse{
		Cards:        present.Cards(v.Cards, v.SpriteStyle),
		Query:        v.Query,
		Sprites:      string(v.SpriteStyle),
		SpritesLabel: v.SpriteStyle.Label(),
		Initial:      v.Initial,
	}
	resp.TotalCount = len(resp.Cards)

	if v.Empty() {
		resp.Message = present.MsgNoResults
		if recommend {
			resp.Recommendations = present.Cards(v.Recommendations, v.SpriteStyle)
			if len(resp.Recommendations) == 0 {
				resp.Message = present.MsgNoRecommendations
			}
		}
	}
	return resp
}

// parseQuery reads q, type and gen. gen must be a number when present
func parseQuery(values url.Values) (catalog.Query, error) {
	q := catalog.Query{
		Text: values.Get("q"),
		Type: values.Get("type"),
	}
	if gen := values.Get("gen"); gen != "" {
		n, err := strconv.Atoi(gen)
		if err != nil {
			return q, err
		}
		q.Generation = n
	}
	return q, nil
}

// readyCatalog writes the load message and returns nil when the catalog is unusable
func (s *Server) readyCatalog(w http.ResponseWriter) *catalog.Catalog {
	cat, err := s.controller.Ready()
	if err != nil {
		status := s.controller.Status()
		message := status.Message
		if message == "" {
			message = "Catalog is still loading"
		}
		respondError(w, http.StatusServiceUnavailable, message)
		return nil
	}
	return cat
}

// handleGetStatus reports the bulk-load state
func (s *Server) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.controller.Status())
}

// handleGetFacets returns the selection options for the filter controls
func (s *Server) handleGetFacets(w http.ResponseWriter, r *http.Request) {
	cat := s.readyCatalog(w)
	if cat == nil {
		return
	}

	facets := cat.Facets()
	respondJSON(w, http.StatusOK, facetsResponse{
		Types:       present.TypeOptions(facets.Types),
		Generations: present.GenerationOptions(facets.Generations),
		Ranges:      facets.Generations,
	})
}

// handleListCreatures returns every creature matching the query
func (s *Server) handleListCreatures(w http.ResponseWriter, r *http.Request) {
	cat := s.readyCatalog(w)
	if cat == nil {
		return
	}

	q, err := parseQuery(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, "gen must be a generation number")
		return
	}

	v := catalog.View{
		Cards:       catalog.Filter(cat.Records(), q),
		Query:       q,
		SpriteStyle: catalog.ParseSpriteStyle(r.URL.Query().Get("sprites")),
	}
	recommend := v.Empty() && !q.Active()
	if recommend {
		v.Recommendations = s.sampler.Recommend(cat.Records(), s.opts.RecommendationCount)
	}

	respondJSON(w, http.StatusOK, newViewResponse(v, recommend))
}

// handleGetCreature returns the detail panel, fetching on demand when needed
func (s *Server) handleGetCreature(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "Invalid creature id")
		return
	}

	creature, err := s.resolver.Detail(r.Context(), id)
	if err != nil {
		s.logger.Error("Error fetching details", zap.Int("id", id), zap.Error(err))
		if errors.Is(err, catalog.ErrCreatureNotFound) {
			respondError(w, http.StatusNotFound, present.MsgDetailFailed)
			return
		}
		respondError(w, http.StatusBadGateway, present.MsgDetailFailed)
		return
	}

	style := catalog.ParseSpriteStyle(r.URL.Query().Get("sprites"))
	respondJSON(w, http.StatusOK, present.NewDetail(creature, style))
}

// handleGetForms returns the resolved alternate forms of a catalog creature
func (s *Server) handleGetForms(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "Invalid creature id")
		return
	}
	if s.readyCatalog(w) == nil {
		return
	}

	base, forms, err := s.resolver.Variants(r.Context(), id)
	if errors.Is(err, catalog.ErrNoVariants) {
		respondError(w, http.StatusNotFound, "No alternate forms found")
		return
	}
	if err != nil {
		s.logger.Error("Error fetching alternate forms", zap.Int("id", id), zap.Error(err))
		respondError(w, http.StatusBadGateway, present.MsgFormsError)
		return
	}

	style := catalog.ParseSpriteStyle(r.URL.Query().Get("sprites"))
	resp := formsResponse{
		Title: present.FormsTitle(base),
		Forms: present.FormCards(base, forms, style),
	}
	if len(resp.Forms) == 0 {
		resp.Message = present.MsgFormsFailed
	}
	respondJSON(w, http.StatusOK, resp)
}

// handleGetRecommendations returns a fresh random draw
func (s *Server) handleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	cat := s.readyCatalog(w)
	if cat == nil {
		return
	}

	style := catalog.ParseSpriteStyle(r.URL.Query().Get("sprites"))
	cards := present.Cards(s.sampler.Recommend(cat.Records(), s.opts.RecommendationCount), style)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"recommendations": cards,
		"total_count":     len(cards),
	})
}
