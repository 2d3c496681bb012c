package api

import (
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/meur/pokedex/internal/catalog"
	"go.uber.org/zap"
)

var validate = validator.New()

// sessionUpdate is a partial update; absent fields keep their value
type sessionUpdate struct {
	Text       *string `json:"q"`
	Type       *string `json:"type"`
	Generation *int    `json:"gen" validate:"omitempty,min=0"`
	Sprites    *string `json:"sprites" validate:"omitempty,oneof=2d 3d"`
}

func (u sessionUpdate) touchesQuery() bool {
	return u.Text != nil || u.Type != nil || u.Generation != nil
}

// applyUpdate changes only the fields present in u. Any query field leaves
// the initial sample for good; sprites alone do not
func applyUpdate(session *catalog.Session, u sessionUpdate) {
	if u.touchesQuery() {
		q := session.Query()
		if u.Text != nil {
			q.Text = *u.Text
		}
		if u.Type != nil {
			q.Type = *u.Type
		}
		if u.Generation != nil {
			q.Generation = *u.Generation
		}
		session.SetQuery(q)
	}
	if u.Sprites != nil {
		session.SetSpriteStyle(catalog.ParseSpriteStyle(*u.Sprites))
	}
}

type sessionEntry struct {
	mu       sync.Mutex
	session  *catalog.Session
	lastSeen time.Time
}

// sessionStore keeps browsing sessions in memory and forgets idle ones
type sessionStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[uuid.UUID]*sessionEntry
}

func newSessionStore(ttl time.Duration) *sessionStore {
	return &sessionStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[uuid.UUID]*sessionEntry),
	}
}

func (st *sessionStore) add(session *catalog.Session) uuid.UUID {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	for id, e := range st.entries {
		if st.idle(e, now) {
			delete(st.entries, id)
		}
	}

	id := uuid.New()
	st.entries[id] = &sessionEntry{session: session, lastSeen: now}
	return id
}

// get returns nil for unknown sessions and for ones idle past the ttl
func (st *sessionStore) get(id uuid.UUID) *sessionEntry {
	st.mu.Lock()
	defer st.mu.Unlock()

	e := st.entries[id]
	if e == nil {
		return nil
	}
	if st.idle(e, st.now()) {
		delete(st.entries, id)
		return nil
	}
	return e
}

func (st *sessionStore) idle(e *sessionEntry, now time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return now.Sub(e.lastSeen) > st.ttl
}

func (st *sessionStore) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.entries)
}

func (s *Server) sessionView(id uuid.UUID, e *sessionEntry) viewResponse {
	e.lastSeen = s.sessions.now()
	v := e.session.View()
	resp := newViewResponse(v, v.Empty() && (v.Initial || !v.Query.Active()))
	resp.SessionID = id.String()
	return resp
}

// lookupSession resolves the {id} URL parameter
func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (uuid.UUID, *sessionEntry, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid session id")
		return uuid.Nil, nil, false
	}
	e := s.sessions.get(id)
	if e == nil {
		respondError(w, http.StatusNotFound, "Session not found")
		return uuid.Nil, nil, false
	}
	return id, e, true
}

// handleCreateSession starts a browsing session showing the initial sample.
// The body is optional and takes the same fields as an update
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	cat := s.readyCatalog(w)
	if cat == nil {
		return
	}

	var req sessionUpdate
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "sprites must be 2d or 3d and gen must not be negative")
		return
	}

	session := catalog.NewSession(cat, s.sampler, catalog.SessionOptions{
		InitialCount:        s.opts.InitialCount,
		RecommendationCount: s.opts.RecommendationCount,
	})
	applyUpdate(session, req)
	id := s.sessions.add(session)
	s.logger.Debug("Session created", zap.String("session_id", id.String()), zap.Int("catalog_size", cat.Len()))

	e := s.sessions.get(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	respondJSON(w, http.StatusCreated, s.sessionView(id, e))
}

// handleGetSession returns the current view of a session
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, e, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	respondJSON(w, http.StatusOK, s.sessionView(id, e))
}

// handleUpdateSession applies search, filter and sprite changes
func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	id, e, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	var req sessionUpdate
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "sprites must be 2d or 3d and gen must not be negative")
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	applyUpdate(e.session, req)
	respondJSON(w, http.StatusOK, s.sessionView(id, e))
}
