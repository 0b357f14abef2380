// internal/app/features/drafts/handler.go
package drafts

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MGumpen/aor/internal/app/system/auth"
	"github.com/MGumpen/aor/internal/app/system/authz"
	"github.com/MGumpen/aor/internal/app/system/drafts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler exposes the server-side draft storage as a small JSON API used
// by the obstacle form. Ownership is enforced by the manager: foreign
// drafts are invisible on list and refused on load/delete.
type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Manager    *drafts.Manager
}

// NewHandler constructs a drafts Handler over the given storage.
func NewHandler(store drafts.Storage, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Manager:    drafts.NewManager(store),
	}
}

type saveRequest struct {
	Key    string         `json:"key,omitempty"`
	Fields map[string]any `json:"fields"`
}

type keyResponse struct {
	Key string `json:"key"`
}

type loadResponse struct {
	Key               string       `json:"key"`
	Draft             drafts.Draft `json:"draft"`
	NeedsTypeRedirect bool         `json:"needsTypeRedirect"`
}

type listEntry struct {
	Key     string `json:"key"`
	Type    string `json:"type,omitempty"`
	Name    string `json:"name,omitempty"`
	SavedAt int64  `json:"savedAt"`
}

// HandleList returns the current user's drafts, newest first.
//
// Route: GET /drafts
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		http.Error(w, "not signed in", http.StatusUnauthorized)
		return
	}

	entries := h.Manager.List(uid.Hex())
	out := make([]listEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, listEntry{
			Key:     e.Key,
			Type:    e.Draft.Type,
			Name:    e.Draft.Name,
			SavedAt: e.Draft.SavedAt,
		})
	}
	writeJSON(w, h.Log, out)
}

// HandleSave stores an explicit draft snapshot, upserting under the
// carried key when one is given.
//
// Route: POST /drafts/save
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, false)
}

// HandleAutosave stores a periodic snapshot under a fresh autosave key.
// Empty drafts are ignored.
//
// Route: POST /drafts/autosave
func (h *Handler) HandleAutosave(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, true)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, autosave bool) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		http.Error(w, "not signed in", http.StatusUnauthorized)
		return
	}

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	var (
		key string
		err error
	)
	if autosave {
		key, err = h.Manager.Autosave(uid.Hex(), req.Fields)
	} else {
		key, err = h.Manager.Save(uid.Hex(), req.Fields, req.Key)
	}
	switch {
	case err == nil:
		writeJSON(w, h.Log, keyResponse{Key: key})
	case errors.Is(err, drafts.ErrAccessDenied):
		http.Error(w, "draft belongs to another user", http.StatusForbidden)
	default:
		h.Log.Error("draft save failed", zap.Bool("autosave", autosave), zap.Error(err))
		http.Error(w, "draft save failed", http.StatusInternalServerError)
	}
}

// HandleLoad returns one draft. The `type` query parameter carries the
// page's current obstacle type; when the draft disagrees the response
// flags that the client must reload under the draft's own type.
//
// Route: GET /drafts/{key}
func (h *Handler) HandleLoad(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		http.Error(w, "not signed in", http.StatusUnauthorized)
		return
	}
	key := chi.URLParam(r, "key")

	d, err := h.Manager.Load(key, uid.Hex())
	switch {
	case err == nil:
		writeJSON(w, h.Log, loadResponse{
			Key:               key,
			Draft:             d,
			NeedsTypeRedirect: drafts.NeedsTypeRedirect(d.Type, r.URL.Query().Get("type")),
		})
	case errors.Is(err, drafts.ErrNotFound):
		http.Error(w, "draft not found", http.StatusNotFound)
	case errors.Is(err, drafts.ErrAccessDenied):
		http.Error(w, "draft belongs to another user", http.StatusForbidden)
	default:
		h.Log.Error("draft load failed", zap.String("key", key), zap.Error(err))
		http.Error(w, "draft load failed", http.StatusInternalServerError)
	}
}

// HandleDelete removes one draft owned by the current user.
//
// Route: POST /drafts/{key}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		http.Error(w, "not signed in", http.StatusUnauthorized)
		return
	}
	key := chi.URLParam(r, "key")

	switch err := h.Manager.Delete(key, uid.Hex()); {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, drafts.ErrNotFound):
		http.Error(w, "draft not found", http.StatusNotFound)
	case errors.Is(err, drafts.ErrAccessDenied):
		http.Error(w, "draft belongs to another user", http.StatusForbidden)
	default:
		h.Log.Error("draft delete failed", zap.String("key", key), zap.Error(err))
		http.Error(w, "draft delete failed", http.StatusInternalServerError)
	}
}

// HandlePendingDelete returns and clears the one-shot draft key stored by
// a successful submission. Ownership is re-checked: a key pointing at a
// foreign draft is dropped rather than handed out.
//
// Route: GET /drafts/pending-delete
func (h *Handler) HandlePendingDelete(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		http.Error(w, "not signed in", http.StatusUnauthorized)
		return
	}

	key, ok := h.SessionMgr.Flash(w, r, "pending_draft_delete")
	if !ok {
		writeJSON(w, h.Log, keyResponse{})
		return
	}
	if _, err := h.Manager.Load(key, uid.Hex()); errors.Is(err, drafts.ErrAccessDenied) {
		writeJSON(w, h.Log, keyResponse{})
		return
	}
	writeJSON(w, h.Log, keyResponse{Key: key})
}

func writeJSON(w http.ResponseWriter, log *zap.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("json encode failed", zap.Error(err))
	}
}
