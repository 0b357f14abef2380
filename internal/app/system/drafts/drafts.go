// Package drafts keeps in-progress obstacle reports alive across page
// reloads. Drafts live in a key-value Storage scoped per user and per
// obstacle type; explicit saves upsert under a stable key while periodic
// autosaves rotate through a small window of snapshots.
package drafts

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"
)

// MaxAutosaves is how many autosave snapshots are retained per owner.
const MaxAutosaves = 3

var (
	// ErrNotFound means no draft exists under the requested key.
	ErrNotFound = errors.New("drafts: draft not found")
	// ErrAccessDenied means the draft belongs to a different user.
	ErrAccessDenied = errors.New("drafts: draft belongs to another user")
)

// Entry pairs a storage key with its decoded draft.
type Entry struct {
	Key   string
	Draft Draft
}

// Manager coordinates draft saves, loads and retention over a Storage.
type Manager struct {
	store Storage
	now   func() time.Time
}

// NewManager returns a Manager over store. The clock can be overridden
// with WithClock for tests.
func NewManager(store Storage) *Manager {
	return &Manager{store: store, now: time.Now}
}

// WithClock replaces the manager's time source.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Save persists an explicit draft snapshot. When currentKey names an
// existing key, the save is an upsert under that same key; otherwise a
// fresh draft-prefixed key is generated. Returns the key used.
func (m *Manager) Save(ownerID string, raw map[string]any, currentKey string) (string, error) {
	d := Canonicalize(raw)
	d.OwnerID = ownerID
	d.SavedAt = m.now().UnixMilli()

	key := strings.TrimSpace(currentKey)
	if key == "" || !IsDraftKey(key) {
		key = NewKey(PrefixSaved, ownerID, d.Type, m.now())
	}

	if err := m.checkOwnership(key, ownerID); err != nil {
		return "", err
	}

	payload, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	m.store.Set(key, string(payload))
	return key, nil
}

// Autosave persists a periodic snapshot under a fresh autosave key and
// prunes old autosaves down to MaxAutosaves. Empty drafts are skipped.
func (m *Manager) Autosave(ownerID string, raw map[string]any) (string, error) {
	d := Canonicalize(raw)
	if d.IsEmpty() {
		return "", nil
	}
	d.OwnerID = ownerID
	d.SavedAt = m.now().UnixMilli()

	key := NewKey(PrefixAutosave, ownerID, d.Type, m.now())
	payload, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	m.store.Set(key, string(payload))
	m.pruneAutosaves(ownerID)
	return key, nil
}

// Load returns the draft stored under key. Drafts owned by a different
// user are never returned: loading aborts with ErrAccessDenied.
func (m *Manager) Load(key, currentOwnerID string) (Draft, error) {
	raw, ok := m.store.Get(key)
	if !ok {
		return Draft{}, ErrNotFound
	}
	var d Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return Draft{}, err
	}
	if d.OwnerID != "" && d.OwnerID != currentOwnerID {
		return Draft{}, ErrAccessDenied
	}
	return d, nil
}

// List returns all drafts visible to the current user, newest first.
// Foreign-owned drafts are silently excluded.
func (m *Manager) List(currentOwnerID string) []Entry {
	var out []Entry
	for _, key := range m.store.Keys() {
		if !IsDraftKey(key) {
			continue
		}
		raw, ok := m.store.Get(key)
		if !ok {
			continue
		}
		var d Draft
		if err := json.Unmarshal([]byte(raw), &d); err != nil {
			continue
		}
		if d.OwnerID != "" && d.OwnerID != currentOwnerID {
			continue
		}
		out = append(out, Entry{Key: key, Draft: d})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Draft.SavedAt > out[j].Draft.SavedAt
	})
	return out
}

// Delete removes the draft under key. Foreign-owned drafts are left
// untouched and the call reports ErrAccessDenied.
func (m *Manager) Delete(key, currentOwnerID string) error {
	raw, ok := m.store.Get(key)
	if !ok {
		return ErrNotFound
	}
	var d Draft
	if err := json.Unmarshal([]byte(raw), &d); err == nil {
		if d.OwnerID != "" && d.OwnerID != currentOwnerID {
			return ErrAccessDenied
		}
	}
	m.store.Delete(key)
	return nil
}

// NeedsTypeRedirect reports whether a loaded draft's type conflicts with
// the type implied by the current page context, in which case the client
// must reload against the draft's own type.
func NeedsTypeRedirect(draftType, pageType string) bool {
	dt := strings.ToLower(strings.TrimSpace(draftType))
	pt := strings.ToLower(strings.TrimSpace(pageType))
	return dt != "" && pt != "" && dt != pt
}

func (m *Manager) checkOwnership(key, ownerID string) error {
	raw, ok := m.store.Get(key)
	if !ok {
		return nil
	}
	var existing Draft
	if err := json.Unmarshal([]byte(raw), &existing); err != nil {
		return nil
	}
	if existing.OwnerID != "" && existing.OwnerID != ownerID {
		return ErrAccessDenied
	}
	return nil
}

// pruneAutosaves keeps at most MaxAutosaves autosave snapshots for the
// given owner, deleting the oldest first. The storage is shared by all
// users, so only snapshots whose stored OwnerID matches are candidates;
// another user's autosaves are never touched.
func (m *Manager) pruneAutosaves(ownerID string) {
	var autosaves []Entry
	for _, key := range m.store.Keys() {
		if !IsAutosaveKey(key) {
			continue
		}
		raw, ok := m.store.Get(key)
		if !ok {
			continue
		}
		var d Draft
		if err := json.Unmarshal([]byte(raw), &d); err != nil {
			continue
		}
		if d.OwnerID != ownerID {
			continue
		}
		autosaves = append(autosaves, Entry{Key: key, Draft: d})
	}
	if len(autosaves) <= MaxAutosaves {
		return
	}
	sort.Slice(autosaves, func(i, j int) bool {
		return autosaves[i].Draft.SavedAt < autosaves[j].Draft.SavedAt
	})
	for _, e := range autosaves[:len(autosaves)-MaxAutosaves] {
		m.store.Delete(e.Key)
	}
}
