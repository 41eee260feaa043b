// Package plans keeps the user's saved plans. The local list is authoritative;
// the server copy is written on a best-effort basis.
package plans

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"buildmyhome/internal/model"
	"buildmyhome/internal/session"

	"github.com/google/uuid"
)

const (
	// PlansKey holds the saved plan list
	PlansKey = "bmh_saved_plans"
	// SessionKey holds the client-generated session id
	SessionKey = "bmh_session_id"
)

// Notice is the user-facing outcome of Save
type Notice string

const (
	NoticeSaved        Notice = "Plan saved"
	NoticeAlreadySaved Notice = "This plan is already saved"
)

// ErrInvalidEntry means an entry is not exactly one of package or custom plan
var ErrInvalidEntry = errors.New("a saved plan needs either a package id or a custom configuration")

// Remote is the server-side saved plan API
type Remote interface {
	CreateSavedPlan(ctx context.Context, req model.SavedPlanRequest) (*model.SavedPlan, error)
	DeleteSavedPlan(ctx context.Context, id int64) error
}

// Entry is a locally saved plan
type Entry struct {
	model.SavedPlanEntry
	RemoteID int64     `json:"remoteId,omitempty"`
	SavedAt  time.Time `json:"savedAt"`
}

// Book is the saved plan list for one session
type Book struct {
	store  session.Store
	remote Remote

	mu        sync.Mutex
	sessionID string
	entries   []Entry
}

// Open loads the list and session id from store, creating a session id on first use.
// remote may be nil.
func Open(store session.Store, remote Remote) (*Book, error) {
	b := &Book{store: store, remote: remote}

	raw, ok, err := store.Load(SessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load session id: %w", err)
	}
	if ok {
		_ = json.Unmarshal(raw, &b.sessionID)
	}
	if _, err := uuid.Parse(b.sessionID); err != nil {
		b.sessionID = uuid.NewString()
		enc, _ := json.Marshal(b.sessionID)
		if err := store.Save(SessionKey, enc); err != nil {
			return nil, fmt.Errorf("failed to save session id: %w", err)
		}
	}

	raw, ok, err = store.Load(PlansKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved plans: %w", err)
	}
	if ok {
		if err := json.Unmarshal(raw, &b.entries); err != nil {
			log.Printf("⚠️  Ignoring unreadable saved plans: %v", err)
			b.entries = nil
		}
	}
	return b, nil
}

// SessionID returns the id the server-side copies are filed under
func (b *Book) SessionID() string {
	return b.sessionID
}

// List returns a copy of the saved plans in the order they were saved
func (b *Book) List() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Entry(nil), b.entries...)
}

// Save adds entry unless an equivalent plan is already saved
func (b *Book) Save(ctx context.Context, entry model.SavedPlanEntry) (Notice, error) {
	if !entry.IsPackage() && !entry.IsCustom() {
		return "", ErrInvalidEntry
	}
	if entry.CustomPackage != nil {
		cfg := entry.CustomPackage.Clone()
		entry.CustomPackage = &cfg
	}
	if entry.PackageID != nil {
		id := *entry.PackageID
		entry.PackageID = &id
	}

	b.mu.Lock()
	for _, e := range b.entries {
		if e.SameAs(entry) {
			b.mu.Unlock()
			return NoticeAlreadySaved, nil
		}
	}
	b.entries = append(b.entries, Entry{SavedPlanEntry: entry, SavedAt: time.Now()})
	err := b.persistLocked()
	b.mu.Unlock()
	if err != nil {
		return "", err
	}

	b.syncCreate(ctx, entry)
	return NoticeSaved, nil
}

func (b *Book) syncCreate(ctx context.Context, entry model.SavedPlanEntry) {
	if b.remote == nil {
		return
	}
	plan, err := b.remote.CreateSavedPlan(ctx, model.SavedPlanRequest{SessionID: b.sessionID, SavedPlanEntry: entry})
	if err != nil {
		log.Printf("⚠️  Saved plan kept locally, server copy failed: %v", err)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.entries {
		if b.entries[i].SameAs(entry) {
			b.entries[i].RemoteID = plan.ID
			if err := b.persistLocked(); err != nil {
				log.Printf("⚠️  Failed to record server id for saved plan: %v", err)
			}
			return
		}
	}
}

// Remove deletes the plan at index (0-based)
func (b *Book) Remove(ctx context.Context, index int) error {
	b.mu.Lock()
	if index < 0 || index >= len(b.entries) {
		b.mu.Unlock()
		return fmt.Errorf("no saved plan at position %d", index+1)
	}
	removed := b.entries[index]
	b.entries = append(b.entries[:index:index], b.entries[index+1:]...)
	err := b.persistLocked()
	b.mu.Unlock()
	if err != nil {
		return err
	}

	b.syncDelete(ctx, removed)
	return nil
}

// Clear removes every saved plan
func (b *Book) Clear(ctx context.Context) error {
	b.mu.Lock()
	removed := b.entries
	b.entries = nil
	err := b.store.Clear(PlansKey)
	b.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to clear saved plans: %w", err)
	}

	for _, e := range removed {
		b.syncDelete(ctx, e)
	}
	return nil
}

func (b *Book) syncDelete(ctx context.Context, e Entry) {
	if b.remote == nil || e.RemoteID == 0 {
		return
	}
	if err := b.remote.DeleteSavedPlan(ctx, e.RemoteID); err != nil {
		log.Printf("⚠️  Saved plan removed locally, server copy not deleted: %v", err)
	}
}

func (b *Book) persistLocked() error {
	raw, err := json.Marshal(b.entries)
	if err != nil {
		return fmt.Errorf("failed to encode saved plans: %w", err)
	}
	if err := b.store.Save(PlansKey, raw); err != nil {
		return fmt.Errorf("failed to save plans: %w", err)
	}
	return nil
}
