// Package registry maintains the durable event-to-subscriber mapping,
// split into a live section and a pending section for events that have
// not been observed in the feed yet.
package registry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/scorewatch/scorewatch/internal/adapters/store"
	"github.com/scorewatch/scorewatch/internal/domain/model"
	"github.com/scorewatch/scorewatch/pkg/metrics"
)

// sectionMap is one registry partition: event id to its subscriptions.
type sectionMap map[int][]model.Subscription

// record is the persisted shape of the whole registry.
type record struct {
	Live    sectionMap `json:"live"`
	Pending sectionMap `json:"pending"`
}

// Registry is internally synchronized: subscription commands arrive from
// request handlers concurrently with the poll loop's promotion and
// cleanup calls. Every mutation persists the full document synchronously
// and rolls the in-memory state back if the write fails, so memory and
// disk never diverge.
type Registry struct {
	mu      sync.Mutex
	doc     *store.Document
	live    sectionMap
	pending sectionMap

	onSubscribe func()
}

// New creates a registry backed by the given document store.
func New(doc *store.Document, opts ...Option) (*Registry, error) {
	r := &Registry{
		doc:     doc,
		live:    sectionMap{},
		pending: sectionMap{},
	}
	for _, opt := range opts {
		opt(r)
	}

	var rec record
	if err := doc.Load(&rec); err != nil {
		return nil, err
	}
	if rec.Live != nil {
		r.live = rec.Live
	}
	if rec.Pending != nil {
		r.pending = rec.Pending
	}
	r.updateGauges()
	return r, nil
}

// Subscribe adds a (recipient, event) pair to the given section. Adding
// an existing pair is a no-op for storage and returns added=false so the
// caller can still acknowledge the request.
func (r *Registry) Subscribe(ctx context.Context, eventID int, recipientID string, kind model.Kind, section model.Section) (bool, error) {
	if !section.Valid() {
		return false, fmt.Errorf("%w: %q", ErrBadSection, section)
	}

	r.mu.Lock()
	sec := r.section(section)
	if contains(sec[eventID], recipientID) {
		r.mu.Unlock()
		return false, nil
	}

	prev := sec[eventID]
	sec[eventID] = append(clone(prev), model.Subscription{
		EventID:     eventID,
		RecipientID: recipientID,
		Kind:        kind,
	})
	if err := r.persistLocked(); err != nil {
		// Roll back so memory matches what is actually on disk.
		if prev == nil {
			delete(sec, eventID)
		} else {
			sec[eventID] = prev
		}
		r.mu.Unlock()
		return false, err
	}
	r.updateGauges()
	r.mu.Unlock()

	metrics.RecordSubscription(string(section))
	if r.onSubscribe != nil {
		r.onSubscribe()
	}
	return true, nil
}

// Unsubscribe removes a (recipient, event) pair from the given section.
// The event key is pruned when its set becomes empty.
func (r *Registry) Unsubscribe(ctx context.Context, eventID int, recipientID string, section model.Section) (bool, error) {
	if !section.Valid() {
		return false, fmt.Errorf("%w: %q", ErrBadSection, section)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sec := r.section(section)
	prev, ok := sec[eventID]
	if !ok || !contains(prev, recipientID) {
		return false, nil
	}

	next := make([]model.Subscription, 0, len(prev)-1)
	for _, sub := range prev {
		if sub.RecipientID != recipientID {
			next = append(next, sub)
		}
	}
	if len(next) == 0 {
		delete(sec, eventID)
	} else {
		sec[eventID] = next
	}

	if err := r.persistLocked(); err != nil {
		sec[eventID] = prev
		return false, err
	}
	r.updateGauges()
	return true, nil
}

// ListRecipients returns the subscriptions for an event in one section.
func (r *Registry) ListRecipients(ctx context.Context, eventID int, section model.Section) []model.Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()
	return clone(r.section(section)[eventID])
}

// HasPending reports whether any pending subscriber waits on the event.
func (r *Registry) HasPending(ctx context.Context, eventID int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending[eventID]) > 0
}

// PendingEvents returns the event ids that have pending subscribers.
func (r *Registry) PendingEvents(ctx context.Context) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, 0, len(r.pending))
	for id := range r.pending {
		out = append(out, id)
	}
	return out
}

// LiveRecipientCount returns the number of live subscriptions across the
// given events. The scheduler uses it to pick its polling cadence.
func (r *Registry) LiveRecipientCount(ctx context.Context, eventIDs []int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, id := range eventIDs {
		n += len(r.live[id])
	}
	return n
}

// Promote moves every pending subscription for the event into the live
// section, deduplicated by recipient, and returns the entries that were
// actually new to the live section. The whole move happens under the
// registry lock, so a Subscribe racing with promotion either lands
// before the move (and is carried along) or after it (and goes straight
// to its section); either way nothing is lost.
func (r *Registry) Promote(ctx context.Context, eventID int) ([]model.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	waiting, ok := r.pending[eventID]
	if !ok {
		return nil, nil
	}

	prevLive := r.live[eventID]
	merged := clone(prevLive)
	var promoted []model.Subscription
	for _, sub := range waiting {
		if contains(merged, sub.RecipientID) {
			continue
		}
		merged = append(merged, sub)
		promoted = append(promoted, sub)
	}
	r.live[eventID] = merged
	delete(r.pending, eventID)

	if err := r.persistLocked(); err != nil {
		if prevLive == nil {
			delete(r.live, eventID)
		} else {
			r.live[eventID] = prevLive
		}
		r.pending[eventID] = waiting
		return nil, err
	}
	r.updateGauges()
	metrics.RecordPromotion(len(promoted))
	return promoted, nil
}

// DropEvent removes every subscription for the event from both sections.
// Called after the final-state notice when an event leaves the feed.
func (r *Registry) DropEvent(ctx context.Context, eventID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prevLive, hadLive := r.live[eventID]
	prevPending, hadPending := r.pending[eventID]
	if !hadLive && !hadPending {
		return nil
	}
	delete(r.live, eventID)
	delete(r.pending, eventID)

	if err := r.persistLocked(); err != nil {
		if hadLive {
			r.live[eventID] = prevLive
		}
		if hadPending {
			r.pending[eventID] = prevPending
		}
		return err
	}
	r.updateGauges()
	return nil
}

func (r *Registry) section(s model.Section) sectionMap {
	if s == model.SectionPending {
		return r.pending
	}
	return r.live
}

// persistLocked writes the full registry document. Callers hold r.mu.
func (r *Registry) persistLocked() error {
	start := time.Now()
	err := r.doc.Save(record{Live: r.live, Pending: r.pending})
	metrics.RecordRegistryWrite(float64(time.Since(start).Milliseconds()), err == nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (r *Registry) updateGauges() {
	live, pending := 0, 0
	for _, subs := range r.live {
		live += len(subs)
	}
	for _, subs := range r.pending {
		pending += len(subs)
	}
	metrics.UpdateSubscriberCounts(live, pending)
}

func contains(subs []model.Subscription, recipientID string) bool {
	for _, sub := range subs {
		if sub.RecipientID == recipientID {
			return true
		}
	}
	return false
}

func clone(subs []model.Subscription) []model.Subscription {
	if subs == nil {
		return nil
	}
	out := make([]model.Subscription, len(subs))
	copy(out, subs)
	return out
}
