// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package extract

// SubscriptionTable accumulates subscriptions per event id. Every subscription
// is kept, in insertion order.
type SubscriptionTable struct {
	order  []string
	byID   map[string][]SubscriptionRecord
	counts int
}

// NewSubscriptionTable creates an empty table.
func NewSubscriptionTable() *SubscriptionTable {
	return &SubscriptionTable{byID: make(map[string][]SubscriptionRecord)}
}

// Add appends records to their event ids.
func (t *SubscriptionTable) Add(records ...SubscriptionRecord) {
	for _, r := range records {
		if _, ok := t.byID[r.EventID]; !ok {
			t.order = append(t.order, r.EventID)
		}
		t.byID[r.EventID] = append(t.byID[r.EventID], r)
		t.counts++
	}
}

// Get returns the subscriptions for id in insertion order.
func (t *SubscriptionTable) Get(id string) []SubscriptionRecord {
	return t.byID[id]
}

// IDs returns the event ids in first-seen order.
func (t *SubscriptionTable) IDs() []string {
	return append([]string(nil), t.order...)
}

// Len returns the total number of subscriptions.
func (t *SubscriptionTable) Len() int { return t.counts }

// FireTable keeps one fire per event id. A later fire for an id replaces the
// earlier record but keeps the id's original position.
type FireTable struct {
	order []string
	byID  map[string]FireRecord
}

// NewFireTable creates an empty table.
func NewFireTable() *FireTable {
	return &FireTable{byID: make(map[string]FireRecord)}
}

// Put stores records, last write wins per event id.
func (t *FireTable) Put(records ...FireRecord) {
	for _, r := range records {
		if _, ok := t.byID[r.EventID]; !ok {
			t.order = append(t.order, r.EventID)
		}
		t.byID[r.EventID] = r
	}
}

// Get returns the fire recorded for id.
func (t *FireTable) Get(id string) (FireRecord, bool) {
	r, ok := t.byID[id]
	return r, ok
}

// All returns the fires in first-seen id order.
func (t *FireTable) All() []FireRecord {
	out := make([]FireRecord, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.byID[id])
	}
	return out
}

// Len returns the number of distinct fired ids.
func (t *FireTable) Len() int { return len(t.order) }
