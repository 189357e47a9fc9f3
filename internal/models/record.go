package models

import "time"

// Record is implemented by pointers to every collection entity.
type Record interface {
	Base() *Meta
	GetSlug() string
	// Stamp sets the update time, and the creation time when created is true.
	Stamp(now time.Time, created bool)
}

// Meta carries the identity and timestamps shared by collection records.
type Meta struct {
	ID        ID        `json:"id"`
	CreatedAt Timestamp `json:"createdAt,omitzero"`
	UpdatedAt Timestamp `json:"updatedAt,omitzero"`
}

func (m *Meta) Base() *Meta { return m }

func (m *Meta) Stamp(now time.Time, created bool) {
	ts := At(now)
	if created {
		m.CreatedAt = ts
	}
	m.UpdatedAt = ts
}
