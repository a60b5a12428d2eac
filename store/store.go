// Package store owns the durable state of the service: one JSON document
// holding the whole student collection. There is no partial read or write;
// callers load everything, change it in memory and save everything back.
package store

import "context"

// Student is one record of the collection.
type Student struct {
	ID    int64  `json:"id" example:"1"`
	Name  string `json:"name" example:"Ann"`
	Level string `json:"level" example:"A1"`
}

// Collection is the ordered set of students. Insertion order is both the
// on-disk order and the order List returns.
type Collection []Student

// Clone returns a copy that shares no backing array with c.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// Store loads and saves the whole collection.
//
// Load never fails: a missing or unreadable document is an empty collection,
// so a first run behaves like "no records yet". Save reports every I/O or
// encoding failure as an *apperror.AppError of type StorageError.
type Store interface {
	Load(ctx context.Context) Collection
	Save(ctx context.Context, students Collection) error
}
