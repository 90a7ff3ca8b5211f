package delivery

import "github.com/ancare/ancare/internal/platform/store"

// Repository is the delivery record persistence boundary. Records are
// immutable once written; only creation, lookup, listing, and deletion
// are supported.
type Repository interface {
	Create(r Record) Record
	Get(id store.ID) (Record, bool)
	Delete(id store.ID) error
	List() []Record
	Len() int
}
