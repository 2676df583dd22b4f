package book

import (
	"encoding/json"
	"errors"
)

var (
	// ErrNotFound is returned when no book exists for the given id.
	ErrNotFound = errors.New("book not found")
	// ErrStoreUnavailable wraps any failure reported by the backing store.
	ErrStoreUnavailable = errors.New("book store unavailable")
)

// ValidationError reports client input that cannot be accepted.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Book represents a catalog item.
type Book struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Year   *int    `json:"year,omitempty"`
	Genre  *string `json:"genre,omitempty"`
}

// Patch holds the fields supplied on update. An absent field keeps the stored
// value. A null clears year and genre and blanks title and author, which have
// no null form.
type Patch struct {
	Title  Optional[string] `json:"title"`
	Author Optional[string] `json:"author"`
	Year   Optional[int]    `json:"year"`
	Genre  Optional[string] `json:"genre"`
}

func (p *Patch) UnmarshalJSON(data []byte) error {
	type patchAlias Patch
	aux := struct {
		*patchAlias
		Year Optional[lenientInt] `json:"year"`
	}{patchAlias: (*patchAlias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	p.Year = Optional[int]{Present: aux.Year.Present}
	if aux.Year.Value != nil {
		year := int(*aux.Year.Value)
		p.Year.Value = &year
	}
	return nil
}

// IsEmpty reports whether the patch would change nothing.
func (p Patch) IsEmpty() bool {
	return !p.Title.Present && !p.Author.Present && !p.Year.Present && !p.Genre.Present
}

// Apply merges the supplied fields into b. The id is never touched.
func (p Patch) Apply(b Book) Book {
	if p.Title.Present {
		b.Title = p.Title.ValueOr("")
	}
	if p.Author.Present {
		b.Author = p.Author.ValueOr("")
	}
	if p.Year.Present {
		b.Year = p.Year.Ptr()
	}
	if p.Genre.Present {
		b.Genre = p.Genre.Ptr()
	}
	return b
}
