// Package movement provides the stock-movement engine: symbolic resource
// resolution and atomic regulate/move operations over the quantity ledger.
package movement

import (
	"encoding/json"
	"fmt"
	"math"

	"nordlager/internal/core/apperror"
)

// RefKind discriminates the three forms a placement/batch reference can take.
type RefKind int

const (
	// RefUseDefault resolves to the location's "-" resource, creating it
	// on first use.
	RefUseDefault RefKind = iota
	// RefCreateNamed creates a brand-new resource with the given name.
	// An existing resource with that name fails the whole movement.
	RefCreateNamed
	// RefExistingID uses a concrete id as-is; foreign keys catch bad ids.
	RefExistingID
)

// Ref is a tagged placement/batch reference. On the wire it is null or ""
// (default), a non-empty string (create named), or a number (existing id).
type Ref struct {
	kind RefKind
	name string
	id   int64
}

// DefaultRef references the location's default resource.
func DefaultRef() Ref {
	return Ref{kind: RefUseDefault}
}

// NamedRef requests creation of a new resource with the given name.
func NamedRef(name string) Ref {
	return Ref{kind: RefCreateNamed, name: name}
}

// IDRef references an existing resource by id.
func IDRef(id int64) Ref {
	return Ref{kind: RefExistingID, id: id}
}

// Kind returns the reference's discriminator.
func (r Ref) Kind() RefKind { return r.kind }

// Name returns the requested name; meaningful only for RefCreateNamed.
func (r Ref) Name() string { return r.name }

// ID returns the concrete id; meaningful only for RefExistingID.
func (r Ref) ID() int64 { return r.id }

func (r Ref) String() string {
	switch r.kind {
	case RefCreateNamed:
		return fmt.Sprintf("create(%q)", r.name)
	case RefExistingID:
		return fmt.Sprintf("id(%d)", r.id)
	default:
		return "default"
	}
}

// UnmarshalJSON decodes the wire forms. An absent field decodes to the zero
// Ref, which is RefUseDefault.
func (r *Ref) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*r = DefaultRef()
	case string:
		if v == "" {
			*r = DefaultRef()
		} else {
			*r = NamedRef(v)
		}
	case float64:
		if v != math.Trunc(v) {
			return apperror.NewValidation(fmt.Sprintf("resource id must be an integer, got %v", v))
		}
		*r = IDRef(int64(v))
	default:
		return apperror.NewValidation(fmt.Sprintf("resource reference must be null, a string, or a number, got %T", raw))
	}
	return nil
}

// MarshalJSON encodes the wire forms symmetrically with UnmarshalJSON.
func (r Ref) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case RefCreateNamed:
		return json.Marshal(r.name)
	case RefExistingID:
		return json.Marshal(r.id)
	default:
		return []byte("null"), nil
	}
}
