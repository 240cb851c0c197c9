// Package entity provides core domain entities shared across the ledger.
package entity

// MovementKind labels the direction or nature of a quantity change.
// The signed amount on the history row is the ledger truth; the kind is a label.
type MovementKind string

const (
	// MovementTilgang is incoming stock (receive).
	MovementTilgang MovementKind = "tilgang"
	// MovementAfgang is outgoing stock (issue).
	MovementAfgang MovementKind = "afgang"
	// MovementRegulering is a direct correction.
	MovementRegulering MovementKind = "regulering"
	// MovementFlyt is one leg of a transfer between ledger keys.
	MovementFlyt MovementKind = "flyt"
	// MovementSlet marks stock removed by deletion of its owner.
	MovementSlet MovementKind = "slet"
)

// Valid reports whether the kind is one of the known movement kinds.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementTilgang, MovementAfgang, MovementRegulering, MovementFlyt, MovementSlet:
		return true
	}
	return false
}

// Regulating reports whether the kind is allowed on a regulate operation.
func (k MovementKind) Regulating() bool {
	switch k {
	case MovementTilgang, MovementAfgang, MovementRegulering:
		return true
	}
	return false
}

// Platform identifies the origin of a movement request.
type Platform string

const (
	PlatformWeb Platform = "web"
	PlatformApp Platform = "app"
	PlatformExt Platform = "ext"
)

// Valid reports whether the platform is one of the known origins.
func (p Platform) Valid() bool {
	switch p {
	case PlatformWeb, PlatformApp, PlatformExt:
		return true
	}
	return false
}
