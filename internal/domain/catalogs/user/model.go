// Package user provides the user read model used for history snapshots.
package user

import (
	"context"
)

// User is the slice of the account table the ledger snapshots from.
type User struct {
	ID         int64  `db:"id" json:"id"`
	CustomerID int64  `db:"customer_id" json:"customerId"`
	Name       string `db:"name" json:"name"`
	Role       string `db:"role" json:"role"`
}

// Repository defines read operations on users.
type Repository interface {
	// GetByID returns a user or apperror.CodeNotFound.
	GetByID(ctx context.Context, userID int64) (*User, error)
}
