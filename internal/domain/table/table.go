// Package table holds the read-only view of the table catalog. The catalog
// itself is owned by another module; this engine only consumes it.
package table

import "github.com/google/uuid"

type Table struct {
	ID       uuid.UUID
	Number   int
	Capacity int
	ZoneID   *uuid.UUID
	IsActive bool
}

// Fits reports whether the table can seat the party at all.
func (t Table) Fits(partySize int) bool {
	return t.IsActive && t.Capacity >= partySize
}
