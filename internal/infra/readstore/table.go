// Package readstore implements the query-side ports: list views, summaries
// and the catalogs this engine consumes read-only.
package readstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"tablebook/internal/domain/table"
	"tablebook/internal/infra"
	"tablebook/internal/infra/db"
	"tablebook/internal/pkg/pgconv"
)

// TableReadStore reads the table catalog owned by the catalog module.
type TableReadStore struct {
	db db.DBTX
}

func NewTableReadStore(dbtx db.DBTX) *TableReadStore {
	return &TableReadStore{db: dbtx}
}

func (r *TableReadStore) ListActive(ctx context.Context, tenantID uuid.UUID) ([]table.Table, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, table_number, capacity, zone_id, is_active
		FROM restaurant_tables
		WHERE tenant_id = $1 AND is_active
		ORDER BY table_number`,
		tenantID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list active tables", err)
	}
	defer rows.Close()

	var out []table.Table
	for rows.Next() {
		var (
			t      table.Table
			zoneID pgtype.UUID
		)
		if err := rows.Scan(&t.ID, &t.Number, &t.Capacity, &zoneID, &t.IsActive); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan table", err)
		}
		t.ZoneID = pgconv.UUIDPtrFromPgtype(zoneID)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read tables", err)
	}
	return out, nil
}
