package postgres

import (
	"context"

	"github.com/frahmantamala/firedept-portal/internal/dashboard"
	"github.com/jmoiron/sqlx"
)

// DashboardRepository reads aggregate counts with plain SQL through sqlx.
type DashboardRepository struct {
	db *sqlx.DB
}

func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) ApplicationStatusCounts(ctx context.Context) ([]dashboard.StatusCount, error) {
	var counts []dashboard.StatusCount
	err := r.db.SelectContext(ctx, &counts,
		`SELECT status, COUNT(*) AS count FROM applications GROUP BY status ORDER BY status`)
	return counts, err
}

func (r *DashboardRepository) InspectionCounts(ctx context.Context) (int64, int64, error) {
	var row struct {
		Total     int64 `db:"total"`
		Scheduled int64 `db:"scheduled"`
	}
	query := r.db.Rebind(`SELECT COUNT(*) AS total,
		COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS scheduled
		FROM inspections`)
	if err := r.db.GetContext(ctx, &row, query, "scheduled"); err != nil {
		return 0, 0, err
	}
	return row.Total, row.Scheduled, nil
}

func (r *DashboardRepository) CountNOCsByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM nocs WHERE status = ?`), status)
	return n, err
}
