package postgres

import (
	"context"
	"time"

	"github.com/frahmantamala/firedept-portal/internal"
	"github.com/frahmantamala/firedept-portal/internal/application"
	applicationPostgres "github.com/frahmantamala/firedept-portal/internal/application/postgres"
	inspectionDatamodel "github.com/frahmantamala/firedept-portal/internal/core/datamodel/inspection"
	"github.com/frahmantamala/firedept-portal/internal/inspection"
	"gorm.io/gorm"
)

type InspectionRepository struct {
	db *gorm.DB
}

func NewInspectionRepository(db *gorm.DB) *InspectionRepository {
	return &InspectionRepository{db: db}
}

func (r *InspectionRepository) Create(ctx context.Context, i *inspectionDatamodel.Inspection) error {
	return r.db.WithContext(ctx).Omit("Application").Create(i).Error
}

type inspectionRow struct {
	ID                int64
	ApplicationID     int64
	Date              time.Time
	Time              string
	InspectorName     string
	Status            string
	Remarks           string
	CreatedAt         time.Time
	ApplicationType   string
	BusinessName      string
	ApplicationStatus string
}

func (r *InspectionRepository) ListAll(ctx context.Context, opts application.ListOptions) ([]*inspection.View, error) {
	q := r.db.WithContext(ctx).
		Table("inspections").
		Select(`inspections.id, inspections.application_id, inspections.date, inspections."time",
			inspections.inspector_name, inspections.status, inspections.remarks, inspections.created_at,
			applications.type AS application_type, applications.business_name,
			applications.status AS application_status`).
		Joins("JOIN applications ON applications.id = inspections.application_id").
		Order("inspections.created_at DESC").
		Order("inspections.id DESC")
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}

	var rows []inspectionRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]*inspection.View, 0, len(rows))
	for _, row := range rows {
		views = append(views, &inspection.View{
			Inspection: inspection.Inspection{
				ID:            row.ID,
				ApplicationID: row.ApplicationID,
				Date:          row.Date.Format(internal.DateLayout),
				Time:          row.Time,
				InspectorName: row.InspectorName,
				Status:        inspection.Status(row.Status),
				Remarks:       row.Remarks,
				CreatedAt:     row.CreatedAt,
			},
			ApplicationType:   row.ApplicationType,
			BusinessName:      row.BusinessName,
			ApplicationStatus: row.ApplicationStatus,
		})
	}
	return views, nil
}

func (r *InspectionRepository) Transaction(ctx context.Context, fn func(repo inspection.RepositoryAPI, apps application.RepositoryAPI) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewInspectionRepository(tx), applicationPostgres.NewApplicationRepository(tx))
	})
}
