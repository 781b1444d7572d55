package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frahmantamala/firedept-portal/internal"
	"github.com/frahmantamala/firedept-portal/internal/application"
	applicationDatamodel "github.com/frahmantamala/firedept-portal/internal/core/datamodel/application"
	inspectionDatamodel "github.com/frahmantamala/firedept-portal/internal/core/datamodel/inspection"
	nocDatamodel "github.com/frahmantamala/firedept-portal/internal/core/datamodel/noc"
	"gorm.io/gorm"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *applicationDatamodel.Application) error {
	return r.db.WithContext(ctx).Omit("Applicant").Create(a).Error
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*applicationDatamodel.Application, error) {
	var a applicationDatamodel.Application
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, application.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID int64, opts application.ListOptions) ([]*applicationDatamodel.Application, error) {
	var apps []*applicationDatamodel.Application
	err := r.newestFirst(ctx, opts).
		Where("applicant_id = ?", applicantID).
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) ListAll(ctx context.Context, opts application.ListOptions) ([]*applicationDatamodel.Application, error) {
	var apps []*applicationDatamodel.Application
	err := r.newestFirst(ctx, opts).Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) ListByTypes(ctx context.Context, types []string, opts application.ListOptions) ([]*applicationDatamodel.Application, error) {
	var apps []*applicationDatamodel.Application
	err := r.newestFirst(ctx, opts).
		Where("type IN ?", types).
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status application.Status, updatedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&applicationDatamodel.Application{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return application.ErrNotFound
	}
	return nil
}

// FindInspectionsByApplication lists an application's inspections in the
// order they were scheduled.
func (r *ApplicationRepository) FindInspectionsByApplication(ctx context.Context, applicationID int64) ([]application.InspectionSummary, error) {
	var rows []inspectionDatamodel.Inspection
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]application.InspectionSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, application.InspectionSummary{
			ID:            row.ID,
			Date:          row.Date.Format(internal.DateLayout),
			Time:          row.Time,
			InspectorName: row.InspectorName,
			Status:        row.Status,
			Remarks:       row.Remarks,
			CreatedAt:     row.CreatedAt,
		})
	}
	return out, nil
}

// FindNOCByApplication returns nil when no certificate has been issued.
func (r *ApplicationRepository) FindNOCByApplication(ctx context.Context, applicationID int64) (*application.NOCSummary, error) {
	var row nocDatamodel.NOC
	err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	summary := &application.NOCSummary{
		ID:        row.ID,
		NOCNumber: row.NOCNumber,
		IssueDate: row.IssueDate.Format(internal.DateLayout),
		Status:    row.Status,
		Remarks:   row.Remarks,
	}
	if row.ExpiryDate != nil {
		expiry := row.ExpiryDate.Format(internal.DateLayout)
		summary.ExpiryDate = &expiry
	}
	return summary, nil
}

func (r *ApplicationRepository) newestFirst(ctx context.Context, opts application.ListOptions) *gorm.DB {
	q := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC")
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	return q
}
