package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frahmantamala/firedept-portal/internal"
	"github.com/frahmantamala/firedept-portal/internal/application"
	applicationPostgres "github.com/frahmantamala/firedept-portal/internal/application/postgres"
	nocDatamodel "github.com/frahmantamala/firedept-portal/internal/core/datamodel/noc"
	"github.com/frahmantamala/firedept-portal/internal/noc"
	"gorm.io/gorm"
)

type NOCRepository struct {
	db *gorm.DB
}

func NewNOCRepository(db *gorm.DB) *NOCRepository {
	return &NOCRepository{db: db}
}

func (r *NOCRepository) Create(ctx context.Context, n *nocDatamodel.NOC) error {
	err := r.db.WithContext(ctx).Omit("Application").Create(n).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return noc.ErrDuplicateNumber
	}
	return err
}

func (r *NOCRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&nocDatamodel.NOC{}).Count(&count).Error
	return count, err
}

func (r *NOCRepository) ExistsForApplication(ctx context.Context, applicationID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&nocDatamodel.NOC{}).
		Where("application_id = ?", applicationID).
		Count(&count).Error
	return count > 0, err
}

type nocRow struct {
	ID              int64
	ApplicationID   int64
	NOCNumber       string `gorm:"column:noc_number"`
	IssueDate       time.Time
	ExpiryDate      *time.Time
	Status          string
	Remarks         string
	ApplicationType string
	BusinessName    string
	BusinessAddress string
}

func (r *NOCRepository) ListAll(ctx context.Context, opts application.ListOptions) ([]*noc.View, error) {
	q := r.db.WithContext(ctx).
		Table("nocs").
		Select(`nocs.id, nocs.application_id, nocs.noc_number, nocs.issue_date, nocs.expiry_date,
			nocs.status, nocs.remarks, applications.type AS application_type,
			applications.business_name, applications.business_address`).
		Joins("JOIN applications ON applications.id = nocs.application_id").
		Order("nocs.issue_date DESC").
		Order("nocs.id DESC")
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}

	var rows []nocRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]*noc.View, 0, len(rows))
	for _, row := range rows {
		v := &noc.View{
			NOC: noc.NOC{
				ID:            row.ID,
				ApplicationID: row.ApplicationID,
				NOCNumber:     row.NOCNumber,
				IssueDate:     row.IssueDate.Format(internal.DateLayout),
				Status:        noc.Status(row.Status),
				Remarks:       row.Remarks,
			},
			ApplicationType: row.ApplicationType,
			BusinessName:    row.BusinessName,
			BusinessAddress: row.BusinessAddress,
		}
		if row.ExpiryDate != nil {
			expiry := row.ExpiryDate.Format(internal.DateLayout)
			v.ExpiryDate = &expiry
		}
		views = append(views, v)
	}
	return views, nil
}

func (r *NOCRepository) Transaction(ctx context.Context, fn func(repo noc.RepositoryAPI, apps application.RepositoryAPI) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewNOCRepository(tx), applicationPostgres.NewApplicationRepository(tx))
	})
}
