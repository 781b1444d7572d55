package dashboard

import (
	"context"
)

// Summary is the admin overview of the portal's workload.
type Summary struct {
	ApplicationsByStatus map[string]int64 `json:"applications_by_status"`
	TotalApplications    int64            `json:"total_applications"`
	ScheduledInspections int64            `json:"scheduled_inspections"`
	TotalInspections     int64            `json:"total_inspections"`
	NOCsIssued           int64            `json:"nocs_issued"`
}

type StatusCount struct {
	Status string `db:"status"`
	Count  int64  `db:"count"`
}

type RepositoryAPI interface {
	ApplicationStatusCounts(ctx context.Context) ([]StatusCount, error)
	InspectionCounts(ctx context.Context) (total, scheduled int64, err error)
	CountNOCsByStatus(ctx context.Context, status string) (int64, error)
}
