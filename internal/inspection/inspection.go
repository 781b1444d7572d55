package inspection

import (
	"time"

	"github.com/frahmantamala/firedept-portal/internal"
	inspectionDatamodel "github.com/frahmantamala/firedept-portal/internal/core/datamodel/inspection"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

type Inspection struct {
	ID            int64     `json:"id"`
	ApplicationID int64     `json:"application_id"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	InspectorName string    `json:"inspector_name"`
	Status        Status    `json:"status"`
	Remarks       string    `json:"remarks"`
	CreatedAt     time.Time `json:"created_at"`
}

// View is an inspection joined with the application it belongs to.
type View struct {
	Inspection
	ApplicationType   string `json:"application_type"`
	BusinessName      string `json:"business_name"`
	ApplicationStatus string `json:"application_status"`
}

func FromDataModel(m *inspectionDatamodel.Inspection) *Inspection {
	return &Inspection{
		ID:            m.ID,
		ApplicationID: m.ApplicationID,
		Date:          m.Date.Format(internal.DateLayout),
		Time:          m.Time,
		InspectorName: m.InspectorName,
		Status:        Status(m.Status),
		Remarks:       m.Remarks,
		CreatedAt:     m.CreatedAt,
	}
}
