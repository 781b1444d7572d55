package noc

import (
	"errors"
	"fmt"
	"time"

	"github.com/frahmantamala/firedept-portal/internal"
	nocDatamodel "github.com/frahmantamala/firedept-portal/internal/core/datamodel/noc"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusIssued  Status = "issued"
	StatusExpired Status = "expired"
)

type NOC struct {
	ID            int64   `json:"id"`
	ApplicationID int64   `json:"application_id"`
	NOCNumber     string  `json:"noc_number"`
	IssueDate     string  `json:"issue_date"`
	ExpiryDate    *string `json:"expiry_date,omitempty"`
	Status        Status  `json:"status"`
	Remarks       string  `json:"remarks"`
}

// View is a certificate joined with the application it was issued for.
type View struct {
	NOC
	ApplicationType string `json:"application_type"`
	BusinessName    string `json:"business_name"`
	BusinessAddress string `json:"business_address"`
}

// ErrDuplicateNumber is returned by the repository when an insert violates
// a unique index on nocs.
var ErrDuplicateNumber = errors.New("noc unique constraint violated")

// FormatNumber renders a certificate number, e.g. NOC-2024-0001.
func FormatNumber(year int, seq int64) string {
	return fmt.Sprintf("NOC-%d-%04d", year, seq)
}

func FromDataModel(m *nocDatamodel.NOC) *NOC {
	n := &NOC{
		ID:            m.ID,
		ApplicationID: m.ApplicationID,
		NOCNumber:     m.NOCNumber,
		IssueDate:     m.IssueDate.Format(internal.DateLayout),
		Status:        Status(m.Status),
		Remarks:       m.Remarks,
	}
	if m.ExpiryDate != nil {
		expiry := m.ExpiryDate.Format(internal.DateLayout)
		n.ExpiryDate = &expiry
	}
	return n
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
