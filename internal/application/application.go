package application

import (
	"errors"
	"strings"
	"time"

	"github.com/frahmantamala/firedept-portal/internal"
	applicationDatamodel "github.com/frahmantamala/firedept-portal/internal/core/datamodel/application"
)

// Status is the closed set of application states.
type Status string

const (
	StatusPending             Status = "pending"
	StatusInspectionScheduled Status = "inspection_scheduled"
	StatusApproved            Status = "approved"
	StatusRejected            Status = "rejected"
)

var Statuses = []Status{StatusPending, StatusInspectionScheduled, StatusApproved, StatusRejected}

func ParseStatus(raw string) (Status, error) {
	switch s := Status(strings.TrimSpace(raw)); s {
	case StatusPending, StatusInspectionScheduled, StatusApproved, StatusRejected:
		return s, nil
	default:
		return "", internal.ErrInvalidStatus
	}
}

// Well-known application types. Type is an open string, these are the ones
// the admin screens filter on.
const (
	TypeInspection     = "inspection"
	TypeNOC            = "noc"
	TypeLicenseRenewal = "license_renewal"
)

type Application struct {
	ID              int64     `json:"id"`
	ApplicantID     int64     `json:"applicant_id"`
	Type            string    `json:"type"`
	Description     string    `json:"description"`
	BusinessName    string    `json:"business_name"`
	BusinessAddress string    `json:"business_address"`
	ContactPhone    string    `json:"contact_phone"`
	ImageFilename   *string   `json:"image_filename,omitempty"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// InspectionSummary is an inspection as shown on its application's page.
type InspectionSummary struct {
	ID            int64     `json:"id"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	InspectorName string    `json:"inspector_name"`
	Status        string    `json:"status"`
	Remarks       string    `json:"remarks"`
	CreatedAt     time.Time `json:"created_at"`
}

// NOCSummary is the certificate issued for an application, if any.
type NOCSummary struct {
	ID         int64   `json:"id"`
	NOCNumber  string  `json:"noc_number"`
	IssueDate  string  `json:"issue_date"`
	ExpiryDate *string `json:"expiry_date,omitempty"`
	Status     string  `json:"status"`
	Remarks    string  `json:"remarks"`
}

// Detail is an application together with its inspections and NOC.
type Detail struct {
	Application
	Inspections []InspectionSummary `json:"inspections"`
	NOC         *NOCSummary         `json:"noc"`
}

// ListOptions bounds list queries. A zero Limit returns every row.
type ListOptions struct {
	Limit  int
	Offset int
}

var ErrNotFound = errors.New("application not found")

func ToDataModel(a *Application) *applicationDatamodel.Application {
	return &applicationDatamodel.Application{
		ID:              a.ID,
		ApplicantID:     a.ApplicantID,
		Type:            a.Type,
		Description:     a.Description,
		BusinessName:    a.BusinessName,
		BusinessAddress: a.BusinessAddress,
		ContactPhone:    a.ContactPhone,
		ImageFilename:   a.ImageFilename,
		Status:          string(a.Status),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func FromDataModel(a *applicationDatamodel.Application) *Application {
	return &Application{
		ID:              a.ID,
		ApplicantID:     a.ApplicantID,
		Type:            a.Type,
		Description:     a.Description,
		BusinessName:    a.BusinessName,
		BusinessAddress: a.BusinessAddress,
		ContactPhone:    a.ContactPhone,
		ImageFilename:   a.ImageFilename,
		Status:          Status(a.Status),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func FromDataModels(models []*applicationDatamodel.Application) []*Application {
	out := make([]*Application, 0, len(models))
	for _, m := range models {
		out = append(out, FromDataModel(m))
	}
	return out
}
