package noc

import (
	"github.com/frahmantamala/firedept-portal/internal/core/common/validation"
)

// IssueNOCDTO is the admin's issuance request. ExpiryDate is optional,
// formatted YYYY-MM-DD.
type IssueNOCDTO struct {
	ApplicationID int64   `json:"application_id"`
	Remarks       string  `json:"remarks,omitempty"`
	ExpiryDate    *string `json:"expiry_date,omitempty"`
}

func (d IssueNOCDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("application_id", d.ApplicationID).Required()

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
