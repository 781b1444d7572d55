package application

import (
	"github.com/frahmantamala/firedept-portal/internal/core/common/validation"
)

// SubmitApplicationDTO is the form an applicant posts to open an application.
type SubmitApplicationDTO struct {
	Type            string  `json:"type"`
	Description     string  `json:"description"`
	BusinessName    string  `json:"business_name"`
	BusinessAddress string  `json:"business_address"`
	ContactPhone    string  `json:"contact_phone"`
	ImageFilename   *string `json:"image_filename,omitempty"`
}

type UpdateStatusDTO struct {
	Status string `json:"status"`
}

func (d SubmitApplicationDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("type", d.Type).Required().MaxLength(100)
	v.Field("description", d.Description).Required()
	v.Field("business_name", d.BusinessName).MaxLength(200)
	v.Field("contact_phone", d.ContactPhone).MaxLength(20)
	v.Field("image_filename", d.ImageFilename).MaxLength(255)

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d UpdateStatusDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("status", d.Status).Required()

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
