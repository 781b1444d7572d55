package application

import (
	"time"

	userDatamodel "github.com/frahmantamala/firedept-portal/internal/core/datamodel/user"
)

type Application struct {
	ID              int64               `gorm:"primaryKey"`
	ApplicantID     int64               `gorm:"column:applicant_id;not null;index"`
	Applicant       *userDatamodel.User `gorm:"foreignKey:ApplicantID"`
	Type            string              `gorm:"column:type;size:100;not null"`
	Description     string              `gorm:"column:description;type:text;not null"`
	BusinessName    string              `gorm:"column:business_name;size:200"`
	BusinessAddress string              `gorm:"column:business_address;type:text"`
	ContactPhone    string              `gorm:"column:contact_phone;size:20"`
	ImageFilename   *string             `gorm:"column:image_filename;size:255"`
	Status          string              `gorm:"column:status;size:50;not null;default:pending"`
	CreatedAt       time.Time           `gorm:"column:created_at"`
	UpdatedAt       time.Time           `gorm:"column:updated_at"`
}

func (Application) TableName() string {
	return "applications"
}
