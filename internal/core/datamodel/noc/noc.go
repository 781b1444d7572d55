package noc

import (
	"time"

	applicationDatamodel "github.com/frahmantamala/firedept-portal/internal/core/datamodel/application"
)

type NOC struct {
	ID            int64                             `gorm:"primaryKey"`
	ApplicationID int64                             `gorm:"column:application_id;not null;uniqueIndex"`
	Application   *applicationDatamodel.Application `gorm:"foreignKey:ApplicationID"`
	IssueDate     time.Time                         `gorm:"column:issue_date;type:date"`
	ExpiryDate    *time.Time                        `gorm:"column:expiry_date;type:date"`
	Status        string                            `gorm:"column:status;size:50;default:pending"`
	Remarks       string                            `gorm:"column:remarks;type:text"`
	NOCNumber     string                            `gorm:"column:noc_number;size:50;uniqueIndex"`
}

func (NOC) TableName() string {
	return "nocs"
}
