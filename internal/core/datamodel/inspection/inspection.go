package inspection

import (
	"time"

	applicationDatamodel "github.com/frahmantamala/firedept-portal/internal/core/datamodel/application"
)

type Inspection struct {
	ID            int64                             `gorm:"primaryKey"`
	ApplicationID int64                             `gorm:"column:application_id;not null;index"`
	Application   *applicationDatamodel.Application `gorm:"foreignKey:ApplicationID"`
	Date          time.Time                         `gorm:"column:date;type:date"`
	Time          string                            `gorm:"column:time;size:10"`
	InspectorName string                            `gorm:"column:inspector_name;size:100"`
	Status        string                            `gorm:"column:status;size:50;default:scheduled"`
	Remarks       string                            `gorm:"column:remarks;type:text"`
	CreatedAt     time.Time                         `gorm:"column:created_at"`
}

func (Inspection) TableName() string {
	return "inspections"
}
