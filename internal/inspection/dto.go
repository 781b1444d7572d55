package inspection

import (
	"github.com/frahmantamala/firedept-portal/internal/core/common/validation"
)

// ScheduleInspectionDTO carries an admin's scheduling request. Date is
// YYYY-MM-DD; Time is free text such as "10:30".
type ScheduleInspectionDTO struct {
	ApplicationID int64  `json:"application_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	InspectorName string `json:"inspector_name"`
	Remarks       string `json:"remarks,omitempty"`
}

func (d ScheduleInspectionDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("application_id", d.ApplicationID).Required()
	v.Field("date", d.Date).Required()
	v.Field("time", d.Time).Required().MaxLength(10)
	v.Field("inspector_name", d.InspectorName).Required().MaxLength(100)

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
