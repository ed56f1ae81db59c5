package dto

// CreateScheduleRequest jadwal rilis baru untuk satu materi.
type CreateScheduleRequest struct {
	MaterialID           string `json:"material_id" validate:"required"`
	DateRelease          string `json:"date_release" validate:"required,datetime=2006-01-02"`
	TimeTrigger          string `json:"time_trigger" validate:"required,datetime=15:04"`
	ProctorEmail         string `json:"proctor_email" validate:"omitempty,email"`
	ClassgroupEmail      string `json:"classgroup_email" validate:"required,email"`
	AnnouncementTemplate string `json:"announcement_template"`
	AssignmentTemplate   string `json:"assignment_template"`
	ClassroomID          string `json:"classroom_id"`
}
