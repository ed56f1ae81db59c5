package dto

// AnnouncementTemplateRequest create/update template pengumuman.
type AnnouncementTemplateRequest struct {
	Code     string `json:"code" validate:"required,min=2,max=60"`
	Name     string `json:"name" validate:"required,min=3,max=120"`
	Subject  string `json:"subject" validate:"required,max=200"`
	Body     string `json:"body" validate:"required"`
	IsActive *bool  `json:"is_active"`
}

// AssignmentTemplateRequest create/update template tugas.
type AssignmentTemplateRequest struct {
	Code         string `json:"code" validate:"required,min=2,max=60"`
	Name         string `json:"name" validate:"required,min=3,max=120"`
	Title        string `json:"title" validate:"required,max=200"`
	Instructions string `json:"instructions" validate:"required"`
	MaxPoints    int    `json:"max_points" validate:"omitempty,min=1,max=1000"`
	DueDays      int    `json:"due_days" validate:"omitempty,min=1,max=90"`
	IsActive     *bool  `json:"is_active"`
}
