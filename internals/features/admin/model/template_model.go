package model

import (
	"time"

	"github.com/google/uuid"
)

// AnnouncementTemplate template pengumuman rilis materi yang dikirim
// pipeline ke grup kelas. Placeholder: {{material_title}}, {{subject_name}},
// {{date_release}}, {{teacher_name}}.
type AnnouncementTemplate struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code      string     `gorm:"size:60;not null;uniqueIndex" json:"code"`
	Name      string     `gorm:"size:120;not null" json:"name"`
	Subject   string     `gorm:"size:200;not null" json:"subject"`
	Body      string     `gorm:"type:text;not null" json:"body"`
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AnnouncementTemplate) TableName() string {
	return "announcement_templates"
}

// AssignmentTemplate template tugas Google Classroom.
type AssignmentTemplate struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code         string     `gorm:"size:60;not null;uniqueIndex" json:"code"`
	Name         string     `gorm:"size:120;not null" json:"name"`
	Title        string     `gorm:"size:200;not null" json:"title"`
	Instructions string     `gorm:"type:text;not null" json:"instructions"`
	MaxPoints    int        `gorm:"not null;default:100" json:"max_points"`
	DueDays      int        `gorm:"not null;default:7" json:"due_days"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedBy    *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AssignmentTemplate) TableName() string {
	return "assignment_templates"
}
