package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Status job pipeline digitalisasi
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusDone       = "done"
	JobStatusFailed     = "failed"
)

// Jenis aksi yang dikirim ke pipeline
const (
	JobActionDigitalize     = "digitalize"
	JobActionCreateClass    = "create_classroom"
	JobActionScheduleNotify = "schedule_notify"
)

// allowedTransitions: pending -> processing -> done|failed,
// failed -> pending (retry).
var allowedTransitions = map[string][]string{
	JobStatusPending:    {JobStatusProcessing, JobStatusFailed},
	JobStatusProcessing: {JobStatusDone, JobStatusFailed},
	JobStatusFailed:     {JobStatusPending},
	JobStatusDone:       {},
}

// JobModel merepresentasikan tabel jobs: satu baris per pemanggilan pipeline.
type JobModel struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MaterialID   string         `gorm:"size:20;not null;index" json:"material_id"`
	Action       string         `gorm:"size:40;not null" json:"action"`
	Status       string         `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Attempts     int            `gorm:"not null;default:0" json:"attempts"`
	ErrorMessage string         `gorm:"type:text" json:"error_message,omitempty"`
	Payload      datatypes.JSON `gorm:"type:jsonb" json:"payload,omitempty"`
	Result       datatypes.JSON `gorm:"type:jsonb" json:"result,omitempty"`
	CreatedBy    uuid.UUID      `gorm:"type:uuid;not null;index" json:"created_by"`
	StartedAt    *time.Time     `json:"started_at,omitempty"`
	FinishedAt   *time.Time     `json:"finished_at,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (JobModel) TableName() string {
	return "jobs"
}

func (j *JobModel) canTransition(next string) error {
	for _, allowed := range allowedTransitions[j.Status] {
		if allowed == next {
			return nil
		}
	}
	return fmt.Errorf("transisi status job %s -> %s tidak diizinkan", j.Status, next)
}

// MarkProcessing dipanggil saat webhook melaporkan pipeline mulai jalan.
func (j *JobModel) MarkProcessing(now time.Time) error {
	if err := j.canTransition(JobStatusProcessing); err != nil {
		return err
	}
	j.Status = JobStatusProcessing
	j.Attempts++
	j.StartedAt = &now
	return nil
}

// MarkDone menutup job sukses beserta hasil dari pipeline.
func (j *JobModel) MarkDone(now time.Time, result datatypes.JSON) error {
	if err := j.canTransition(JobStatusDone); err != nil {
		return err
	}
	j.Status = JobStatusDone
	j.Result = result
	j.ErrorMessage = ""
	j.FinishedAt = &now
	return nil
}

// MarkFailed mencatat kegagalan; job masih bisa di-retry.
func (j *JobModel) MarkFailed(now time.Time, message string) error {
	if err := j.canTransition(JobStatusFailed); err != nil {
		return err
	}
	j.Status = JobStatusFailed
	j.ErrorMessage = message
	j.FinishedAt = &now
	return nil
}

// Retry mengembalikan job failed ke pending agar dikirim ulang.
func (j *JobModel) Retry() error {
	if err := j.canTransition(JobStatusPending); err != nil {
		return err
	}
	j.Status = JobStatusPending
	j.ErrorMessage = ""
	j.StartedAt = nil
	j.FinishedAt = nil
	return nil
}
