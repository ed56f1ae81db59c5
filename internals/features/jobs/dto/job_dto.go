package dto

import (
	"time"

	"gorm.io/datatypes"

	"materiku_backend/internals/features/jobs/model"
)

type JobResponse struct {
	ID           string         `json:"id"`
	MaterialID   string         `json:"material_id"`
	Action       string         `json:"action"`
	Status       string         `json:"status"`
	Attempts     int            `json:"attempts"`
	ErrorMessage string         `json:"error_message,omitempty"`
	Result       datatypes.JSON `json:"result,omitempty"`
	StartedAt    *time.Time     `json:"started_at,omitempty"`
	FinishedAt   *time.Time     `json:"finished_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

func FromJobModel(j *model.JobModel) JobResponse {
	return JobResponse{
		ID:           j.ID.String(),
		MaterialID:   j.MaterialID,
		Action:       j.Action,
		Status:       j.Status,
		Attempts:     j.Attempts,
		ErrorMessage: j.ErrorMessage,
		Result:       j.Result,
		StartedAt:    j.StartedAt,
		FinishedAt:   j.FinishedAt,
		CreatedAt:    j.CreatedAt,
	}
}

func FromJobModels(jobs []model.JobModel) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, FromJobModel(&jobs[i]))
	}
	return out
}
