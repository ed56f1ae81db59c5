package dto

import (
	catalogModel "materiku_backend/internals/features/catalog/model"
	jobDTO "materiku_backend/internals/features/jobs/dto"
)

// CreateMaterialRequest: field multipart selain file sumber.
type CreateMaterialRequest struct {
	SubjectName         string `form:"subject_name" validate:"required,min=2,max=100"`
	MaterialTitle       string `form:"material_title" validate:"required,min=3,max=200"`
	MaterialDescription string `form:"material_description" validate:"max=2000"`
	DateRelease         string `form:"date_release" validate:"required,datetime=2006-01-02"`
}

// GenerateDigitalRequest: aksi yang diminta ulang ke pipeline.
type GenerateDigitalRequest struct {
	Action string `json:"action" validate:"required,oneof=digitalize create_classroom"`
}

// MaterialDetailResponse gabungan material + aset digital + classroom + jobs.
type MaterialDetailResponse struct {
	Material  catalogModel.MaterialRecord        `json:"material"`
	Digital   *catalogModel.DigitalContentRecord `json:"digital,omitempty"`
	Classroom *catalogModel.ClassroomRecord      `json:"classroom,omitempty"`
	Jobs      []jobDTO.JobResponse               `json:"jobs"`
}

// UploadResult respon setelah upload sukses.
type UploadResult struct {
	Material   catalogModel.MaterialRecord `json:"material"`
	JobID      string                      `json:"job_id"`
	FolderID   string                      `json:"drive_folder_id"`
	SourceLink string                      `json:"drive_source_file_link"`
}
