package dto

// JobStatusPayload laporan progres dari pipeline.
type JobStatusPayload struct {
	JobID   string `json:"job_id" validate:"required,uuid4"`
	Status  string `json:"status" validate:"required,oneof=processing failed"`
	Message string `json:"message"`
}

// MaterialCompletePayload hasil akhir pipeline digitalisasi.
type MaterialCompletePayload struct {
	JobID      string `json:"job_id" validate:"required,uuid4"`
	MaterialID string `json:"material_id" validate:"required"`

	RoomURL       string `json:"room_url"`
	VideoURL      string `json:"video_url"`
	PodcastURL    string `json:"podcast_url"`
	FlashcardURL  string `json:"flashcard_url"`
	SQ3RReportURL string `json:"sq3r_report_url"`

	ClassroomURL          string `json:"classroom_url"`
	GFormURL              string `json:"gform_url"`
	SheetformResponsesURL string `json:"sheetform_responses_url"`
}

// ScheduleProcessedPayload hasil eksekusi satu baris jadwal.
type ScheduleProcessedPayload struct {
	RowIndex           int    `json:"row_index" validate:"required,min=1"`
	AnnouncementStatus string `json:"announcement_status" validate:"omitempty,oneof=PENDING SENT CREATED FAILED"`
	AssignmentStatus   string `json:"assignment_status" validate:"omitempty,oneof=PENDING SENT CREATED FAILED"`
	AssignmentURL      string `json:"assignment_url"`
	ProcessLog         string `json:"process_log"`
}
