// file: internals/features/catalog/model/records.go
package model

import "materiku_backend/internals/features/catalog/store"

// Record katalog bertipe. Semua field string apa-adanya dari sheet —
// sel absen sudah jadi "" di lapisan store.

type MaterialRecord struct {
	MaterialID          string `json:"material_id"`
	Slug                string `json:"slug"`
	SubjectName         string `json:"subject_name"`
	MaterialTitle       string `json:"material_title"`
	MaterialDescription string `json:"material_description"`
	TeacherEmail        string `json:"teacher_email"`
	DateRelease         string `json:"date_release"`
	DriveSourceFileLink string `json:"drive_source_file_link"`
	Status              string `json:"status"`
	CreatedAt           string `json:"created_at"`
	UpdatedAt           string `json:"updated_at"`
}

func MaterialFromRow(r store.Row) MaterialRecord {
	f := r.Fields
	status := f["status"]
	if status == "" {
		status = string(MaterialWaiting)
	}
	return MaterialRecord{
		MaterialID:          f["material_id"],
		Slug:                f["slug"],
		SubjectName:         f["subject_name"],
		MaterialTitle:       f["material_title"],
		MaterialDescription: f["material_description"],
		TeacherEmail:        f["teacher_email"],
		DateRelease:         f["date_release"],
		DriveSourceFileLink: f["drive_source_file_link"],
		Status:              status,
		CreatedAt:           f["created_at"],
		UpdatedAt:           f["updated_at"],
	}
}

func (m MaterialRecord) ToFields() map[string]string {
	return map[string]string{
		"material_id":            m.MaterialID,
		"slug":                   m.Slug,
		"subject_name":           m.SubjectName,
		"material_title":         m.MaterialTitle,
		"material_description":   m.MaterialDescription,
		"teacher_email":          m.TeacherEmail,
		"date_release":           m.DateRelease,
		"drive_source_file_link": m.DriveSourceFileLink,
		"status":                 m.Status,
		"created_at":             m.CreatedAt,
		"updated_at":             m.UpdatedAt,
	}
}

type DigitalContentRecord struct {
	MaterialID      string `json:"material_id"`
	RoomURL         string `json:"room_url"`
	VideoURL        string `json:"video_url"`
	PodcastURL      string `json:"podcast_url"`
	FlashcardURL    string `json:"flashcard_url"`
	SQ3RReportURL   string `json:"sq3r_report_url"`
	DigitalStatus   string `json:"digital_status"`
	DigitalErrorLog string `json:"digital_error_log"`
	UpdatedAt       string `json:"updated_at"`
}

func DigitalFromRow(r store.Row) DigitalContentRecord {
	f := r.Fields
	status := f["digital_status"]
	if status == "" {
		status = string(DigitalPending)
	}
	return DigitalContentRecord{
		MaterialID:      f["material_id"],
		RoomURL:         f["room_url"],
		VideoURL:        f["video_url"],
		PodcastURL:      f["podcast_url"],
		FlashcardURL:    f["flashcard_url"],
		SQ3RReportURL:   f["sq3r_report_url"],
		DigitalStatus:   status,
		DigitalErrorLog: f["digital_error_log"],
		UpdatedAt:       f["updated_at"],
	}
}

func (d DigitalContentRecord) ToFields() map[string]string {
	return map[string]string{
		"material_id":       d.MaterialID,
		"room_url":          d.RoomURL,
		"video_url":         d.VideoURL,
		"podcast_url":       d.PodcastURL,
		"flashcard_url":     d.FlashcardURL,
		"sq3r_report_url":   d.SQ3RReportURL,
		"digital_status":    d.DigitalStatus,
		"digital_error_log": d.DigitalErrorLog,
		"updated_at":        d.UpdatedAt,
	}
}

type ClassroomRecord struct {
	MaterialID            string `json:"material_id"`
	ClassroomURL          string `json:"classroom_url"`
	GFormURL              string `json:"gform_url"`
	SheetformResponsesURL string `json:"sheetform_responses_url"`
	ClassroomStatus       string `json:"classroom_status"`
	UpdatedAt             string `json:"updated_at"`
}

func ClassroomFromRow(r store.Row) ClassroomRecord {
	f := r.Fields
	status := f["classroom_status"]
	if status == "" {
		status = string(ClassroomNotCreated)
	}
	return ClassroomRecord{
		MaterialID:            f["material_id"],
		ClassroomURL:          f["classroom_url"],
		GFormURL:              f["gform_url"],
		SheetformResponsesURL: f["sheetform_responses_url"],
		ClassroomStatus:       status,
		UpdatedAt:             f["updated_at"],
	}
}

func (cl ClassroomRecord) ToFields() map[string]string {
	return map[string]string{
		"material_id":             cl.MaterialID,
		"classroom_url":           cl.ClassroomURL,
		"gform_url":               cl.GFormURL,
		"sheetform_responses_url": cl.SheetformResponsesURL,
		"classroom_status":        cl.ClassroomStatus,
		"updated_at":              cl.UpdatedAt,
	}
}

// ScheduleRecord: satu trigger otomasi terjadwal. RowIndex direkam supaya
// caller bisa mengalamatkan update in-place (kunci logisnya komposit
// tanggal+posisi baris, bukan material_id).
type ScheduleRecord struct {
	RowIndex             int    `json:"row_index"`
	DateRelease          string `json:"date_release"`
	TimeTrigger          string `json:"time_trigger"`
	MaterialID           string `json:"material_id"`
	ProctorEmail         string `json:"proctor_email"`
	ClassgroupEmail      string `json:"classgroup_email"`
	AnnouncementTemplate string `json:"announcement_template"`
	AssignmentTemplate   string `json:"assignment_template"`
	ClassroomID          string `json:"classroom_id"`
	AssignmentURL        string `json:"assignment_url"`
	AnnouncementStatus   string `json:"announcement_status"`
	AssignmentStatus     string `json:"assignment_status"`
	LastProcessLog       string `json:"last_process_log"`
	UpdatedAt            string `json:"updated_at"`
}

func ScheduleFromRow(r store.Row) ScheduleRecord {
	f := r.Fields
	ann := f["announcement_status"]
	if ann == "" {
		ann = string(SchedulePending)
	}
	asg := f["assignment_status"]
	if asg == "" {
		asg = string(SchedulePending)
	}
	return ScheduleRecord{
		RowIndex:             r.Index,
		DateRelease:          f["date_release"],
		TimeTrigger:          f["time_trigger"],
		MaterialID:           f["material_id"],
		ProctorEmail:         f["proctor_email"],
		ClassgroupEmail:      f["classgroup_email"],
		AnnouncementTemplate: f["announcement_template"],
		AssignmentTemplate:   f["assignment_template"],
		ClassroomID:          f["classroom_id"],
		AssignmentURL:        f["assignment_url"],
		AnnouncementStatus:   ann,
		AssignmentStatus:     asg,
		LastProcessLog:       f["last_process_log"],
		UpdatedAt:            f["updated_at"],
	}
}

func (s ScheduleRecord) ToFields() map[string]string {
	return map[string]string{
		"date_release":          s.DateRelease,
		"time_trigger":          s.TimeTrigger,
		"material_id":           s.MaterialID,
		"proctor_email":         s.ProctorEmail,
		"classgroup_email":      s.ClassgroupEmail,
		"announcement_template": s.AnnouncementTemplate,
		"assignment_template":   s.AssignmentTemplate,
		"classroom_id":          s.ClassroomID,
		"assignment_url":        s.AssignmentURL,
		"announcement_status":   s.AnnouncementStatus,
		"assignment_status":     s.AssignmentStatus,
		"last_process_log":      s.LastProcessLog,
		"updated_at":            s.UpdatedAt,
	}
}
