// file: internals/features/catalog/model/status.go
package model

// Status katalog sebagai tipe eksplisit, bukan perbandingan string lepas
// di tiap call site. Transisi divalidasi di titik mutasi.

type MaterialStatus string

const (
	MaterialWaiting    MaterialStatus = "WAITING"
	MaterialProcessing MaterialStatus = "PROCESSING"
	MaterialPublished  MaterialStatus = "PUBLISHED"
)

// PUBLISHED boleh balik ke PROCESSING saat guru minta regenerasi aset.
var materialTransitions = map[MaterialStatus][]MaterialStatus{
	MaterialWaiting:    {MaterialProcessing},
	MaterialProcessing: {MaterialPublished, MaterialWaiting},
	MaterialPublished:  {MaterialProcessing},
}

func (s MaterialStatus) Valid() bool {
	_, ok := materialTransitions[s]
	return ok
}

// CanTransition: apakah s boleh pindah ke next.
// Jalur gagal tidak mengubah status materi — error dicatat di
// digital_error_log pada record digital, sesuai konvensi katalog.
func (s MaterialStatus) CanTransition(next MaterialStatus) bool {
	for _, t := range materialTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

type DigitalStatus string

const (
	DigitalPending    DigitalStatus = "PENDING"
	DigitalProcessing DigitalStatus = "PROCESSING"
	DigitalDone       DigitalStatus = "DONE"
	DigitalFailed     DigitalStatus = "FAILED"
)

var digitalTransitions = map[DigitalStatus][]DigitalStatus{
	DigitalPending:    {DigitalProcessing, DigitalDone, DigitalFailed},
	DigitalProcessing: {DigitalDone, DigitalFailed},
	DigitalDone:       {DigitalProcessing},
	DigitalFailed:     {DigitalProcessing},
}

func (s DigitalStatus) Valid() bool {
	_, ok := digitalTransitions[s]
	return ok
}

func (s DigitalStatus) CanTransition(next DigitalStatus) bool {
	for _, t := range digitalTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

type ClassroomStatus string

const (
	ClassroomNotCreated ClassroomStatus = "NOT_CREATED"
	ClassroomCreating   ClassroomStatus = "CREATING"
	ClassroomCreated    ClassroomStatus = "CREATED"
	ClassroomFailed     ClassroomStatus = "FAILED"
)

type ScheduleLegStatus string

const (
	SchedulePending ScheduleLegStatus = "PENDING"
	ScheduleSent    ScheduleLegStatus = "SENT"
	ScheduleCreated ScheduleLegStatus = "CREATED"
	ScheduleFailed  ScheduleLegStatus = "FAILED"
)
