package dto

// MarkEntry is one student's mark within a submitted sheet. IsUpdated marks
// the entry as changed since the last submission; undirty entries are
// ignored during reconciliation.
type MarkEntry struct {
	StudentID uint    `json:"student_id" validate:"required,gt=0"`
	Marks     float64 `json:"marks" validate:"gte=0"`
	IsUpdated bool    `json:"is_updated"`
}

// MarkSheetRequest is a batch submission of one exam's marks for a subject.
type MarkSheetRequest struct {
	Exam        string      `json:"exam" validate:"required,oneof=quiz1 midsem quiz2 endsem"`
	Semester    int         `json:"semester" validate:"required,min=1,max=8"`
	SubjectName string      `json:"subject_name" validate:"required"`
	BatchCode   string      `json:"batch_code" validate:"required,min=3"`
	Entries     []MarkEntry `json:"entries" validate:"required,min=1,dive"`
}

// MarkSheetResponse reports whether the sheet was first inserted or
// reconciled against existing rows.
type MarkSheetResponse struct {
	Created bool `json:"created,omitempty"`
	Updated bool `json:"updated,omitempty"`
}
