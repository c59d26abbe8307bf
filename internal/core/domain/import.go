package domain

import "time"

// ImportStatus is the processing state of an uploaded file.
type ImportStatus string

const (
	ImportPending    ImportStatus = "pending"
	ImportProcessing ImportStatus = "processing"
	ImportCompleted  ImportStatus = "completed"
	ImportFailed     ImportStatus = "failed"
)

// Valid reports whether s is a known import status.
func (s ImportStatus) Valid() bool {
	switch s {
	case ImportPending, ImportProcessing, ImportCompleted, ImportFailed:
		return true
	}
	return false
}

type Import struct {
	ID           string
	TenantID     string
	UserID       string
	FileName     string
	FilePath     string
	Status       ImportStatus
	TotalRecords int
	ValidRecords int
	User         *User
	Errors       []ImportError
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ImportError records a row that failed validation while an import was processed.
type ImportError struct {
	ID        string
	ImportID  string
	RowNumber int
	Field     string
	Message   string
	CreatedAt time.Time
}
