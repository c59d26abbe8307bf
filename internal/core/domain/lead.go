package domain

import (
	"encoding/json"
	"time"
)

type Lead struct {
	ID        string
	TenantID  string
	ImportID  string
	Phone     string
	Email     string
	FirstName string
	LastName  string
	DOB       *time.Time
	FICOScore *int
	City      string
	State     string
	ExtraData json.RawMessage
	CreatedAt time.Time
}
