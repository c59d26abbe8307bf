package handler

import (
	"encoding/json"
	"time"
)

// errorResponse documents the error envelope rendered by the API error handler.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userSummaryResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	TenantID string `json:"tenantId"`
	Role     string `json:"role"`
}

type authResponse struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expiresAt"`
	User      userSummaryResponse `json:"user"`
}

type profileResponse struct {
	userSummaryResponse
	Tenant string `json:"tenant"`
}

// --- Users ---

type roleResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type userResponse struct {
	ID        string        `json:"id"`
	Email     string        `json:"email"`
	Name      string        `json:"name"`
	Role      *roleResponse `json:"role"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// --- Imports ---

type createImportRequest struct {
	FileName string `json:"fileName" validate:"required"`
	FilePath string `json:"filePath" validate:"required"`
}

// updateImportRequest is a partial update; absent fields are left untouched.
type updateImportRequest struct {
	FileName     *string `json:"fileName"`
	FilePath     *string `json:"filePath"`
	Status       *string `json:"status"       validate:"omitnil,oneof=pending processing completed failed"`
	TotalRecords *int    `json:"totalRecords" validate:"omitnil,gte=0"`
	ValidRecords *int    `json:"validRecords" validate:"omitnil,gte=0"`
}

// importUserResponse is the public view of the user who created an import.
type importUserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type importErrorResponse struct {
	ID        string    `json:"id"`
	RowNumber int       `json:"rowNumber"`
	Field     string    `json:"field,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type importResponse struct {
	ID           string                `json:"id"`
	TenantID     string                `json:"tenantId"`
	UserID       string                `json:"userId"`
	FileName     string                `json:"fileName"`
	FilePath     string                `json:"filePath"`
	Status       string                `json:"status"`
	TotalRecords int                   `json:"totalRecords"`
	ValidRecords int                   `json:"validRecords"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
	User         *importUserResponse   `json:"user,omitempty"`
	Errors       []importErrorResponse `json:"errors,omitempty"`
}

// --- Leads ---

type listLeadsQuery struct {
	ImportID string `query:"importId"`
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
}

type createLeadRequest struct {
	ImportID  string          `json:"importId"  validate:"required"`
	Phone     string          `json:"phone"`
	Email     string          `json:"email"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	DOB       string          `json:"dob"`
	FICOScore *int            `json:"ficoScore"`
	City      string          `json:"city"`
	State     string          `json:"state"`
	ExtraData json.RawMessage `json:"extraData" swaggertype:"object"`
}

type leadResponse struct {
	ID        string          `json:"id"`
	TenantID  string          `json:"tenantId"`
	ImportID  string          `json:"importId"`
	Phone     string          `json:"phone,omitempty"`
	Email     string          `json:"email,omitempty"`
	FirstName string          `json:"firstName,omitempty"`
	LastName  string          `json:"lastName,omitempty"`
	DOB       *string         `json:"dob"`
	FICOScore *int            `json:"ficoScore"`
	City      string          `json:"city,omitempty"`
	State     string          `json:"state,omitempty"`
	ExtraData json.RawMessage `json:"extraData,omitempty" swaggertype:"object"`
	CreatedAt time.Time       `json:"createdAt"`
}

type paginationResponse struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

type listLeadsResponse struct {
	Leads      []leadResponse     `json:"leads"`
	Pagination paginationResponse `json:"pagination"`
}
