package gormdb

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/leadvault/crm-api/internal/core/domain"
)

type tenantModel struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	Name      string `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
}

func (tenantModel) TableName() string { return "tenants" }

type roleModel struct {
	ID          string `gorm:"type:varchar(36);primaryKey"`
	Name        string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Description string `gorm:"type:varchar(255)"`
}

func (roleModel) TableName() string { return "roles" }

type permissionModel struct {
	ID          string `gorm:"type:varchar(36);primaryKey"`
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string `gorm:"type:varchar(255)"`
}

func (permissionModel) TableName() string { return "permissions" }

type rolePermissionModel struct {
	RoleID       string `gorm:"type:varchar(36);primaryKey"`
	PermissionID string `gorm:"type:varchar(36);primaryKey"`
}

func (rolePermissionModel) TableName() string { return "role_has_permissions" }

type userModel struct {
	ID           string       `gorm:"type:varchar(36);primaryKey"`
	Email        string       `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string       `gorm:"type:varchar(255);not null"`
	Name         string       `gorm:"type:varchar(255)"`
	TenantID     string       `gorm:"type:varchar(36);index;not null"`
	RoleID       string       `gorm:"type:varchar(36);index;not null"`
	Role         *roleModel   `gorm:"foreignKey:RoleID"`
	Tenant       *tenantModel `gorm:"foreignKey:TenantID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

type sessionModel struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	UserID    string `gorm:"type:varchar(36);index;not null"`
	TenantID  string `gorm:"type:varchar(36);index"`
	IPAddress string `gorm:"type:varchar(64)"`
	UserAgent string `gorm:"type:text"`
	CreatedAt time.Time
}

func (sessionModel) TableName() string { return "sessions" }

type importModel struct {
	ID           string             `gorm:"type:varchar(36);primaryKey"`
	TenantID     string             `gorm:"type:varchar(36);index;not null"`
	UserID       string             `gorm:"type:varchar(36);index;not null"`
	FileName     string             `gorm:"type:varchar(255);not null"`
	FilePath     string             `gorm:"type:varchar(1024);not null"`
	Status       string             `gorm:"type:varchar(20);not null"`
	TotalRecords int                `gorm:"not null"`
	ValidRecords int                `gorm:"not null"`
	User         *userModel         `gorm:"foreignKey:UserID"`
	Errors       []importErrorModel `gorm:"foreignKey:ImportID"`
	CreatedAt    time.Time          `gorm:"index"`
	UpdatedAt    time.Time
}

func (importModel) TableName() string { return "imports" }

type importErrorModel struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	ImportID  string `gorm:"type:varchar(36);index;not null"`
	RowNumber int    `gorm:"column:line_no"`
	Field     string `gorm:"type:varchar(100)"`
	Message   string `gorm:"type:text"`
	CreatedAt time.Time
}

func (importErrorModel) TableName() string { return "import_errors" }

type leadModel struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	TenantID  string `gorm:"type:varchar(36);index;not null"`
	ImportID  string `gorm:"type:varchar(36);index;not null"`
	Phone     string `gorm:"type:varchar(50)"`
	Email     string `gorm:"type:varchar(255)"`
	FirstName string `gorm:"type:varchar(100)"`
	LastName  string `gorm:"type:varchar(100)"`
	DOB       *datatypes.Date
	FICOScore *int
	City      string `gorm:"type:varchar(100)"`
	State     string `gorm:"type:varchar(50)"`
	ExtraData datatypes.JSON
	CreatedAt time.Time `gorm:"index"`
}

func (leadModel) TableName() string { return "leads" }

// --- model <-> domain ---

func toRole(m *roleModel) *domain.Role {
	if m == nil {
		return nil
	}
	return &domain.Role{ID: m.ID, Name: m.Name, Description: m.Description}
}

func toUser(m *userModel) *domain.User {
	if m == nil {
		return nil
	}
	u := &domain.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		TenantID:     m.TenantID,
		RoleID:       m.RoleID,
		Role:         toRole(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Tenant != nil {
		u.Tenant = &domain.Tenant{ID: m.Tenant.ID, Name: m.Tenant.Name, CreatedAt: m.Tenant.CreatedAt}
	}
	return u
}

func toImport(m *importModel) *domain.Import {
	imp := &domain.Import{
		ID:           m.ID,
		TenantID:     m.TenantID,
		UserID:       m.UserID,
		FileName:     m.FileName,
		FilePath:     m.FilePath,
		Status:       domain.ImportStatus(m.Status),
		TotalRecords: m.TotalRecords,
		ValidRecords: m.ValidRecords,
		User:         toUser(m.User),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	for _, e := range m.Errors {
		imp.Errors = append(imp.Errors, domain.ImportError{
			ID:        e.ID,
			ImportID:  e.ImportID,
			RowNumber: e.RowNumber,
			Field:     e.Field,
			Message:   e.Message,
			CreatedAt: e.CreatedAt,
		})
	}
	return imp
}

func fromLead(l *domain.Lead) leadModel {
	m := leadModel{
		ID:        l.ID,
		TenantID:  l.TenantID,
		ImportID:  l.ImportID,
		Phone:     l.Phone,
		Email:     l.Email,
		FirstName: l.FirstName,
		LastName:  l.LastName,
		FICOScore: l.FICOScore,
		City:      l.City,
		State:     l.State,
		CreatedAt: l.CreatedAt,
	}
	if l.DOB != nil {
		d := datatypes.Date(*l.DOB)
		m.DOB = &d
	}
	if len(l.ExtraData) > 0 {
		m.ExtraData = datatypes.JSON(l.ExtraData)
	}
	return m
}

func toLead(m *leadModel) *domain.Lead {
	l := &domain.Lead{
		ID:        m.ID,
		TenantID:  m.TenantID,
		ImportID:  m.ImportID,
		Phone:     m.Phone,
		Email:     m.Email,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		FICOScore: m.FICOScore,
		City:      m.City,
		State:     m.State,
		CreatedAt: m.CreatedAt,
	}
	if m.DOB != nil {
		t := time.Time(*m.DOB)
		l.DOB = &t
	}
	if len(m.ExtraData) > 0 {
		l.ExtraData = json.RawMessage(m.ExtraData)
	}
	return l
}
