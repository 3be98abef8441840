package application

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"rental-intake/internal/domain/document"
)

var (
	ErrNotFound          = errors.New("application not found")
	ErrInvalidStatus     = errors.New("invalid application status")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

type PersonalInfo struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

type EmploymentInfo struct {
	Employer         string `json:"employer"`
	Position         string `json:"position"`
	Income           string `json:"income"`
	EmploymentLength string `json:"employmentLength"`
	EmployerContact  string `json:"employerContact,omitempty"`
}

type RentalHistory struct {
	CurrentAddress       string `json:"currentAddress"`
	CurrentLandlord      string `json:"currentLandlord,omitempty"`
	CurrentLandlordPhone string `json:"currentLandlordPhone,omitempty"`
	LengthOfStay         string `json:"lengthOfStay"`
	ReasonForLeaving     string `json:"reasonForLeaving,omitempty"`
}

type Reference struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

// Table: tenant_applications. Nested sections are JSON columns.
type Application struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Public identifier (32-char lowercase hex)
	ApplicationID string `gorm:"column:application_id;size:32;not null;uniqueIndex:ux_applications_application_id"`
	// Public agent id of the owning agent
	AgentID string `gorm:"column:agent_id;size:32;not null;index:idx_applications_agent_status"`
	Status  Status `gorm:"column:status;size:20;not null;default:pending;index:idx_applications_agent_status"`

	PersonalInfo   datatypes.JSONType[PersonalInfo]       `gorm:"column:personal_info"`
	EmploymentInfo datatypes.JSONType[EmploymentInfo]     `gorm:"column:employment_info"`
	RentalHistory  datatypes.JSONType[RentalHistory]      `gorm:"column:rental_history"`
	References     datatypes.JSONSlice[Reference]         `gorm:"column:tenant_references"`
	Documents      datatypes.JSONSlice[document.Document] `gorm:"column:documents"`
	CustomAnswers  datatypes.JSONSlice[CustomAnswer]      `gorm:"column:custom_answers"`

	AdditionalInfoRequest string `gorm:"column:additional_info_request;type:text"`

	StatusUpdatedAt time.Time      `gorm:"column:status_updated_at"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Application) TableName() string { return "tenant_applications" }
