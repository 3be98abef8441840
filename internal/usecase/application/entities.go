package application

import (
	"time"

	domain "rental-intake/internal/domain/application"
	"rental-intake/internal/domain/document"
)

type CreateInput struct {
	AgentID        string
	PersonalInfo   domain.PersonalInfo
	EmploymentInfo domain.EmploymentInfo
	RentalHistory  domain.RentalHistory
	References     []domain.Reference
	Documents      []document.Document
	CustomAnswers  []domain.CustomAnswer
	// Ignored; new applications always start pending
	Status domain.Status
}

type ListInput struct {
	AgentID string
	Status  string
	Search  string
}

type UpdateStatusInput struct {
	// Optional; when set the application must belong to this agent
	AgentID       string
	ApplicationID string
	Status        string
	Note          *string
}

type DecideInput struct {
	ApplicationID string
	Status        string
	Note          *string
}

// Patch is a partial update. Nil pointers and nil slices are left untouched.
type Patch struct {
	Status                *string                `json:"status"`
	AdditionalInfoRequest *string                `json:"additionalInfoRequest"`
	PersonalInfo          *domain.PersonalInfo   `json:"personalInfo"`
	EmploymentInfo        *domain.EmploymentInfo `json:"employmentInfo"`
	RentalHistory         *domain.RentalHistory  `json:"rentalHistory"`
	References            []domain.Reference     `json:"references"`
	Documents             []document.Document    `json:"documents"`
}

type ApplicationDTO struct {
	ApplicationID         string                `json:"id"`
	AgentID               string                `json:"agentId"`
	Status                string                `json:"status"`
	PersonalInfo          domain.PersonalInfo   `json:"personalInfo"`
	EmploymentInfo        domain.EmploymentInfo `json:"employmentInfo"`
	RentalHistory         domain.RentalHistory  `json:"rentalHistory"`
	References            []domain.Reference    `json:"references"`
	Documents             []document.Document   `json:"documents"`
	CustomAnswers         []domain.CustomAnswer `json:"customAnswers"`
	AdditionalInfoRequest string                `json:"additionalInfoRequest,omitempty"`
	StatusURL             string                `json:"statusUrl,omitempty"`
	LandlordURL           string                `json:"landlordUrl,omitempty"`
	StatusUpdatedAt       time.Time             `json:"statusUpdatedAt"`
	CreatedAt             time.Time             `json:"createdAt"`
	UpdatedAt             time.Time             `json:"updatedAt"`
}

type StatsDTO struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
}

type TenantStatusDTO struct {
	ApplicationID string    `json:"id"`
	Status        string    `json:"status"`
	Message       string    `json:"message"`
	Description   string    `json:"description"`
	Note          string    `json:"additionalInfoRequest,omitempty"`
	SubmittedAt   time.Time `json:"submittedAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
