package agent

import (
	"time"

	"rental-intake/internal/usecase/question"
)

type CreateInput struct {
	Name           string `json:"name" validate:"required,max=120"`
	BusinessName   string `json:"businessName" validate:"max=160"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"max=40"`
	Logo           string `json:"logo"`
	PrimaryColor   string `json:"primaryColor" validate:"omitempty,hexcolor"`
	SecondaryColor string `json:"secondaryColor" validate:"omitempty,hexcolor"`
	URLSlug        string `json:"urlSlug" validate:"max=64"`
}

// ProfilePatch: nil fields are left as stored.
type ProfilePatch struct {
	Name           *string `json:"name" validate:"omitempty,min=1,max=120"`
	BusinessName   *string `json:"businessName" validate:"omitempty,max=160"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Phone          *string `json:"phone" validate:"omitempty,max=40"`
	Logo           *string `json:"logo"`
	PrimaryColor   *string `json:"primaryColor" validate:"omitempty,hexcolor"`
	SecondaryColor *string `json:"secondaryColor" validate:"omitempty,hexcolor"`
	URLSlug        *string `json:"urlSlug" validate:"omitempty,max=64"`
}

type ProfileDTO struct {
	AgentID         string         `json:"agentId"`
	Name            string         `json:"name"`
	BusinessName    string         `json:"businessName"`
	Email           string         `json:"email"`
	Phone           string         `json:"phone"`
	Logo            string         `json:"logo"`
	PrimaryColor    string         `json:"primaryColor"`
	SecondaryColor  string         `json:"secondaryColor"`
	URLSlug         string         `json:"urlSlug"`
	ApplicationLink string         `json:"applicationLink"`
	Questions       []question.DTO `json:"customQuestions"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// PublicProfileDTO is what an unauthenticated tenant sees: branding and
// questions, no contact details beyond the business.
type PublicProfileDTO struct {
	Name           string         `json:"name"`
	BusinessName   string         `json:"businessName"`
	Logo           string         `json:"logo"`
	PrimaryColor   string         `json:"primaryColor"`
	SecondaryColor string         `json:"secondaryColor"`
	URLSlug        string         `json:"urlSlug"`
	Questions      []question.DTO `json:"customQuestions"`
	Placeholder    bool           `json:"placeholder,omitempty"`
}
