package application

import "context"

// StatusNotice is what the tenant is told after a status change.
type StatusNotice struct {
	ApplicationID string
	TenantName    string
	TenantEmail   string
	Status        Status
	Message       string
	Description   string
	Note          string
	StatusURL     string
}

// NewStatusNotice fills the tenant-facing texts for the application's
// current status.
func NewStatusNotice(a *Application, statusURL string) StatusNotice {
	msg, desc := TenantMessage(a.Status)
	pi := a.PersonalInfo.Data()
	n := StatusNotice{
		ApplicationID: a.ApplicationID,
		TenantName:    pi.FullName,
		TenantEmail:   pi.Email,
		Status:        a.Status,
		Message:       msg,
		Description:   desc,
		StatusURL:     statusURL,
	}
	if a.Status == StatusInfoRequested {
		n.Note = a.AdditionalInfoRequest
	}
	return n
}

type Notifier interface {
	NotifyStatus(ctx context.Context, n StatusNotice) error
}
