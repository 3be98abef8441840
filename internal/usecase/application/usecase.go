package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	domain "rental-intake/internal/domain/application"
	"rental-intake/internal/domain/document"
	"rental-intake/internal/domain/uow"
	"rental-intake/internal/domain/validation"
	"rental-intake/internal/infrastructure/metrics"
	"rental-intake/pkg/id"
)

// landlordStatuses are the decisions available on the public landlord link.
var landlordStatuses = map[domain.Status]bool{
	domain.StatusApproved:      true,
	domain.StatusRejected:      true,
	domain.StatusInfoRequested: true,
}

type Usecase struct {
	repo     domain.Repository
	uow      uow.UnitOfWork
	notifier domain.Notifier
	log      *zap.Logger
	now      func() time.Time
	baseURL  string
}

type Option func(*Usecase)

func WithNotifier(n domain.Notifier) Option { return func(u *Usecase) { u.notifier = n } }

func WithLogger(l *zap.Logger) Option { return func(u *Usecase) { u.log = l } }

func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

// WithPublicBaseURL enables the status and landlord links on DTOs.
func WithPublicBaseURL(base string) Option {
	return func(u *Usecase) { u.baseURL = strings.TrimRight(base, "/") }
}

// NewUsecase: repo for reads and single-row writes, UoW for create.
func NewUsecase(r domain.Repository, tx uow.UnitOfWork, opts ...Option) *Usecase {
	u := &Usecase{repo: r, uow: tx, log: zap.NewNop(), now: func() time.Time { return time.Now().UTC() }}
	for _, o := range opts {
		o(u)
	}
	return u
}

// stamp returns the current time, nudged past prev so updatedAt always
// moves forward even on coarse clocks.
func (u *Usecase) stamp(prev time.Time) time.Time {
	ts := u.now().UTC()
	if !ts.After(prev) {
		ts = prev.Add(time.Millisecond)
	}
	return ts
}

// Create commits a finished draft. The agent must exist; the status is
// always pending.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*ApplicationDTO, error) {
	if validation.Blank(in.AgentID) {
		return nil, validation.New("application").Add("agentId", "is required").Err()
	}
	if err := checkSections(in.PersonalInfo, in.EmploymentInfo, in.RentalHistory, in.References); err != nil {
		return nil, err
	}
	if u.uow == nil {
		return nil, errors.New("application usecase: no unit of work configured")
	}

	now := u.now().UTC()
	a := &domain.Application{
		ApplicationID:   id.NewID32(),
		AgentID:         in.AgentID,
		Status:          domain.StatusPending,
		PersonalInfo:    datatypes.NewJSONType(in.PersonalInfo),
		EmploymentInfo:  datatypes.NewJSONType(in.EmploymentInfo),
		RentalHistory:   datatypes.NewJSONType(in.RentalHistory),
		References:      datatypes.JSONSlice[domain.Reference](nonNil(in.References)),
		Documents:       datatypes.JSONSlice[document.Document](nonNil(in.Documents)),
		CustomAnswers:   datatypes.JSONSlice[domain.CustomAnswer](nonNil(in.CustomAnswers)),
		StatusUpdatedAt: now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Agents.GetByAgentID(ctx, in.AgentID); err != nil {
			return err
		}
		return r.Applications.Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}

	metrics.ApplicationsSubmitted.Inc()
	u.log.Info("application submitted",
		zap.String("application_id", a.ApplicationID), zap.String("agent_id", a.AgentID))
	return u.toDTO(a), nil
}

func checkSections(pi domain.PersonalInfo, ei domain.EmploymentInfo, rh domain.RentalHistory, refs []domain.Reference) error {
	v := validation.New("application")
	for _, p := range [][]validation.FieldError{pi.Problems(), ei.Problems(), rh.Problems(), domain.ReferenceProblems(refs)} {
		v.Fields = append(v.Fields, p...)
	}
	return v.Err()
}

// Get is the unscoped read used by the public landlord link.
func (u *Usecase) Get(ctx context.Context, applicationID string) (*ApplicationDTO, error) {
	a, err := u.repo.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	return u.toDTO(a), nil
}

// GetForAgent reports another agent's application as not found.
func (u *Usecase) GetForAgent(ctx context.Context, agentID, applicationID string) (*ApplicationDTO, error) {
	a, err := u.load(ctx, agentID, applicationID)
	if err != nil {
		return nil, err
	}
	return u.toDTO(a), nil
}

func (u *Usecase) load(ctx context.Context, agentID, applicationID string) (*domain.Application, error) {
	a, err := u.repo.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if agentID != "" && a.AgentID != agentID {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

// List is newest first. Search matches name or email, case-insensitive.
func (u *Usecase) List(ctx context.Context, in ListInput) ([]ApplicationDTO, error) {
	f := domain.Filter{AgentID: in.AgentID}
	if in.Status != "" && in.Status != "all" {
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		f.Status = st
	}
	rows, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(in.Search))
	out := make([]ApplicationDTO, 0, len(rows))
	for i := range rows {
		if q != "" && !matches(&rows[i], q) {
			continue
		}
		out = append(out, *u.toDTO(&rows[i]))
	}
	return out, nil
}

func matches(a *domain.Application, q string) bool {
	pi := a.PersonalInfo.Data()
	return strings.Contains(strings.ToLower(pi.FullName), q) ||
		strings.Contains(strings.ToLower(pi.Email), q)
}

func (u *Usecase) Stats(ctx context.Context, agentID string) (*StatsDTO, error) {
	counts, err := u.repo.CountByStatus(ctx, agentID)
	if err != nil {
		return nil, err
	}
	out := &StatsDTO{ByStatus: make(map[string]int64, len(domain.Statuses))}
	for _, s := range domain.Statuses {
		out.ByStatus[string(s)] = counts[s]
		out.Total += counts[s]
	}
	return out, nil
}

// UpdateStatus runs the workflow and persists status, timestamps and, for
// info-requested, the optional note. Nothing is reported changed unless
// the write succeeded.
func (u *Usecase) UpdateStatus(ctx context.Context, in UpdateStatusInput) (*ApplicationDTO, error) {
	to, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}
	a, err := u.load(ctx, in.AgentID, in.ApplicationID)
	if err != nil {
		return nil, err
	}
	from := a.Status
	next, err := domain.Transition(ctx, from, to)
	if err != nil {
		return nil, err
	}

	now := u.stamp(a.UpdatedAt)
	fields := map[string]any{
		"status":            next,
		"status_updated_at": now,
		"updated_at":        now,
	}
	if next == domain.StatusInfoRequested && in.Note != nil {
		fields["additional_info_request"] = *in.Note
	}
	if err := u.repo.Update(ctx, a.ApplicationID, fields); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	a.Status = next
	a.StatusUpdatedAt = now
	a.UpdatedAt = now
	if note, ok := fields["additional_info_request"].(string); ok {
		a.AdditionalInfoRequest = note
	}
	u.afterStatusChange(ctx, a, from)
	return u.toDTO(a), nil
}

// Decide is the landlord's action: approve, reject or ask for more info.
func (u *Usecase) Decide(ctx context.Context, in DecideInput) (*ApplicationDTO, error) {
	st, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}
	if !landlordStatuses[st] {
		return nil, fmt.Errorf("%w: landlords may only approve, reject or request info", domain.ErrInvalidTransition)
	}
	return u.UpdateStatus(ctx, UpdateStatusInput{ApplicationID: in.ApplicationID, Status: in.Status, Note: in.Note})
}

// Update merges only the provided fields. updated_at is always refreshed.
func (u *Usecase) Update(ctx context.Context, agentID, applicationID string, p Patch) (*ApplicationDTO, error) {
	a, err := u.load(ctx, agentID, applicationID)
	if err != nil {
		return nil, err
	}

	v := validation.New("application")
	now := u.stamp(a.UpdatedAt)
	fields := map[string]any{"updated_at": now}
	from := a.Status

	if p.Status != nil {
		to, err := domain.ParseStatus(*p.Status)
		if err != nil {
			return nil, err
		}
		next, err := domain.Transition(ctx, a.Status, to)
		if err != nil {
			return nil, err
		}
		fields["status"] = next
		fields["status_updated_at"] = now
	}
	if p.AdditionalInfoRequest != nil {
		fields["additional_info_request"] = *p.AdditionalInfoRequest
	}
	if p.PersonalInfo != nil {
		v.Fields = append(v.Fields, p.PersonalInfo.Problems()...)
		fields["personal_info"] = datatypes.NewJSONType(*p.PersonalInfo)
	}
	if p.EmploymentInfo != nil {
		v.Fields = append(v.Fields, p.EmploymentInfo.Problems()...)
		fields["employment_info"] = datatypes.NewJSONType(*p.EmploymentInfo)
	}
	if p.RentalHistory != nil {
		v.Fields = append(v.Fields, p.RentalHistory.Problems()...)
		fields["rental_history"] = datatypes.NewJSONType(*p.RentalHistory)
	}
	if p.References != nil {
		v.Fields = append(v.Fields, domain.ReferenceProblems(p.References)...)
		fields["tenant_references"] = datatypes.JSONSlice[domain.Reference](p.References)
	}
	if p.Documents != nil {
		fields["documents"] = datatypes.JSONSlice[document.Document](p.Documents)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := u.repo.Update(ctx, a.ApplicationID, fields); err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}
	applyFields(a, fields)
	if p.Status != nil {
		u.afterStatusChange(ctx, a, from)
	}
	return u.toDTO(a), nil
}

func applyFields(a *domain.Application, fields map[string]any) {
	for k, val := range fields {
		switch k {
		case "updated_at":
			a.UpdatedAt = val.(time.Time)
		case "status_updated_at":
			a.StatusUpdatedAt = val.(time.Time)
		case "status":
			a.Status = val.(domain.Status)
		case "additional_info_request":
			a.AdditionalInfoRequest = val.(string)
		case "personal_info":
			a.PersonalInfo = val.(datatypes.JSONType[domain.PersonalInfo])
		case "employment_info":
			a.EmploymentInfo = val.(datatypes.JSONType[domain.EmploymentInfo])
		case "rental_history":
			a.RentalHistory = val.(datatypes.JSONType[domain.RentalHistory])
		case "tenant_references":
			a.References = val.(datatypes.JSONSlice[domain.Reference])
		case "documents":
			a.Documents = val.(datatypes.JSONSlice[document.Document])
		}
	}
}

func (u *Usecase) Delete(ctx context.Context, agentID, applicationID string) error {
	a, err := u.load(ctx, agentID, applicationID)
	if err != nil {
		return err
	}
	return u.repo.Delete(ctx, a.ApplicationID)
}

// TenantStatus backs the public status link.
func (u *Usecase) TenantStatus(ctx context.Context, applicationID string) (*TenantStatusDTO, error) {
	a, err := u.repo.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	msg, desc := domain.TenantMessage(a.Status)
	out := &TenantStatusDTO{
		ApplicationID: a.ApplicationID,
		Status:        string(a.Status),
		Message:       msg,
		Description:   desc,
		SubmittedAt:   a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
	if a.Status == domain.StatusInfoRequested {
		out.Note = a.AdditionalInfoRequest
	}
	return out, nil
}

func (u *Usecase) afterStatusChange(ctx context.Context, a *domain.Application, from domain.Status) {
	metrics.StatusTransitions.WithLabelValues(string(from), string(a.Status)).Inc()
	u.log.Info("application status updated",
		zap.String("application_id", a.ApplicationID),
		zap.String("from", string(from)),
		zap.String("to", string(a.Status)))

	if u.notifier == nil {
		return
	}
	n := domain.NewStatusNotice(a, u.link("/status/", a.ApplicationID))
	if validation.Blank(n.TenantEmail) {
		return
	}
	// delivery failures never fail the status change
	if err := u.notifier.NotifyStatus(ctx, n); err != nil {
		metrics.NotificationsFailed.Inc()
		u.log.Error("tenant notification failed",
			zap.String("application_id", a.ApplicationID), zap.Error(err))
	}
}

func (u *Usecase) link(prefix, applicationID string) string {
	if u.baseURL == "" {
		return ""
	}
	return u.baseURL + prefix + applicationID
}

func (u *Usecase) toDTO(a *domain.Application) *ApplicationDTO {
	return &ApplicationDTO{
		ApplicationID:         a.ApplicationID,
		AgentID:               a.AgentID,
		Status:                string(a.Status),
		PersonalInfo:          a.PersonalInfo.Data(),
		EmploymentInfo:        a.EmploymentInfo.Data(),
		RentalHistory:         a.RentalHistory.Data(),
		References:            nonNil([]domain.Reference(a.References)),
		Documents:             nonNil([]document.Document(a.Documents)),
		CustomAnswers:         nonNil([]domain.CustomAnswer(a.CustomAnswers)),
		AdditionalInfoRequest: a.AdditionalInfoRequest,
		StatusURL:             u.link("/status/", a.ApplicationID),
		LandlordURL:           u.link("/landlord/", a.ApplicationID),
		StatusUpdatedAt:       a.StatusUpdatedAt,
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             a.UpdatedAt,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
