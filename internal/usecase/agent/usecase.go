package agent

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	domain "rental-intake/internal/domain/agent"
	"rental-intake/internal/domain/validation"
	"rental-intake/internal/usecase/question"
	"rental-intake/pkg/id"
)

const (
	defaultPrimaryColor   = "#2563eb"
	defaultSecondaryColor = "#1e40af"
)

type Usecase struct {
	repo    domain.Repository
	log     *zap.Logger
	baseURL string
}

func NewUsecase(r domain.Repository, log *zap.Logger, publicBaseURL string) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, log: log, baseURL: strings.TrimRight(publicBaseURL, "/")}
}

// Resolved is the agent a wizard runs against. Placeholder is set when the
// lookup itself failed and a stand-in was used.
type Resolved struct {
	Agent       *domain.Agent
	Placeholder bool
}

func (u *Usecase) CreateProfile(ctx context.Context, in CreateInput) (*ProfileDTO, error) {
	v := validation.New("profile")
	if validation.Blank(in.Name) {
		v.Add("name", "is required")
	}
	if validation.Blank(in.Email) {
		v.Add("email", "is required")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	slug := domain.SlugFor(in.URLSlug, in.Name)
	if err := u.ensureSlugFree(ctx, slug, ""); err != nil {
		return nil, err
	}

	a := &domain.Agent{
		AgentID:        id.NewID32(),
		Name:           strings.TrimSpace(in.Name),
		BusinessName:   strings.TrimSpace(in.BusinessName),
		Email:          strings.TrimSpace(in.Email),
		Phone:          strings.TrimSpace(in.Phone),
		Logo:           in.Logo,
		PrimaryColor:   orDefault(in.PrimaryColor, defaultPrimaryColor),
		SecondaryColor: orDefault(in.SecondaryColor, defaultSecondaryColor),
		URLSlug:        slug,
	}
	if err := u.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	u.log.Info("agent profile created", zap.String("agent_id", a.AgentID), zap.String("slug", slug))
	return u.toDTO(a), nil
}

func orDefault(s, d string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return d
}

// ensureSlugFree fails with ErrSlugTaken when another agent owns slug.
func (u *Usecase) ensureSlugFree(ctx context.Context, slug, ownerAgentID string) error {
	other, err := u.repo.GetBySlug(ctx, slug)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return err
	case other.AgentID != ownerAgentID:
		return domain.ErrSlugTaken
	}
	return nil
}

func (u *Usecase) GetProfile(ctx context.Context, agentID string) (*ProfileDTO, error) {
	a, err := u.repo.GetByAgentID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	return u.toDTO(a), nil
}

func (u *Usecase) UpdateProfile(ctx context.Context, agentID string, p ProfilePatch) (*ProfileDTO, error) {
	a, err := u.repo.GetByAgentID(ctx, agentID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	set := func(col string, dst *string, val *string) {
		if val == nil {
			return
		}
		*dst = strings.TrimSpace(*val)
		fields[col] = *dst
	}
	set("name", &a.Name, p.Name)
	set("business_name", &a.BusinessName, p.BusinessName)
	set("email", &a.Email, p.Email)
	set("phone", &a.Phone, p.Phone)
	set("logo", &a.Logo, p.Logo)
	set("primary_color", &a.PrimaryColor, p.PrimaryColor)
	set("secondary_color", &a.SecondaryColor, p.SecondaryColor)

	if validation.Blank(a.Name) || validation.Blank(a.Email) {
		return nil, validation.New("profile").Add("name", "name and email cannot be cleared").Err()
	}
	if p.URLSlug != nil {
		slug := domain.SlugFor(*p.URLSlug, a.Name)
		if slug != a.URLSlug {
			if err := u.ensureSlugFree(ctx, slug, a.AgentID); err != nil {
				return nil, err
			}
			a.URLSlug = slug
			fields["url_slug"] = slug
		}
	}
	if len(fields) == 0 {
		return u.toDTO(a), nil
	}
	if err := u.repo.Update(ctx, agentID, fields); err != nil {
		return nil, err
	}
	return u.toDTO(a), nil
}

func (u *Usecase) GetPublicProfile(ctx context.Context, slug string) (*PublicProfileDTO, error) {
	r, err := u.ResolveForIntake(ctx, slug)
	if err != nil {
		return nil, err
	}
	return publicDTO(r), nil
}

// ResolveForIntake finds the agent behind a public link. An unknown slug
// is a hard not-found. A failing lookup is logged and degrades to a
// placeholder agent with no questions so the form still renders.
func (u *Usecase) ResolveForIntake(ctx context.Context, slug string) (*Resolved, error) {
	norm := domain.NormalizeSlug(slug)
	if norm == "" {
		return nil, domain.ErrNotFound
	}
	a, err := u.repo.GetBySlug(ctx, norm)
	switch {
	case err == nil:
		return &Resolved{Agent: a}, nil
	case errors.Is(err, domain.ErrNotFound):
		return nil, err
	}
	u.log.Warn("agent lookup failed, using placeholder profile", zap.String("slug", norm), zap.Error(err))
	return &Resolved{
		Agent: &domain.Agent{
			Name:           "Rental Application",
			PrimaryColor:   defaultPrimaryColor,
			SecondaryColor: defaultSecondaryColor,
			URLSlug:        norm,
		},
		Placeholder: true,
	}, nil
}

func (u *Usecase) toDTO(a *domain.Agent) *ProfileDTO {
	return &ProfileDTO{
		AgentID:         a.AgentID,
		Name:            a.Name,
		BusinessName:    a.BusinessName,
		Email:           a.Email,
		Phone:           a.Phone,
		Logo:            a.Logo,
		PrimaryColor:    a.PrimaryColor,
		SecondaryColor:  a.SecondaryColor,
		URLSlug:         a.URLSlug,
		ApplicationLink: u.baseURL + "/apply/" + a.URLSlug,
		Questions:       question.ToDTOs(a.Questions),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func publicDTO(r *Resolved) *PublicProfileDTO {
	a := r.Agent
	return &PublicProfileDTO{
		Name:           a.Name,
		BusinessName:   a.BusinessName,
		Logo:           a.Logo,
		PrimaryColor:   a.PrimaryColor,
		SecondaryColor: a.SecondaryColor,
		URLSlug:        a.URLSlug,
		Questions:      question.ToDTOs(a.Questions),
		Placeholder:    r.Placeholder,
	}
}
