package agent

import (
	"context"
	"errors"
	"testing"

	domain "rental-intake/internal/domain/agent"
	"rental-intake/internal/testutil/agentmock"
)

func TestCreateProfile_SlugFromName(t *testing.T) {
	var created *domain.Agent
	uc := NewUsecase(&agentmock.Repo{CreateFn: func(ctx context.Context, a *domain.Agent) error {
		created = a
		return nil
	}}, nil, "https://apply.example.com/")

	dto, err := uc.CreateProfile(context.Background(), CreateInput{Name: "Jane Smith", Email: "jane@realty.io"})
	if err != nil {
		t.Fatalf("CreateProfile err: %v", err)
	}
	if dto.URLSlug != "jane-smith" || created.URLSlug != "jane-smith" {
		t.Fatalf("slug=%q", dto.URLSlug)
	}
	if dto.ApplicationLink != "https://apply.example.com/apply/jane-smith" {
		t.Fatalf("link=%q", dto.ApplicationLink)
	}
	if len(dto.AgentID) != 32 || dto.PrimaryColor == "" {
		t.Fatalf("dto=%+v", dto)
	}
	if dto.Questions == nil {
		t.Fatal("questions must render as an empty list")
	}
}

func TestCreateProfile_SlugTaken(t *testing.T) {
	uc := NewUsecase(&agentmock.Repo{
		GetBySlugFn: func(ctx context.Context, slug string) (*domain.Agent, error) {
			return &domain.Agent{AgentID: "someone-else", URLSlug: slug}, nil
		},
		CreateFn: func(ctx context.Context, a *domain.Agent) error {
			t.Fatal("Create must not be called")
			return nil
		},
	}, nil, "")
	_, err := uc.CreateProfile(context.Background(), CreateInput{Name: "Jane", Email: "j@x.io", URLSlug: "Jane Smith"})
	if !errors.Is(err, domain.ErrSlugTaken) {
		t.Fatalf("want ErrSlugTaken, got %v", err)
	}
}

func TestCreateProfile_Validation(t *testing.T) {
	uc := NewUsecase(&agentmock.Repo{}, nil, "")
	if _, err := uc.CreateProfile(context.Background(), CreateInput{Name: " "}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestUpdateProfile_PartialAndSlug(t *testing.T) {
	const id = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	var fields map[string]any
	repo := &agentmock.Repo{
		GetByAgentIDFn: func(ctx context.Context, agentID string) (*domain.Agent, error) {
			return &domain.Agent{AgentID: id, Name: "Jane", Email: "j@x.io", URLSlug: "jane", Phone: "1"}, nil
		},
		GetBySlugFn: func(ctx context.Context, slug string) (*domain.Agent, error) {
			if slug == "taken" {
				return &domain.Agent{AgentID: "other"}, nil
			}
			return nil, domain.ErrNotFound
		},
		UpdateFn: func(ctx context.Context, agentID string, f map[string]any) error {
			fields = f
			return nil
		},
	}
	uc := NewUsecase(repo, nil, "")

	biz, slug := "Smith Realty", "Smith Homes"
	dto, err := uc.UpdateProfile(context.Background(), id, ProfilePatch{BusinessName: &biz, URLSlug: &slug})
	if err != nil {
		t.Fatalf("UpdateProfile err: %v", err)
	}
	if dto.BusinessName != biz || dto.URLSlug != "smith-homes" || dto.Phone != "1" {
		t.Fatalf("dto=%+v", dto)
	}
	if len(fields) != 2 || fields["url_slug"] != "smith-homes" {
		t.Fatalf("fields=%v", fields)
	}

	taken := "taken"
	if _, err := uc.UpdateProfile(context.Background(), id, ProfilePatch{URLSlug: &taken}); !errors.Is(err, domain.ErrSlugTaken) {
		t.Fatalf("want ErrSlugTaken, got %v", err)
	}
	empty := ""
	if _, err := uc.UpdateProfile(context.Background(), id, ProfilePatch{Email: &empty}); err == nil {
		t.Fatal("clearing email must fail")
	}
}

func TestResolveForIntake(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("connection refused")
	uc := NewUsecase(&agentmock.Repo{GetBySlugFn: func(ctx context.Context, slug string) (*domain.Agent, error) {
		switch slug {
		case "jane-smith":
			return &domain.Agent{AgentID: "a1", URLSlug: slug, Questions: []domain.CustomQuestion{{QuestionID: "q1"}}}, nil
		case "broken":
			return nil, storeErr
		}
		return nil, domain.ErrNotFound
	}}, nil, "")

	r, err := uc.ResolveForIntake(ctx, "Jane-Smith")
	if err != nil || r.Placeholder || r.Agent.AgentID != "a1" {
		t.Fatalf("found: %v / %+v", err, r)
	}

	if _, err := uc.ResolveForIntake(ctx, "nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown slug: want ErrNotFound, got %v", err)
	}
	if _, err := uc.ResolveForIntake(ctx, "!!!"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("empty slug: want ErrNotFound, got %v", err)
	}

	r, err = uc.ResolveForIntake(ctx, "broken")
	if err != nil {
		t.Fatalf("store error should degrade, got %v", err)
	}
	if !r.Placeholder || r.Agent.AgentID != "" || len(r.Agent.Questions) != 0 {
		t.Fatalf("placeholder=%+v", r)
	}

	pub, err := uc.GetPublicProfile(ctx, "jane-smith")
	if err != nil || len(pub.Questions) != 1 {
		t.Fatalf("public: %v / %+v", err, pub)
	}
}
