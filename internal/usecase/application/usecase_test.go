package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/datatypes"

	domainAgent "rental-intake/internal/domain/agent"
	domain "rental-intake/internal/domain/application"
	"rental-intake/internal/domain/uow"
	"rental-intake/internal/domain/validation"
	"rental-intake/internal/testutil/agentmock"
	"rental-intake/internal/testutil/applicationmock"
	"rental-intake/internal/testutil/notifymock"
	"rental-intake/internal/testutil/uowmock"
)

const (
	agentA = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	agentB = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

// ----- test doubles -----

// memRepo backs applicationmock.Repo with a map keyed by application id.
func memRepo() (*applicationmock.Repo, map[string]*domain.Application) {
	rows := map[string]*domain.Application{}
	seq := uint64(0)
	r := &applicationmock.Repo{
		CreateFn: func(ctx context.Context, a *domain.Application) error {
			seq++
			a.ID = seq
			cp := *a
			rows[a.ApplicationID] = &cp
			return nil
		},
		GetByApplicationIDFn: func(ctx context.Context, id string) (*domain.Application, error) {
			a, ok := rows[id]
			if !ok {
				return nil, domain.ErrNotFound
			}
			cp := *a
			return &cp, nil
		},
		UpdateFn: func(ctx context.Context, id string, fields map[string]any) error {
			a, ok := rows[id]
			if !ok {
				return domain.ErrNotFound
			}
			applyFields(a, fields)
			return nil
		},
		ListFn: func(ctx context.Context, f domain.Filter) ([]domain.Application, error) {
			var out []domain.Application
			for _, a := range rows {
				if a.AgentID == f.AgentID && (f.Status == "" || a.Status == f.Status) {
					out = append(out, *a)
				}
			}
			return out, nil
		},
	}
	return r, rows
}

func knownAgents(ids ...string) *agentmock.Repo {
	return &agentmock.Repo{GetByAgentIDFn: func(ctx context.Context, agentID string) (*domainAgent.Agent, error) {
		for _, id := range ids {
			if id == agentID {
				return &domainAgent.Agent{AgentID: id}, nil
			}
		}
		return nil, domainAgent.ErrNotFound
	}}
}

func fixedClock(ts time.Time) func() time.Time { return func() time.Time { return ts } }

func validInput(agentID string) CreateInput {
	return CreateInput{
		AgentID:        agentID,
		PersonalInfo:   domain.PersonalInfo{FullName: "Tom Tenant", Email: "tom@example.com", Phone: "555-0100"},
		EmploymentInfo: domain.EmploymentInfo{Employer: "Acme", Position: "Engineer", Income: "6000"},
		RentalHistory:  domain.RentalHistory{CurrentAddress: "1 Main St", LengthOfStay: "3 years"},
		References:     []domain.Reference{{Name: "Ref", Phone: "555-0101"}},
	}
}

func newUC(t *testing.T, opts ...Option) (*Usecase, map[string]*domain.Application) {
	t.Helper()
	repo, rows := memRepo()
	tx := uowmock.Passthrough(uow.Repos{Applications: repo, Agents: knownAgents(agentA, agentB)})
	return NewUsecase(repo, tx, opts...), rows
}

// ----- tests -----

func TestCreate_ForcesPending(t *testing.T) {
	uc, rows := newUC(t)
	in := validInput(agentA)
	in.Status = domain.StatusApproved

	dto, err := uc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}
	if dto.Status != string(domain.StatusPending) {
		t.Fatalf("status=%s, want pending", dto.Status)
	}
	if len(dto.ApplicationID) != 32 {
		t.Fatalf("ApplicationID length: %d", len(dto.ApplicationID))
	}
	if rows[dto.ApplicationID].Status != domain.StatusPending {
		t.Fatalf("stored status=%s", rows[dto.ApplicationID].Status)
	}
	if dto.References == nil || dto.Documents == nil || dto.CustomAnswers == nil {
		t.Fatal("list sections must render as empty arrays, not null")
	}
}

func TestCreate_UnknownAgent(t *testing.T) {
	uc, rows := newUC(t)
	_, err := uc.Create(context.Background(), validInput("cccccccccccccccccccccccccccccccc"))
	if !errors.Is(err, domainAgent.ErrNotFound) {
		t.Fatalf("want agent.ErrNotFound, got %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("nothing should be committed, got %d rows", len(rows))
	}
}

func TestCreate_InvalidSectionsNeverReachRepo(t *testing.T) {
	repo := &applicationmock.Repo{CreateFn: func(ctx context.Context, a *domain.Application) error {
		t.Fatalf("Create must not be called for invalid input")
		return nil
	}}
	uc := NewUsecase(repo, uowmock.Passthrough(uow.Repos{Applications: repo, Agents: knownAgents(agentA)}))

	in := validInput(agentA)
	in.References = []domain.Reference{{Name: "no phone"}}
	_, err := uc.Create(context.Background(), in)
	var ve *validation.Error
	if !errors.As(err, &ve) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestCreate_TxErrorSurfaces(t *testing.T) {
	boom := errors.New("db down")
	repo := &applicationmock.Repo{}
	tx := uowmock.New().WithWithinTx(func(ctx context.Context, fn func(uow.Repos) error) error { return boom })
	_, err := NewUsecase(repo, tx).Create(context.Background(), validInput(agentA))
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
}

func TestUpdateStatus_InfoRequestedNoteRoundTrip(t *testing.T) {
	uc, _ := newUC(t)
	ctx := context.Background()
	dto, err := uc.Create(ctx, validInput(agentA))
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}

	note := "Please upload your last two pay stubs."
	if _, err := uc.UpdateStatus(ctx, UpdateStatusInput{AgentID: agentA, ApplicationID: dto.ApplicationID, Status: "info-requested", Note: &note}); err != nil {
		t.Fatalf("UpdateStatus err: %v", err)
	}

	got, err := uc.Get(ctx, dto.ApplicationID)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if got.Status != "info-requested" || got.AdditionalInfoRequest != note {
		t.Fatalf("got status=%q note=%q", got.Status, got.AdditionalInfoRequest)
	}

	ts, err := uc.TenantStatus(ctx, dto.ApplicationID)
	if err != nil {
		t.Fatalf("TenantStatus err: %v", err)
	}
	if ts.Note != note || ts.Message == "" {
		t.Fatalf("tenant status = %+v", ts)
	}
}

func TestUpdateStatus_ReopenKeepsTimestampsMovingForward(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	// clock frozen: every stamp must still be strictly later than the last
	uc, _ := newUC(t, WithClock(fixedClock(created)))
	ctx := context.Background()

	dto, err := uc.Create(ctx, validInput(agentA))
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}
	prev := dto.UpdatedAt
	for _, st := range []string{"approved", "pending"} {
		out, err := uc.UpdateStatus(ctx, UpdateStatusInput{ApplicationID: dto.ApplicationID, Status: st})
		if err != nil {
			t.Fatalf("UpdateStatus(%s) err: %v", st, err)
		}
		if !out.UpdatedAt.After(prev) {
			t.Fatalf("updatedAt %v not after %v", out.UpdatedAt, prev)
		}
		prev = out.UpdatedAt
	}

	final, _ := uc.Get(ctx, dto.ApplicationID)
	if final.Status != "pending" {
		t.Fatalf("final status=%s", final.Status)
	}
	if !final.UpdatedAt.After(final.CreatedAt) {
		t.Fatalf("updatedAt %v must be after createdAt %v", final.UpdatedAt, final.CreatedAt)
	}
}

func TestUpdateStatus_Errors(t *testing.T) {
	ctx := context.Background()
	stored := &domain.Application{ApplicationID: "x", AgentID: agentA, Status: domain.StatusPending}

	t.Run("invalid status", func(t *testing.T) {
		uc := NewUsecase(&applicationmock.Repo{}, nil)
		_, err := uc.UpdateStatus(ctx, UpdateStatusInput{ApplicationID: "x", Status: "archived"})
		if !errors.Is(err, domain.ErrInvalidStatus) {
			t.Fatalf("want ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		uc := NewUsecase(&applicationmock.Repo{}, nil)
		_, err := uc.UpdateStatus(ctx, UpdateStatusInput{ApplicationID: "x", Status: "approved"})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})

	t.Run("other agent", func(t *testing.T) {
		uc := NewUsecase(&applicationmock.Repo{
			GetByApplicationIDFn: func(ctx context.Context, id string) (*domain.Application, error) { return stored, nil },
		}, nil)
		_, err := uc.UpdateStatus(ctx, UpdateStatusInput{AgentID: agentB, ApplicationID: "x", Status: "approved"})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})

	t.Run("write fails", func(t *testing.T) {
		boom := errors.New("write failed")
		n := &notifymock.Notifier{}
		uc := NewUsecase(&applicationmock.Repo{
			GetByApplicationIDFn: func(ctx context.Context, id string) (*domain.Application, error) {
				cp := *stored
				return &cp, nil
			},
			UpdateFn: func(ctx context.Context, id string, fields map[string]any) error { return boom },
		}, nil, WithNotifier(n))
		out, err := uc.UpdateStatus(ctx, UpdateStatusInput{ApplicationID: "x", Status: "approved"})
		if !errors.Is(err, boom) || out != nil {
			t.Fatalf("want boom and nil dto, got %v / %+v", err, out)
		}
		if len(n.Sent()) != 0 {
			t.Fatal("no notification on failed write")
		}
	})
}

func TestUpdateStatus_NotifiesTenant(t *testing.T) {
	n := &notifymock.Notifier{Err: errors.New("smtp down")}
	uc, _ := newUC(t, WithNotifier(n), WithPublicBaseURL("https://apply.example.com/"))
	ctx := context.Background()
	dto, _ := uc.Create(ctx, validInput(agentA))

	out, err := uc.UpdateStatus(ctx, UpdateStatusInput{ApplicationID: dto.ApplicationID, Status: "approved"})
	if err != nil {
		t.Fatalf("notifier failure must not fail the update: %v", err)
	}
	if out.Status != "approved" {
		t.Fatalf("status=%s", out.Status)
	}
	sent := n.Sent()
	if len(sent) != 1 {
		t.Fatalf("notices=%d", len(sent))
	}
	if sent[0].TenantEmail != "tom@example.com" || sent[0].StatusURL != "https://apply.example.com/status/"+dto.ApplicationID {
		t.Fatalf("notice=%+v", sent[0])
	}
}

func TestDecide_RestrictedToLandlordActions(t *testing.T) {
	uc, _ := newUC(t)
	ctx := context.Background()
	dto, _ := uc.Create(ctx, validInput(agentA))

	if _, err := uc.Decide(ctx, DecideInput{ApplicationID: dto.ApplicationID, Status: "forwarded"}); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("forwarded: want ErrInvalidTransition, got %v", err)
	}
	out, err := uc.Decide(ctx, DecideInput{ApplicationID: dto.ApplicationID, Status: "rejected"})
	if err != nil || out.Status != "rejected" {
		t.Fatalf("rejected: %v / %+v", err, out)
	}
}

func TestUpdate_PartialMerge(t *testing.T) {
	uc, rows := newUC(t)
	ctx := context.Background()
	dto, _ := uc.Create(ctx, validInput(agentA))
	before := *rows[dto.ApplicationID]

	note := "call me"
	out, err := uc.Update(ctx, agentA, dto.ApplicationID, Patch{AdditionalInfoRequest: &note})
	if err != nil {
		t.Fatalf("Update err: %v", err)
	}
	if out.AdditionalInfoRequest != note {
		t.Fatalf("note=%q", out.AdditionalInfoRequest)
	}
	if out.PersonalInfo != before.PersonalInfo.Data() || out.Status != string(before.Status) {
		t.Fatal("absent fields must be untouched")
	}
	if !out.UpdatedAt.After(before.UpdatedAt) {
		t.Fatal("updatedAt must be refreshed")
	}

	_, err = uc.Update(ctx, agentA, dto.ApplicationID, Patch{References: []domain.Reference{}})
	var ve *validation.Error
	if !errors.As(err, &ve) {
		t.Fatalf("empty references: want validation error, got %v", err)
	}

	st := "forwarded"
	out, err = uc.Update(ctx, agentA, dto.ApplicationID, Patch{Status: &st})
	if err != nil || out.Status != "forwarded" {
		t.Fatalf("status patch: %v / %+v", err, out)
	}
}

func TestList_FiltersAndSearch(t *testing.T) {
	uc, rows := newUC(t)
	ctx := context.Background()
	a1, _ := uc.Create(ctx, validInput(agentA))
	in := validInput(agentA)
	in.PersonalInfo = domain.PersonalInfo{FullName: "Ann Other", Email: "ANN@corp.io", Phone: "1"}
	a2, _ := uc.Create(ctx, in)
	_, _ = uc.Create(ctx, validInput(agentB))
	rows[a2.ApplicationID].Status = domain.StatusForwarded

	all, err := uc.List(ctx, ListInput{AgentID: agentA})
	if err != nil || len(all) != 2 {
		t.Fatalf("all: %v / %d", err, len(all))
	}
	got, _ := uc.List(ctx, ListInput{AgentID: agentA, Search: "ann@"})
	if len(got) != 1 || got[0].ApplicationID != a2.ApplicationID {
		t.Fatalf("search: %+v", got)
	}
	got, _ = uc.List(ctx, ListInput{AgentID: agentA, Status: "pending"})
	if len(got) != 1 || got[0].ApplicationID != a1.ApplicationID {
		t.Fatalf("status filter: %+v", got)
	}
	if _, err := uc.List(ctx, ListInput{AgentID: agentA, Status: "bogus"}); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("bogus status: %v", err)
	}
}

func TestStats(t *testing.T) {
	uc := NewUsecase(&applicationmock.Repo{
		CountByStatusFn: func(ctx context.Context, agentID string) (map[domain.Status]int64, error) {
			return map[domain.Status]int64{domain.StatusPending: 3, domain.StatusApproved: 1}, nil
		},
	}, nil)
	s, err := uc.Stats(context.Background(), agentA)
	if err != nil {
		t.Fatalf("Stats err: %v", err)
	}
	if s.Total != 4 || s.ByStatus["pending"] != 3 || s.ByStatus["rejected"] != 0 {
		t.Fatalf("stats=%+v", s)
	}
	if len(s.ByStatus) != len(domain.Statuses) {
		t.Fatalf("every status must be present: %+v", s.ByStatus)
	}
}

func TestDelete_Scoped(t *testing.T) {
	deleted := ""
	repo := &applicationmock.Repo{
		GetByApplicationIDFn: func(ctx context.Context, id string) (*domain.Application, error) {
			return &domain.Application{ApplicationID: id, AgentID: agentA, PersonalInfo: datatypes.NewJSONType(domain.PersonalInfo{})}, nil
		},
		DeleteFn: func(ctx context.Context, id string) error { deleted = id; return nil },
	}
	uc := NewUsecase(repo, nil)
	if err := uc.Delete(context.Background(), agentB, "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("other agent: want ErrNotFound, got %v", err)
	}
	if err := uc.Delete(context.Background(), agentA, "x"); err != nil || deleted != "x" {
		t.Fatalf("owner delete: %v / %q", err, deleted)
	}
}
