package services

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/jacobbria/AZ-webApp/internal/apperrors"
	"github.com/jacobbria/AZ-webApp/internal/dtos"
	"github.com/jacobbria/AZ-webApp/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestInitializeSeedsOnce(t *testing.T) {
	ctx := context.Background()
	s := newTestJobService(t)

	if err := s.Initialize(ctx); err != nil {
		t.Fatalf("first Initialize() error = %v", err)
	}
	if err := s.Initialize(ctx); err != nil {
		t.Fatalf("second Initialize() error = %v", err)
	}

	jobs, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(jobs) != len(SeedJobs()) {
		t.Errorf("got %d jobs after two Initialize calls, want %d", len(jobs), len(SeedJobs()))
	}
	for _, j := range jobs {
		if j.Skills != models.SkillsUnknown || j.OwnerID != nil {
			t.Errorf("seed job %d: skills=%q owner=%v", j.ID, j.Skills, j.OwnerID)
		}
	}
}

func TestInitializeConcurrentStartsSeedOnce(t *testing.T) {
	ctx := context.Background()
	first := newTestJobService(t)
	second := NewJobService(first.DB, nil, zap.NewNop())

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, s := range []*JobService{first, second} {
		wg.Add(1)
		go func(i int, s *JobService) {
			defer wg.Done()
			errs[i] = s.Initialize(ctx)
		}(i, s)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("Initialize() #%d error = %v", i, err)
		}
	}
	jobs, err := first.ListAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != len(SeedJobs()) {
		t.Errorf("got %d jobs, want %d", len(jobs), len(SeedJobs()))
	}
}

func TestLockForSeedingUsesAdvisoryLockOnPostgres(t *testing.T) {
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=test dbname=test sslmode=disable"}),
		&gorm.Config{DryRun: true, DisableAutomaticPing: true})
	if err != nil {
		t.Fatalf("open dry-run postgres: %v", err)
	}

	lock := lockForSeeding(db)
	if lock == nil {
		t.Fatal("no lock taken on postgres")
	}
	if sql := lock.Statement.SQL.String(); !strings.Contains(sql, "pg_advisory_xact_lock") {
		t.Errorf("lock SQL = %q", sql)
	}

	if lockForSeeding(newTestJobService(t).DB) != nil {
		t.Error("sqlite should not take an advisory lock")
	}
}

func TestListAllOrdersByPostingDateDesc(t *testing.T) {
	ctx := context.Background()
	s := newTestJobService(t)
	if err := s.Initialize(ctx); err != nil {
		t.Fatal(err)
	}

	jobs, err := s.ListAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(jobs); i++ {
		if jobs[i-1].PostingDate < jobs[i].PostingDate {
			t.Fatalf("jobs not ordered: %s before %s", jobs[i-1].PostingDate, jobs[i].PostingDate)
		}
	}
	if jobs[len(jobs)-1].PostingDate != "2025-02-01" {
		t.Errorf("oldest posting = %s, want 2025-02-01", jobs[len(jobs)-1].PostingDate)
	}
}

func TestSaveAndGetByIDAppliesDefaults(t *testing.T) {
	ctx := context.Background()
	s := newTestJobService(t)
	if err := s.Initialize(ctx); err != nil {
		t.Fatal(err)
	}

	req := &dtos.JobSaveRequest{
		Title:       "  Platform Engineer ",
		Company:     "Acme",
		Location:    "Remote",
		Pay:         "",
		PostingDate: "2025-03-01",
		Description: "Run the platform.",
	}
	id, err := s.Save(ctx, req, strPtr("user-1"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "Platform Engineer" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Skills != models.SkillsUnknown {
		t.Errorf("Skills = %q, want %q", got.Skills, models.SkillsUnknown)
	}
	if got.Pay != nil {
		t.Errorf("Pay = %q, want nil", *got.Pay)
	}
	if got.OwnerID == nil || *got.OwnerID != "user-1" {
		t.Errorf("OwnerID = %v", got.OwnerID)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestSaveNumericPayAndSkills(t *testing.T) {
	ctx := context.Background()
	s := newTestJobService(t)
	if err := s.Initialize(ctx); err != nil {
		t.Fatal(err)
	}

	id, err := s.Save(ctx, &dtos.JobSaveRequest{
		Title: "SRE", Company: "Acme", Location: "Austin, TX", Description: "Keep it up.",
		Pay: float64(120000), Skills: models.Keywords{"Go", "Kubernetes"},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.GetByID(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Pay == nil || *got.Pay != "120000" {
		t.Errorf("Pay = %v, want 120000", got.Pay)
	}
	if got.Skills != "Go, Kubernetes" {
		t.Errorf("Skills = %q", got.Skills)
	}
	if got.PostingDate == "" {
		t.Error("PostingDate should default to today")
	}
}

func TestSaveRejectsBlankRequiredFields(t *testing.T) {
	ctx := context.Background()
	s := newTestJobService(t)
	if err := s.Initialize(ctx); err != nil {
		t.Fatal(err)
	}
	before, _ := s.ListAll(ctx)

	base := dtos.JobSaveRequest{Title: "T", Company: "C", Location: "L", Description: "D"}
	cases := map[string]func(r *dtos.JobSaveRequest){
		"title":       func(r *dtos.JobSaveRequest) { r.Title = "   " },
		"company":     func(r *dtos.JobSaveRequest) { r.Company = "" },
		"location":    func(r *dtos.JobSaveRequest) { r.Location = "\t" },
		"description": func(r *dtos.JobSaveRequest) { r.Description = "\n" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			req := base
			mutate(&req)
			_, err := s.Save(ctx, &req, nil)
			if !apperrors.IsKind(err, apperrors.KindValidation) {
				t.Fatalf("Save() error = %v, want validation error", err)
			}
			if apperrors.PublicMessage(err) != "Missing required field: "+field {
				t.Errorf("message = %q", apperrors.PublicMessage(err))
			}
		})
	}

	after, _ := s.ListAll(ctx)
	if len(after) != len(before) {
		t.Errorf("rejected saves inserted rows: before=%d after=%d", len(before), len(after))
	}
}

func TestGetByIDNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestJobService(t)
	if err := s.Initialize(ctx); err != nil {
		t.Fatal(err)
	}
	_, err := s.GetByID(ctx, 9999)
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Errorf("GetByID() error = %v, want not found", err)
	}
}

func TestListByOwner(t *testing.T) {
	ctx := context.Background()
	s := newTestJobService(t)
	if err := s.Initialize(ctx); err != nil {
		t.Fatal(err)
	}
	req := dtos.JobSaveRequest{Title: "T", Company: "C", Location: "L", Description: "D"}
	for _, owner := range []string{"alice", "alice", "bob"} {
		o := owner
		if _, err := s.Save(ctx, &req, &o); err != nil {
			t.Fatal(err)
		}
	}

	alice, err := s.ListByOwner(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(alice) != 2 {
		t.Errorf("alice has %d jobs, want 2", len(alice))
	}
	nobody, err := s.ListByOwner(ctx, "carol")
	if err != nil {
		t.Fatal(err)
	}
	if len(nobody) != 0 {
		t.Errorf("carol has %d jobs, want 0", len(nobody))
	}
}

func TestIDsAreUniqueAndIncreasing(t *testing.T) {
	ctx := context.Background()
	s := newTestJobService(t)
	if err := s.Initialize(ctx); err != nil {
		t.Fatal(err)
	}
	req := dtos.JobSaveRequest{Title: "T", Company: "C", Location: "L", Description: "D"}
	var last uint
	for i := 0; i < 3; i++ {
		id, err := s.Save(ctx, &req, nil)
		if err != nil {
			t.Fatal(err)
		}
		if id <= last {
			t.Fatalf("id %d not greater than previous %d", id, last)
		}
		last = id
	}
}
