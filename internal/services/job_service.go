package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jacobbria/AZ-webApp/internal/apperrors"
	"github.com/jacobbria/AZ-webApp/internal/dtos"
	"github.com/jacobbria/AZ-webApp/internal/events"
	"github.com/jacobbria/AZ-webApp/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type JobService struct {
	DB        *gorm.DB
	Publisher events.Publisher
	logger    *zap.Logger
}

func NewJobService(db *gorm.DB, publisher events.Publisher, logger *zap.Logger) *JobService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &JobService{
		DB:        db,
		Publisher: publisher,
		logger:    logger,
	}
}

// Initialize creates the jobs table and inserts the demo postings when the
// table is empty. It is safe to call on every start.
func (s *JobService) Initialize(ctx context.Context) error {
	db := s.DB.WithContext(ctx)
	if err := db.AutoMigrate(&models.Job{}); err != nil {
		return apperrors.Storage("Failed to initialize job store", err)
	}

	seeded := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		if lock := lockForSeeding(tx); lock != nil && lock.Error != nil {
			return lock.Error
		}
		var count int64
		if err := tx.Model(&models.Job{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		seed := SeedJobs()
		seeded = len(seed)
		return tx.CreateInBatches(seed, 50).Error
	})
	if err != nil {
		return apperrors.Storage("Failed to initialize job store", err)
	}

	if seeded > 0 {
		s.logger.Info("Seeded demo jobs", zap.Int("count", seeded))
	}
	return nil
}

// seedLockKey identifies the seeding advisory lock on postgres.
const seedLockKey = 7305201

// lockForSeeding serializes the count-then-insert across processes sharing a
// postgres database. The lock is released when the transaction ends. SQLite
// is single-writer and needs no lock, so nil is returned there.
func lockForSeeding(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec("SELECT pg_advisory_xact_lock(?)", seedLockKey)
}

func (s *JobService) ListAll(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	err := s.DB.WithContext(ctx).
		Order("posting_date DESC").Order("id ASC").
		Find(&jobs).Error
	if err != nil {
		return nil, apperrors.Storage("Failed to load jobs", err)
	}
	return jobs, nil
}

func (s *JobService) ListByOwner(ctx context.Context, ownerID string) ([]models.Job, error) {
	var jobs []models.Job
	err := s.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("posting_date DESC").Order("id ASC").
		Find(&jobs).Error
	if err != nil {
		return nil, apperrors.Storage("Failed to load your jobs", err)
	}
	return jobs, nil
}

func (s *JobService) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	err := s.DB.WithContext(ctx).First(&job, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Job not found")
	}
	if err != nil {
		return nil, apperrors.Storage("Failed to load job", err)
	}
	return &job, nil
}

// Save validates and inserts a posting, returning its new id. ownerID is
// nil for postings without an authenticated submitter.
func (s *JobService) Save(ctx context.Context, req *dtos.JobSaveRequest, ownerID *string) (uint, error) {
	job, err := jobFromRequest(req, ownerID, time.Now())
	if err != nil {
		return 0, err
	}

	if err := s.DB.WithContext(ctx).Create(job).Error; err != nil {
		return 0, apperrors.Storage("Failed to save job", err)
	}

	s.logger.Info("Job saved",
		zap.Uint("job_id", job.ID),
		zap.String("title", job.Title),
		zap.Stringp("owner_id", job.OwnerID))

	if err := s.Publisher.PublishJobCreated(ctx, job); err != nil {
		s.logger.Warn("Failed to publish job event", zap.Uint("job_id", job.ID), zap.Error(err))
	}

	return job.ID, nil
}

func jobFromRequest(req *dtos.JobSaveRequest, ownerID *string, now time.Time) (*models.Job, error) {
	required := []struct {
		name  string
		value string
	}{
		{"title", req.Title},
		{"company", req.Company},
		{"location", req.Location},
		{"description", req.Description},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return nil, apperrors.Validation(apperrors.CodeMissingField, "Missing required field: "+f.name)
		}
	}

	skills := strings.Join(req.Skills, ", ")
	if skills == "" {
		skills = models.SkillsUnknown
	}

	postingDate := strings.TrimSpace(req.PostingDate)
	if postingDate == "" {
		postingDate = now.UTC().Format("2006-01-02")
	}

	if ownerID != nil && strings.TrimSpace(*ownerID) == "" {
		ownerID = nil
	}

	return &models.Job{
		Title:       strings.TrimSpace(req.Title),
		Company:     strings.TrimSpace(req.Company),
		Location:    strings.TrimSpace(req.Location),
		Pay:         payText(req.Pay),
		PostingDate: postingDate,
		Description: strings.TrimSpace(req.Description),
		Skills:      skills,
		OwnerID:     ownerID,
	}, nil
}

// payText stores pay as text: numbers are formatted without a fraction when
// integral, blank strings become nil.
func payText(v any) *string {
	var s string
	switch p := v.(type) {
	case nil:
		return nil
	case string:
		s = strings.TrimSpace(p)
	case float64:
		s = strconv.FormatFloat(p, 'f', -1, 64)
	case int:
		s = strconv.Itoa(p)
	case int64:
		s = strconv.FormatInt(p, 10)
	default:
		return nil
	}
	if s == "" {
		return nil
	}
	return &s
}
