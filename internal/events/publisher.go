package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jacobbria/AZ-webApp/internal/apperrors"
	"github.com/jacobbria/AZ-webApp/internal/models"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const JobCreatedSubject = "jobs.created"

type JobCreated struct {
	JobID     uint      `json:"job_id"`
	Title     string    `json:"title"`
	Company   string    `json:"company"`
	Location  string    `json:"location"`
	OwnerID   *string   `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Publisher interface {
	PublishJobCreated(ctx context.Context, job *models.Job) error
	Close()
}

type natsPublisher struct {
	conn   *nats.Conn
	logger *zap.Logger
}

// NewPublisher connects to NATS. An empty url yields a publisher that
// drops events.
func NewPublisher(url string, timeout time.Duration, logger *zap.Logger) (Publisher, error) {
	if url == "" {
		logger.Info("NATS_URL not set; job events disabled")
		return NopPublisher{}, nil
	}

	conn, err := nats.Connect(url,
		nats.Name("job-board"),
		nats.Timeout(timeout),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, apperrors.External(apperrors.CodeUpstream, "connecting to NATS", err)
	}

	return &natsPublisher{conn: conn, logger: logger}, nil
}

func (p *natsPublisher) PublishJobCreated(ctx context.Context, job *models.Job) error {
	data, err := json.Marshal(JobCreated{
		JobID:     job.ID,
		Title:     job.Title,
		Company:   job.Company,
		Location:  job.Location,
		OwnerID:   job.OwnerID,
		CreatedAt: job.CreatedAt,
	})
	if err != nil {
		return apperrors.External(apperrors.CodeUpstream, "marshaling job event", err)
	}

	if err := p.conn.Publish(JobCreatedSubject, data); err != nil {
		return apperrors.External(apperrors.CodeUpstream, "publishing to NATS", err)
	}

	p.logger.Debug("published job event",
		zap.Uint("job_id", job.ID),
		zap.String("subject", JobCreatedSubject))
	return nil
}

func (p *natsPublisher) Close() {
	if p.conn != nil {
		p.conn.Drain()
	}
}

type NopPublisher struct{}

func (NopPublisher) PublishJobCreated(context.Context, *models.Job) error { return nil }

func (NopPublisher) Close() {}
