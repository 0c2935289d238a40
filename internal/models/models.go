package models

import (
	"strings"
	"time"
)

// SkillsUnknown is stored when a posting has no skills listed.
const SkillsUnknown = "unknown"

type Job struct {
	ID          uint    `gorm:"primaryKey;autoIncrement;<-:create" json:"id"`
	Title       string  `gorm:"not null" json:"title"`
	Company     string  `gorm:"not null" json:"company"`
	Location    string  `gorm:"not null" json:"location"`
	Pay         *string `json:"pay"`
	PostingDate string  `gorm:"index" json:"posting_date"`
	Description string  `gorm:"type:text" json:"description"`
	Skills      string  `gorm:"not null;default:'unknown'" json:"skills"`
	// Nil for seed postings.
	OwnerID   *string   `gorm:"index" json:"owner_id"`
	CreatedAt time.Time `gorm:"<-:create" json:"created_at"`
}

func (Job) TableName() string {
	return "jobs"
}

// ParsedFilter is the structured form of a natural-language search. A nil or
// blank field places no constraint on results.
type ParsedFilter struct {
	JobTitle    *string  `json:"job_title"`
	Location    *string  `json:"location"`
	Skills      Keywords `json:"skills"`
	Seniority   *string  `json:"seniority"`
	Intent      *string  `json:"intent"`
	SalaryRange *string  `json:"salary_range"`
}

func (f ParsedFilter) TitleValue() string {
	return deref(f.JobTitle)
}

func (f ParsedFilter) LocationValue() string {
	return deref(f.Location)
}

// ParsedJob is a normalized posting candidate produced from raw text. Every
// key is always present in its JSON form; unknown values are null.
type ParsedJob struct {
	Title       *string `json:"title"`
	Company     *string `json:"company"`
	Location    *string `json:"location"`
	Pay         *int64  `json:"pay"`
	Description *string `json:"description"`
	Skills      *string `json:"skills"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
