package services

import (
	"strings"

	"github.com/jacobbria/AZ-webApp/internal/models"
	"go.uber.org/zap"
)

// FilterJobs narrows jobs by location, then title, then skills. Each step
// runs only when its filter value is non-blank and all matching is
// case-insensitive substring containment.
//
// Skill keywords are matched against Description, not Skills: seed postings
// carry no skills list, and search results have always been driven by the
// posting text.
func FilterJobs(jobs []models.Job, f models.ParsedFilter, logger *zap.Logger) []models.Job {
	if logger == nil {
		logger = zap.NewNop()
	}
	filtered := jobs

	if location := strings.ToLower(f.LocationValue()); location != "" {
		filtered = keep(filtered, func(j models.Job) bool {
			return strings.Contains(strings.ToLower(j.Location), location)
		})
		logger.Debug("Filtered by location", zap.String("location", location), zap.Int("remaining", len(filtered)))
	}

	if title := strings.ToLower(f.TitleValue()); title != "" {
		filtered = keep(filtered, func(j models.Job) bool {
			return strings.Contains(strings.ToLower(j.Title), title)
		})
		logger.Debug("Filtered by title", zap.String("title", title), zap.Int("remaining", len(filtered)))
	}

	if keywords := lowerKeywords(f.Skills); len(keywords) > 0 {
		filtered = keep(filtered, func(j models.Job) bool {
			desc := strings.ToLower(j.Description)
			for _, k := range keywords {
				if strings.Contains(desc, k) {
					return true
				}
			}
			return false
		})
		logger.Debug("Filtered by skills", zap.Strings("skills", keywords), zap.Int("remaining", len(filtered)))
	}

	return filtered
}

func keep(jobs []models.Job, pred func(models.Job) bool) []models.Job {
	out := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if pred(j) {
			out = append(out, j)
		}
	}
	return out
}

func lowerKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
