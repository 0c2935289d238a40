package services

import (
	"testing"

	"github.com/jacobbria/AZ-webApp/internal/models"
)

func ids(jobs []models.Job) map[string]bool {
	out := make(map[string]bool, len(jobs))
	for _, j := range jobs {
		out[j.Title] = true
	}
	return out
}

func sameSet(a, b []models.Job) bool {
	if len(a) != len(b) {
		return false
	}
	ma := ids(a)
	for _, j := range b {
		if !ma[j.Title] {
			return false
		}
	}
	return true
}

func TestFilterRemotePython(t *testing.T) {
	f := models.ParsedFilter{Location: strPtr("Remote"), Skills: models.Keywords{"python"}}
	got := FilterJobs(SeedJobs(), f, nil)

	want := map[string]bool{"Senior Python Developer": true, "Python Data Engineer": true}
	if len(got) != len(want) {
		t.Fatalf("got %d jobs (%v), want %d", len(got), ids(got), len(want))
	}
	for _, j := range got {
		if !want[j.Title] {
			t.Errorf("unexpected job %q", j.Title)
		}
	}
}

func TestFilterNoConstraintsReturnsAll(t *testing.T) {
	seed := SeedJobs()
	blank := "  "
	got := FilterJobs(seed, models.ParsedFilter{JobTitle: &blank, Skills: models.Keywords{}}, nil)
	if len(got) != len(seed) {
		t.Errorf("got %d, want %d", len(got), len(seed))
	}
}

func TestFilterCaseInsensitiveTitle(t *testing.T) {
	got := FilterJobs(SeedJobs(), models.ParsedFilter{JobTitle: strPtr("DEVELOPER"), Location: strPtr("new york")}, nil)
	if len(got) != 0 {
		t.Errorf("expected no New York developer postings, got %v", ids(got))
	}
	got = FilterJobs(SeedJobs(), models.ParsedFilter{JobTitle: strPtr("ARCHITECT")}, nil)
	if len(got) != 2 {
		t.Errorf("got %v, want the two architect postings", ids(got))
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	f := models.ParsedFilter{Location: strPtr("ca"), JobTitle: strPtr("developer"), Skills: models.Keywords{"react", "kotlin"}}
	once := FilterJobs(SeedJobs(), f, nil)
	twice := FilterJobs(once, f, nil)
	if !sameSet(once, twice) {
		t.Errorf("filtering twice changed the result: %v vs %v", ids(once), ids(twice))
	}
}

func TestFilterOrderIndependent(t *testing.T) {
	loc := models.ParsedFilter{Location: strPtr("remote")}
	title := models.ParsedFilter{JobTitle: strPtr("developer")}
	skills := models.ParsedFilter{Skills: models.Keywords{"go", "python"}}
	all := models.ParsedFilter{Location: loc.Location, JobTitle: title.JobTitle, Skills: skills.Skills}

	want := FilterJobs(SeedJobs(), all, nil)
	orders := [][]models.ParsedFilter{
		{loc, title, skills},
		{loc, skills, title},
		{title, loc, skills},
		{title, skills, loc},
		{skills, loc, title},
		{skills, title, loc},
	}
	for _, order := range orders {
		got := SeedJobs()
		for _, step := range order {
			got = FilterJobs(got, step, nil)
		}
		if !sameSet(got, want) {
			t.Errorf("order produced %v, want %v", ids(got), ids(want))
		}
	}
}

// Skill keywords match the description text, not the stored skills list.
func TestFilterSkillsReadDescriptionNotSkillsField(t *testing.T) {
	jobs := []models.Job{
		{Title: "A", Location: "Remote", Description: "Backend work in Elixir.", Skills: "Rust"},
		{Title: "B", Location: "Remote", Description: "Rust services.", Skills: models.SkillsUnknown},
	}
	got := FilterJobs(jobs, models.ParsedFilter{Skills: models.Keywords{"Rust"}}, nil)
	if len(got) != 1 || got[0].Title != "B" {
		t.Errorf("got %v, want only B", ids(got))
	}
}
