// Package listing implements the client-state side of the job listing: pure
// filter/sort transforms over the currently loaded page of postings and the
// sliding pagination window. It never issues queries; the input is whatever
// page the caller already fetched.
package listing

import (
	"sort"
	"strings"

	"github.com/gartstein/jobboard/internal/jobboard/models"
)

// WindowSize is the maximum number of visible page numbers.
const WindowSize = 5

// Filter describes the interactive filter state applied to the active page.
type Filter struct {
	// Query matches title, company name and description, case-insensitive.
	Query string
	// Location matches the posting location, case-insensitive.
	Location string
	// Types restricts to the given employment types; empty means all.
	Types []string
	// Ascending sorts oldest-first when set; the default is newest-first.
	Ascending bool
}

// Apply filters and sorts the given postings, returning a new slice. The
// input is left untouched.
func (f Filter) Apply(jobs []*models.Job) []*models.Job {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	location := strings.ToLower(strings.TrimSpace(f.Location))

	typeSet := map[string]bool{}
	for _, t := range f.Types {
		typeSet[t] = true
	}

	out := make([]*models.Job, 0, len(jobs))
	for _, job := range jobs {
		if query != "" && !matchesQuery(job, query) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(job.Location), location) {
			continue
		}
		if len(typeSet) > 0 && !typeSet[string(job.Type)] {
			continue
		}
		out = append(out, job)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if f.Ascending {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func matchesQuery(job *models.Job, query string) bool {
	return strings.Contains(strings.ToLower(job.Title), query) ||
		strings.Contains(strings.ToLower(job.CompanyName), query) ||
		strings.Contains(strings.ToLower(job.Description), query)
}

// PageWindow returns the visible page numbers: a window of at most
// WindowSize pages centered on current, clamped at the first and last page.
func PageWindow(current, total int) []int {
	if total < 1 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	start := current - WindowSize/2
	if start < 1 {
		start = 1
	}
	end := start + WindowSize - 1
	if end > total {
		end = total
		start = end - WindowSize + 1
		if start < 1 {
			start = 1
		}
	}

	window := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		window = append(window, p)
	}
	return window
}
