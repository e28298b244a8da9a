package catalog

import (
	"sort"
	"strings"
)

// Sort keys accepted by Filter.SortBy.
const (
	SortByRating     = "rating"
	SortByFee        = "fee"
	SortByExperience = "experience"
)

// Filter describes one search over the catalog. Zero values mean "no
// constraint"; an empty SortBy leaves the dataset order untouched.
type Filter struct {
	// Query matches case-insensitively against name, hospital,
	// specialty and location. Leading/trailing whitespace is ignored.
	Query string
	// Specialty requires an exact match when set.
	Specialty string
	// SortBy is one of the SortBy* keys.
	SortBy string
}

// Apply filters then sorts, returning a new slice. The input is never
// mutated; ties keep their relative dataset order.
func Apply(doctors []Doctor, f Filter) []Doctor {
	results := make([]Doctor, 0, len(doctors))

	query := strings.ToLower(strings.TrimSpace(f.Query))
	for _, d := range doctors {
		if f.Specialty != "" && d.Specialty != f.Specialty {
			continue
		}
		if query != "" && !matchesQuery(d, query) {
			continue
		}
		results = append(results, d)
	}

	switch f.SortBy {
	case SortByRating:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Rating > results[j].Rating
		})
	case SortByFee:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].ConsultationFee < results[j].ConsultationFee
		})
	case SortByExperience:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].ExperienceYears > results[j].ExperienceYears
		})
	}
	return results
}

func matchesQuery(d Doctor, query string) bool {
	return strings.Contains(strings.ToLower(d.Name), query) ||
		strings.Contains(strings.ToLower(d.Hospital), query) ||
		strings.Contains(strings.ToLower(d.Specialty), query) ||
		strings.Contains(strings.ToLower(d.Location), query)
}
