package query

import "github.com/Moustapha00864/Kaikai-dashbaord-app/internal/domain"

// Result bundles everything recomputed for one selection.
type Result struct {
	View    View       `json:"-"`
	Summary Summary    `json:"summary"`
	Groups  []GroupRow `json:"groups"`
}

// Run filters the table and derives the summary and grouped means in one
// pass. It holds no state and may be called concurrently.
func Run(table *domain.PreparedTable, c Criteria) Result {
	view := Apply(table, c)
	return Result{
		View:    view,
		Summary: Summarize(view),
		Groups:  GroupMeans(view),
	}
}
