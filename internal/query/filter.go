package query

import "github.com/Moustapha00864/Kaikai-dashbaord-app/internal/domain"

// View is a filtered subset of prepared records, in table order. It owns its
// backing array.
type View []domain.PreparedRecord

// Apply returns the records whose station is selected, whose month is selected
// and whose temperature is at least MinTemp (inclusive).
func Apply(table *domain.PreparedTable, c Criteria) View {
	m := newMatcher(c)
	if m.empty() || table.Len() == 0 {
		return View{}
	}

	view := make(View, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		rec := table.At(i)
		if m.match(rec) {
			view = append(view, rec)
		}
	}
	return view
}
