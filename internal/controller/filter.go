package controller

import (
	"fmt"
	"strings"

	"taskflow/internal/service"
)

// Filter selects tasks by completion status.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterCompleted, FilterPending}

// ParseFilter returns the filter named s. An empty name means FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterCompleted, FilterPending:
		return f, nil
	default:
		return "", fmt.Errorf("invalid filter %q (want all, completed or pending)", s)
	}
}

// Next returns the filter following f in display order, wrapping around.
func (f Filter) Next() Filter {
	for i, g := range Filters {
		if g == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Match reports whether t passes the status filter.
func (f Filter) Match(t service.Task) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterPending:
		return !t.Completed
	default:
		return true
	}
}

// Apply returns the tasks that pass both the status filter and the
// case-insensitive substring query, in input order.
// The result is never nil.
func Apply(tasks []service.Task, f Filter, query string) []service.Task {
	query = strings.ToLower(query)

	out := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if !f.Match(t) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(t.Text), query) {
			continue
		}
		out = append(out, t)
	}
	return out
}
