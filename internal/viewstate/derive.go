package viewstate

import "todo/internal/service"

// State is the client's in-memory mirror of the task collection plus UI flags.
type State struct {
	Tasks   []service.Task
	Filter  Filter
	Loading bool
}

// Stats are counts over the unfiltered task list.
type Stats struct {
	Total     int `json:"total" yaml:"total"`
	Active    int `json:"active" yaml:"active"`
	Completed int `json:"completed" yaml:"completed"`
}

// View is the read-only projection of a State.
type View struct {
	Tasks   []service.Task `json:"tasks" yaml:"tasks"`
	Filter  Filter         `json:"filter" yaml:"filter"`
	Loading bool           `json:"loading" yaml:"loading"`
	Stats   Stats          `json:"stats" yaml:"stats"`

	// EmptyMessage is set only when Tasks is empty.
	EmptyMessage string `json:"empty_message,omitempty" yaml:"empty_message,omitempty"`
}

// Derive computes the filtered view and the summary counts. It never
// modifies s and the returned slice does not alias s.Tasks.
func Derive(s State) View {
	filter := s.Filter
	if !filter.Valid() {
		filter = FilterAll
	}

	v := View{
		Tasks:   make([]service.Task, 0, len(s.Tasks)),
		Filter:  filter,
		Loading: s.Loading,
	}
	for _, t := range s.Tasks {
		if t.Completed {
			v.Stats.Completed++
		} else {
			v.Stats.Active++
		}
		if filter.Match(t) {
			v.Tasks = append(v.Tasks, t)
		}
	}
	v.Stats.Total = len(s.Tasks)

	if len(v.Tasks) == 0 {
		v.EmptyMessage = filter.EmptyMessage()
	}
	return v
}

// replaceByID returns a copy of tasks with every record whose id matches
// updated.ID replaced in place.
func replaceByID(tasks []service.Task, updated service.Task) []service.Task {
	out := make([]service.Task, len(tasks))
	for i, t := range tasks {
		if t.ID == updated.ID {
			out[i] = updated
		} else {
			out[i] = t
		}
	}
	return out
}

// removeByID returns a copy of tasks without any record with the given id.
func removeByID(tasks []service.Task, id string) []service.Task {
	out := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

func findByID(tasks []service.Task, id string) (service.Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}
