package gym

import "slices"

// Snapshot is the whole client state. Values handed out by the store are
// always deep copies.
type Snapshot struct {
	Exercises []Exercise `json:"exercises"`
	Logs      []LogEntry `json:"logs"`
	// Plan holds exercise ids of today's workout, in insertion order.
	Plan []string `json:"currentWorkout"`
	// Completion maps a local date to the exercise ids marked done that day.
	Completion map[string][]string `json:"workoutDoneByDate"`
}

func EmptySnapshot() Snapshot {
	return Snapshot{
		Exercises:  []Exercise{},
		Logs:       []LogEntry{},
		Plan:       []string{},
		Completion: map[string][]string{},
	}
}

func (s Snapshot) Clone() Snapshot {
	c := Snapshot{
		Exercises:  append([]Exercise{}, s.Exercises...),
		Logs:       make([]LogEntry, 0, len(s.Logs)),
		Plan:       append([]string{}, s.Plan...),
		Completion: CloneCompletion(s.Completion),
	}
	for _, l := range s.Logs {
		c.Logs = append(c.Logs, l.Clone())
	}
	return c
}

func (s Snapshot) UserState() UserState {
	return UserState{
		Plan:       append([]string{}, s.Plan...),
		Completion: CloneCompletion(s.Completion),
	}
}

func (s Snapshot) ExerciseIndex(id string) int {
	return slices.IndexFunc(s.Exercises, func(e Exercise) bool { return e.ID == id })
}

func (s Snapshot) LogIndex(id string) int {
	return slices.IndexFunc(s.Logs, func(l LogEntry) bool { return l.ID == id })
}

// UserState is the per-user part of the state that is not an entity row:
// the workout plan and the per-day completion marks.
type UserState struct {
	Plan       []string            `json:"currentWorkout"`
	Completion map[string][]string `json:"workoutDoneByDate"`
}

func CloneCompletion(completion map[string][]string) map[string][]string {
	c := make(map[string][]string, len(completion))
	for date, ids := range completion {
		c[date] = append([]string{}, ids...)
	}
	return c
}

func IsDone(completion map[string][]string, date, exerciseID string) bool {
	return slices.Contains(completion[date], exerciseID)
}
