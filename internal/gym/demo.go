package gym

import "fmt"

type demoExercise struct {
	name     string
	category string
	color    string
	label    string
}

var demoExercises = []demoExercise{
	{name: "Bench Press", category: Category.Chest, color: "38bdf8", label: "Bench"},
	{name: "Seated Row", category: Category.Back, color: "22c55e", label: "Row"},
	{name: "Barbell Squat", category: Category.Legs, color: "f97316", label: "Squat"},
	{name: "Standing Press", category: Category.Shoulders, color: "c026d3", label: "Press"},
	{name: "Barbell Curl", category: Category.Arms, color: "facc15", label: "Curl"},
	{name: "Hanging Leg Raise", category: Category.Core, color: "14b8a6", label: "Core"},
}

// DemoExercises returns one sample exercise per category. IDs are left for
// the caller to assign; CreatedAt is spaced one second apart from now.
func DemoExercises(now int64) []Exercise {
	out := make([]Exercise, 0, len(demoExercises))
	for i, d := range demoExercises {
		out = append(out, Exercise{
			Name:      d.name,
			Category:  d.category,
			Image:     fmt.Sprintf("https://placehold.co/600x400/%s/000000?text=%s", d.color, d.label),
			CreatedAt: now + int64(i),
		})
	}
	return out
}
