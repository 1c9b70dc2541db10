package gym

import "slices"

var Category = struct {
	Back      string
	Chest     string
	Shoulders string
	Legs      string
	Arms      string
	Core      string
}{
	Back:      "back",
	Chest:     "chest",
	Shoulders: "shoulders",
	Legs:      "legs",
	Arms:      "arms",
	Core:      "core",
}

// Categories is the closed set of categories, in display order.
var Categories = []string{
	Category.Back,
	Category.Chest,
	Category.Shoulders,
	Category.Legs,
	Category.Arms,
	Category.Core,
}

var categoryLabels = map[string]string{
	Category.Back:      "Back",
	Category.Chest:     "Chest",
	Category.Shoulders: "Shoulders",
	Category.Legs:      "Legs",
	Category.Arms:      "Arms",
	Category.Core:      "Core",
}

func IsValidCategory(category string) bool {
	return slices.Contains(Categories, category)
}

func CategoryLabel(category string) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return category
}
