// internal/domain/healer/entity.go
package healer

// Healer is a directory card
type Healer struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Rating       float64  `json:"rating"`
	ReviewsCount int      `json:"reviews_count"`
	Specialties  []string `json:"specialties"`
	Bio          string   `json:"bio"`
	Price        float64  `json:"price"`
	Pricing      string   `json:"pricing,omitempty"`
	Availability []string `json:"availability"`
	Category     string   `json:"category,omitempty"`
	Location     string   `json:"location,omitempty"`
	AvatarURL    string   `json:"avatar_url,omitempty"`
}

// ListResult is a directory listing. Fallback is set when storage was
// unavailable and the built-in directory was served instead.
type ListResult struct {
	Healers  []Healer `json:"healers"`
	Category string   `json:"category"`
	Fallback bool     `json:"fallback"`
}

// Category is a healer category shown as a filter chip
type Category struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// CategoryAll disables category filtering
const CategoryAll = "all"

// Categories lists the filter chips of the directory in display order
var Categories = []Category{
	{CategoryAll, "All Healers"},
	{"spiritual", "Spiritual Life Coaches"},
	{"ayurveda", "Ayurvedic Healers"},
	{"sound", "Sound Healing Practitioners"},
	{"breathwork", "Breathwork Coaches"},
	{"crystal", "Crystal Healing Experts"},
	{"manifestation", "Manifestation Coaches"},
}

// CategoryLabel maps a category key such as "ayurveda" to its label
func CategoryLabel(key string) (string, bool) {
	if key == CategoryAll {
		return "", false
	}
	for _, c := range Categories {
		if c.Key == key {
			return c.Label, true
		}
	}
	return "", false
}
