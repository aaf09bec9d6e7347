package healer

// fallbackHealers is served when the profile store cannot be reached
var fallbackHealers = []Healer{
	{
		ID: "healer-1", Name: "Dr. Priya Sharma", Rating: 4.9, ReviewsCount: 247,
		Specialties:  []string{"Ayurveda", "Detox", "Nutrition"},
		Bio:          "Certified Ayurvedic practitioner with 15+ years of experience in holistic healing and wellness coaching.",
		Price:        120,
		Availability: []string{"Mon", "Wed", "Fri"},
		Category:     "Ayurvedic Healers",
	},
	{
		ID: "healer-2", Name: "Maya Patel", Rating: 4.8, ReviewsCount: 189,
		Specialties:  []string{"Crystal Healing", "Chakra Balancing", "Energy Work"},
		Bio:          "Master crystal healer specializing in energy alignment and spiritual transformation.",
		Price:        95,
		Availability: []string{"Tue", "Thu", "Sat"},
		Category:     "Crystal Healing Experts",
	},
	{
		ID: "healer-3", Name: "Ravi Kumar", Rating: 4.7, ReviewsCount: 156,
		Specialties:  []string{"Sound Healing", "Meditation", "Tibetan Bowls"},
		Bio:          "Sound healing practitioner trained in traditional Tibetan techniques for deep relaxation.",
		Price:        85,
		Availability: []string{"Mon", "Thu", "Sun"},
		Category:     "Sound Healing Practitioners",
	},
	{
		ID: "healer-4", Name: "Ananya Gupta", Rating: 4.9, ReviewsCount: 203,
		Specialties:  []string{"Breathwork", "Pranayama", "Stress Relief"},
		Bio:          "Certified breathwork coach helping clients find balance through breathing techniques.",
		Price:        110,
		Availability: []string{"Wed", "Fri", "Sat"},
		Category:     "Breathwork Coaches",
	},
	{
		ID: "healer-5", Name: "Arjun Singh", Rating: 4.8, ReviewsCount: 178,
		Specialties:  []string{"Life Coaching", "Manifestation", "Spiritual Growth"},
		Bio:          "Spiritual life coach helping people discover their purpose.",
		Price:        130,
		Availability: []string{"Tue", "Thu", "Sun"},
		Category:     "Spiritual Life Coaches",
	},
	{
		ID: "healer-6", Name: "Kavya Menon", Rating: 4.6, ReviewsCount: 134,
		Specialties:  []string{"Reiki", "Energy Healing", "Wellness"},
		Bio:          "Reiki master focused on restoring balance and natural healing.",
		Price:        100,
		Availability: []string{"Mon", "Fri", "Sun"},
		Category:     "Spiritual Life Coaches",
	},
	{
		ID: "healer-7", Name: "Sarika Jain", Rating: 4.9, ReviewsCount: 165,
		Specialties:  []string{"Manifestation", "Law of Attraction", "Vision Boarding"},
		Bio:          "Manifestation coach helping clients align with what they want to create.",
		Price:        140,
		Availability: []string{"Mon", "Wed", "Sat"},
		Category:     "Manifestation Coaches",
	},
}

// Fallback returns a copy of the built-in directory
func Fallback() []Healer {
	out := make([]Healer, len(fallbackHealers))
	copy(out, fallbackHealers)
	return out
}
