package chat

import (
	"strings"
)

// Topics the assistant recognises in a message
const (
	TopicAnxiety  = "anxiety"
	TopicSleep    = "sleep"
	TopicHealing  = "healing"
	TopicShopping = "shopping"
	TopicMood     = "mood"
	TopicTips     = "tips"
	TopicGeneral  = "general"
	TopicError    = "error"
)

// Recommendation points the user at a healer or product
type Recommendation struct {
	Type      string `json:"type"`
	Name      string `json:"name"`
	Specialty string `json:"specialty,omitempty"`
	Price     string `json:"price,omitempty"`
}

type topic struct {
	name            string
	keywords        []string
	reply           string
	suggestions     []string
	recommendations []Recommendation
}

// topics are matched in order; the first topic with a keyword in the
// message wins
var topics = []topic{
	{
		name:     TopicAnxiety,
		keywords: []string{"anxiety", "stress", "overwhelmed", "worried"},
		reply: "I hear you, and what you're feeling is completely valid. 💙 Anxiety and stress can be really tough, but you're not alone. " +
			"Some of our healers specialise in anxiety support with gentle breathwork, meditation and energy healing. ✨",
		suggestions: []string{"Show me anxiety specialists 🌸", "Meditation techniques 🧘‍♀️", "Calming products 🕯️", "Breathing exercises 🌬️"},
		recommendations: []Recommendation{
			{Type: "healer", Name: "Anxiety and stress relief specialist", Specialty: "Mindfulness & Stress Relief"},
			{Type: "product", Name: "Lavender Calm Blend", Price: "₹299"},
		},
	},
	{
		name:     TopicSleep,
		keywords: []string{"sleep", "insomnia", "tired", "rest"},
		reply: "Good sleep can be so elusive sometimes! 🌙 Our healers work with sleep challenges through yoga nidra, sound healing and natural remedies. " +
			"Let's get you the rest you deserve. ✨",
		suggestions: []string{"Sleep specialists 🌙", "Yoga Nidra sessions 🧘‍♀️", "Natural sleep aids 🌿", "Bedtime routines 💤"},
	},
	{
		name:     TopicHealing,
		keywords: []string{"healing", "healer", "therapy", "counseling"},
		reply: "What a beautiful step towards healing! 🌱 Finding the right healer matters, and our certified healers each bring their own gifts. " +
			"Let me help you find someone who feels right for you. 💕",
		suggestions: []string{"Browse all healers 🌿", "Energy healing 🔮", "Talk therapy 💬", "Spiritual guidance ✨"},
	},
	{
		name:     TopicShopping,
		keywords: []string{"product", "buy", "shop", "wellness"},
		reply: "Our wellness shop is full of natural products for every part of your journey. 🛍️✨ " +
			"Herbal teas, crystals, aromatherapy blends and supplements, all carefully chosen. 💕",
		suggestions: []string{"Show all products 🌟", "Herbal supplements 🌿", "Essential oils 🌸", "Healing crystals 💎"},
	},
	{
		name:     TopicMood,
		keywords: []string{"feeling", "day", "mood", "how are you"},
		reply: "Thank you for sharing with me! 🥰 I'm doing wonderfully. How has your day been treating you? " +
			"Every feeling you have is valid, and I'm here to listen. 💙✨",
		suggestions: []string{"I'm feeling great! 😊", "Having a tough day 💙", "Need some encouragement 🌟", "Want to share more 💬"},
	},
	{
		name:     TopicTips,
		keywords: []string{"tip", "advice", "wellness", "help"},
		reply: "Here's a little wellness wisdom! 🌸 Start your day with three deep breaths and an intention of kindness. " +
			"Drink plenty of water, and remember that rest isn't lazy, it's sacred. ✨💕",
		suggestions: []string{"More wellness tips 🌿", "Daily routines 🌅", "Self-care ideas 💆‍♀️", "Mindfulness practices 🧘‍♀️"},
	},
}

const (
	defaultReply = "I understand! Let me help you with that! 💕"
	errorReply   = "I'm having a tiny technical hiccup! 🌸 But I'm still here with you. " +
		"Tell me more about what you're looking for and I'll do my best to help! 💕"
)

var errorSuggestions = []string{"Find a healer 🌿", "Browse products 🛍️", "Wellness tips ✨", "Try again 🔄"}

// match returns the first topic whose keywords appear in message
func match(message string) (topic, bool) {
	input := strings.ToLower(message)
	for _, t := range topics {
		for _, kw := range t.keywords {
			if strings.Contains(input, kw) {
				return t, true
			}
		}
	}
	return topic{}, false
}
