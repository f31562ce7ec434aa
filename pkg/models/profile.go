package models

// TopicListRequest adds or removes entries from one of the profile's string
// sets (blocked topics, blocked channels, preferred topics).
type TopicListRequest struct {
	Values []string `json:"values" validate:"required,min=1,max=100,dive,min=1,max=100"`
}

type TopicListResponse struct {
	Values []string `json:"values"`
}

type OnboardingRequest struct {
	PreferredTopics []string `json:"preferred_topics,omitempty" validate:"max=50,dive,min=1,max=100"`
}

// ProfileStats is a read-only summary of the learned profile exposed for
// debugging and the settings screen.
type ProfileStats struct {
	TotalInteractions   int         `json:"total_interactions"`
	ConsecutiveSkips    int         `json:"consecutive_skips"`
	TopicCount          int         `json:"topic_count"`
	TrackedChannels     int         `json:"tracked_channels"`
	OnboardingComplete  bool        `json:"onboarding_complete"`
	Persona             FlowPersona `json:"persona"`
	TopTopics           []string    `json:"top_topics,omitempty"`
	BlockedTopicCount   int         `json:"blocked_topic_count"`
	BlockedChannelCount int         `json:"blocked_channel_count"`
}
