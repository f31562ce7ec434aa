package models

// VideoItem is a candidate supplied by the feed/scraping layer. The engine
// treats it as a plain record; it has no knowledge of how it was fetched.
type VideoItem struct {
	ID              string `json:"id" validate:"required"`
	Title           string `json:"title"`
	ChannelID       string `json:"channel_id" validate:"required"`
	ChannelName     string `json:"channel_name"`
	ThumbnailURL    string `json:"thumbnail_url,omitempty"`
	DurationSeconds int    `json:"duration_seconds"` // 0 if unknown
	ViewCount       int64  `json:"view_count"`
	AgeText         string `json:"age_text"` // human-readable, e.g. "3 weeks ago"
	IsLive          bool   `json:"is_live"`
}

// RankedItem is a candidate with its final position and score after
// diversity re-ranking.
type RankedItem struct {
	VideoItem
	Score    float64 `json:"score"`
	Position int     `json:"position"`
}

type RankRequest struct {
	Candidates         []VideoItem `json:"candidates" validate:"required,min=1,max=500,dive"`
	SubscribedChannels []string    `json:"subscribed_channels,omitempty"`
	RecentTopics       []string    `json:"recent_topics,omitempty" validate:"max=50"`
}

type RankResponse struct {
	RequestID string       `json:"request_id"`
	Items     []RankedItem `json:"items"`
}
