package domain

import "time"

type StoryType string

const (
	StoryTypeStory  StoryType = "story"
	StoryTypePoem   StoryType = "poem"
	StoryTypeScript StoryType = "script"
	StoryTypeBlog   StoryType = "blog"
)

type StoryLength string

const (
	LengthMicro  StoryLength = "micro"
	LengthShort  StoryLength = "short"
	LengthMedium StoryLength = "medium"
	LengthLong   StoryLength = "long"
)

type Story struct {
	ID         string      `dynamodbav:"id" json:"id"`
	Title      string      `dynamodbav:"title" json:"title"`
	Content    string      `dynamodbav:"content" json:"content"`
	Genre      string      `dynamodbav:"genre" json:"genre"`
	Type       StoryType   `dynamodbav:"type" json:"type"`
	Length     StoryLength `dynamodbav:"length" json:"length"`
	IsPublic   bool        `dynamodbav:"is_public" json:"is_public"`
	AuthorID   string      `dynamodbav:"author_id" json:"author_id"`
	AuthorName string      `dynamodbav:"author_name" json:"author_name"`
	CoverImage string      `dynamodbav:"cover_image,omitempty" json:"cover_image,omitempty"`
	AudioURL   string      `dynamodbav:"audio_url,omitempty" json:"audio_url,omitempty"`
	VideoURL   string      `dynamodbav:"video_url,omitempty" json:"video_url,omitempty"`
	LikesCount int         `dynamodbav:"likes_count" json:"likes_count"`
	ViewsCount int         `dynamodbav:"views_count" json:"views_count"`
	CreatedAt  time.Time   `dynamodbav:"created_at,unixtime" json:"created_at"`
	UpdatedAt  time.Time   `dynamodbav:"updated_at,unixtime" json:"updated_at"`
}

type VoiceSettings struct {
	VoiceID         string
	Stability       float64
	SimilarityBoost float64
	Style           float64
	UseSpeakerBoost bool
}

type VideoSettings struct {
	PersonaID     string
	BackgroundURL string
}

// VideoGenerationRequest is built per invocation and never persisted.
type VideoGenerationRequest struct {
	StoryID       string
	StoryTitle    string
	StoryContent  string
	VoiceSettings VoiceSettings
	VideoSettings VideoSettings
}

type VideoState string

const (
	VideoStateProcessing VideoState = "processing"
	VideoStateCompleted  VideoState = "completed"
	VideoStateFailed     VideoState = "failed"
)

type VideoGenerationResult struct {
	AudioURL          string     `json:"audio_url"`
	VideoID           string     `json:"video_id"`
	Status            VideoState `json:"status"`
	Progress          int        `json:"progress"`
	EstimatedTimeLeft int        `json:"estimated_time_left"`
	VideoStyle        string     `json:"video_style"`
}

// VideoProgress is emitted to subscribers on every tracker tick.
type VideoProgress struct {
	Status            VideoState `json:"status"`
	Progress          int        `json:"progress"`
	EstimatedTimeLeft int        `json:"estimated_time_left"`
	VideoURL          string     `json:"video_url,omitempty"`
	Message           string     `json:"message,omitempty"`
}

// VideoStatus is the raw job state reported by the avatar-video provider.
type VideoStatus struct {
	VideoID     string
	Status      string
	DownloadURL string
	VideoURL    string
	CreatedAt   time.Time
}

// ResolvedURL prefers the downloadable artifact over the hosted player page.
func (s VideoStatus) ResolvedURL() string {
	if s.DownloadURL != "" {
		return s.DownloadURL
	}
	return s.VideoURL
}
