package dto

type VoiceSettingsRequest struct {
	VoiceID         string  `json:"voice_id"`
	Stability       float64 `json:"stability" binding:"omitempty,gte=0,lte=1"`
	SimilarityBoost float64 `json:"similarity_boost" binding:"omitempty,gte=0,lte=1"`
	Style           float64 `json:"style" binding:"omitempty,gte=0,lte=1"`
	UseSpeakerBoost *bool   `json:"use_speaker_boost"`
}

type VideoSettingsRequest struct {
	PersonaID     string `json:"persona_id"`
	BackgroundURL string `json:"background_url" binding:"omitempty,url"`
}

type GenerateVideoRequest struct {
	VoiceSettings VoiceSettingsRequest `json:"voice_settings"`
	VideoSettings VideoSettingsRequest `json:"video_settings"`
}
