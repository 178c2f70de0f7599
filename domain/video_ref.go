package domain

import "strings"

const (
	VideoProviderTavus = "tavus"
	VideoStylePersona  = "persona"
)

// VideoRef is the decoded form of a story's video_url field. The field is
// dual-purpose: while generation is pending it holds a job marker
// "tavus:<jobID>:<style>", and once resolved it holds a playable URL.
// The two forms are mutually exclusive.
type VideoRef struct {
	Provider string
	JobID    string
	Style    string
	URL      string
}

// Pending reports whether the reference is an unresolved job marker.
func (r VideoRef) Pending() bool {
	return r.JobID != "" && r.URL == ""
}

func (r VideoRef) Playable() bool {
	return r.URL != ""
}

// Marker encodes the job-pending form.
func (r VideoRef) Marker() string {
	style := r.Style
	if style == "" {
		style = VideoStylePersona
	}
	return r.Provider + ":" + r.JobID + ":" + style
}

// NewJobMarker builds the pending reference written by the orchestrator
// right after job submission.
func NewJobMarker(jobID, style string) VideoRef {
	if style == "" {
		style = VideoStylePersona
	}
	return VideoRef{Provider: VideoProviderTavus, JobID: jobID, Style: style}
}

// ParseVideoRef decodes a stored video_url field. An empty input returns a
// zero reference, which is neither pending nor playable.
func ParseVideoRef(raw string) VideoRef {
	if raw == "" {
		return VideoRef{}
	}
	if strings.HasPrefix(raw, VideoProviderTavus+":") {
		parts := strings.Split(strings.TrimPrefix(raw, VideoProviderTavus+":"), ":")
		ref := VideoRef{Provider: VideoProviderTavus, JobID: parts[0], Style: VideoStylePersona}
		if len(parts) > 1 && parts[1] != "" {
			ref.Style = parts[1]
		}
		return ref
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return VideoRef{URL: raw, Style: VideoStylePersona}
	}
	return VideoRef{}
}
