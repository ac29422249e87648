package models

// RenditionURL es una URL prefirmada lista para el player.
type RenditionURL struct {
	Name   string `json:"name"`   // p.e. "1080p"
	Width  int    `json:"width"`
	Height int    `json:"height"`
	URL    string `json:"url"`
}

// PlaybackTicket es la respuesta de /play: URLs firmadas + sesión.
type PlaybackTicket struct {
	SessionID       string         `json:"sessionId"`
	VideoID         int            `json:"videoId"`
	ExpiresAt       int64          `json:"expiresAt"` // epoch unix
	Renditions      []RenditionURL `json:"renditions"`
	ResumeFrom      int            `json:"resumeFrom"` // segundos, 0 si nunca lo vio
	ThumbnailURL    string         `json:"thumbnailUrl,omitempty"`
	DurationSeconds int            `json:"durationSeconds,omitempty"`
}
