package transcode

import "streamflix/internal/models"

// Escalera fija de renditions que genera assetd.
var DefaultLadder = []models.Rendition{
	{Name: "1080p", Width: 1920, Height: 1080, Bitrate: 5000},
	{Name: "720p", Width: 1280, Height: 720, Bitrate: 2800},
	{Name: "480p", Width: 854, Height: 480, Bitrate: 1200},
}

// PrepareTask es la tarea enviada desde el API a un nodo de assets cuando
// se registra (o re-encola) la fuente de un video.
type PrepareTask struct {
	VideoID    int                `json:"videoId"`
	SourceKey  string             `json:"sourceKey"`
	Renditions []models.Rendition `json:"renditions"` // escalera pedida, vacío = DefaultLadder
}

// PrepareResult es la respuesta del nodo.
type PrepareResult struct {
	VideoID    int                `json:"videoId"`
	Status     string             `json:"status"` // ready|failed
	Renditions []models.Rendition `json:"renditions,omitempty"`
	Error      string             `json:"error,omitempty"`
}
