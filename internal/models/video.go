package models

// Estados del asset de un video.
const (
	AssetStatusNone       = "none"       // sin archivo fuente registrado
	AssetStatusPending    = "pending"    // fuente registrada, esperando renditions
	AssetStatusProcessing = "processing" // un nodo de assets lo está trabajando
	AssetStatusReady      = "ready"      // renditions listas, reproducible
	AssetStatusFailed     = "failed"
)

type CastMember struct {
	Name      string `json:"name" bson:"name"`
	Character string `json:"character,omitempty" bson:"character,omitempty"`
}

// Rendition es una variante de calidad generada por assetd.
type Rendition struct {
	Name      string `json:"name" bson:"name"`       // p.e. "1080p"
	File      string `json:"file" bson:"file"`       // nombre de archivo dentro del asset root
	Width     int    `json:"width" bson:"width"`
	Height    int    `json:"height" bson:"height"`
	Bitrate   int    `json:"bitrate" bson:"bitrate"` // kbps
	SizeBytes int64  `json:"sizeBytes,omitempty" bson:"sizeBytes,omitempty"`
}

// AssetInfo agrupa todo lo relativo al archivo de video.
type AssetInfo struct {
	Status     string      `json:"status" bson:"status"`
	SourceKey  string      `json:"sourceKey,omitempty" bson:"sourceKey,omitempty"` // archivo fuente en el asset root
	Renditions []Rendition `json:"renditions,omitempty" bson:"renditions,omitempty"`
	Error      string      `json:"error,omitempty" bson:"error,omitempty"`
	UpdatedAt  string      `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

type ViewStats struct {
	Count        int    `json:"count" bson:"count"`
	LastViewedAt string `json:"lastViewedAt,omitempty" bson:"lastViewedAt,omitempty"`
}

// RatingStats son contadores de pulgares, se mantienen incrementalmente.
type RatingStats struct {
	Likes    int `json:"likes" bson:"likes"`
	Dislikes int `json:"dislikes" bson:"dislikes"`
}

type VideoDoc struct {
	VideoID         int          `json:"videoId" bson:"videoId"`
	Title           string       `json:"title" bson:"title"`
	Year            *int         `json:"year,omitempty" bson:"year,omitempty"`
	Genres          []string     `json:"genres" bson:"genres"`
	MaturityRating  string       `json:"maturityRating" bson:"maturityRating"` // G|PG|PG-13|R
	Synopsis        string       `json:"synopsis,omitempty" bson:"synopsis,omitempty"`
	Cast            []CastMember `json:"cast,omitempty" bson:"cast,omitempty"`
	Director        string       `json:"director,omitempty" bson:"director,omitempty"`
	DurationSeconds int          `json:"durationSeconds,omitempty" bson:"durationSeconds,omitempty"`
	ThumbnailURL    string       `json:"thumbnailUrl,omitempty" bson:"thumbnailUrl,omitempty"`
	Asset           *AssetInfo   `json:"asset,omitempty" bson:"asset,omitempty"`
	ViewStats       *ViewStats   `json:"viewStats,omitempty" bson:"viewStats,omitempty"`
	RatingStats     *RatingStats `json:"ratingStats,omitempty" bson:"ratingStats,omitempty"`
	CreatedAt       string       `json:"createdAt" bson:"createdAt"`
	UpdatedAt       string       `json:"updatedAt" bson:"updatedAt"`
}

// Payload para crear un video (solo admin).
type VideoCreateRequest struct {
	Title           string       `json:"title"` // obligatorio
	Year            *int         `json:"year,omitempty"`
	Genres          []string     `json:"genres,omitempty"`
	MaturityRating  string       `json:"maturityRating,omitempty"` // default PG-13
	Synopsis        string       `json:"synopsis,omitempty"`
	Cast            []CastMember `json:"cast,omitempty"`
	Director        string       `json:"director,omitempty"`
	DurationSeconds int          `json:"durationSeconds,omitempty"`
	ThumbnailURL    string       `json:"thumbnailUrl,omitempty"`
}

// Payload para actualización parcial de video.
type VideoUpdateRequest struct {
	Title           *string      `json:"title,omitempty"`
	Year            *int         `json:"year,omitempty"`
	Genres          []string     `json:"genres,omitempty"`
	MaturityRating  *string      `json:"maturityRating,omitempty"`
	Synopsis        *string      `json:"synopsis,omitempty"`
	Cast            []CastMember `json:"cast,omitempty"`
	Director        *string      `json:"director,omitempty"`
	DurationSeconds *int         `json:"durationSeconds,omitempty"`
	ThumbnailURL    *string      `json:"thumbnailUrl,omitempty"`
}
