package models

// ----- SUMMARY -----

// AdminAssetSummary representa el resumen de estados de assets del catálogo.
type AdminAssetSummary struct {
	TotalVideos int64 `json:"totalVideos"`
	NoSource    int64 `json:"noSource"`
	Pending     int64 `json:"pending"`
	Processing  int64 `json:"processing"`
	Ready       int64 `json:"ready"`
	Failed      int64 `json:"failed"`
}

// ----- PENDING -----

// PendingAssetVideo video con fuente registrada pero sin renditions listas.
type PendingAssetVideo struct {
	VideoID   int    `json:"videoId"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	SourceKey string `json:"sourceKey"`
	Error     string `json:"error,omitempty"`
}

// ----- REQUEUE -----

// RequeueAssetsRequest body de /admin/assets/requeue-missing.
type RequeueAssetsRequest struct {
	Limit         int  `json:"limit"`
	IncludeFailed bool `json:"includeFailed"`
}

// RequeueAssetsResult resultado del requeue.
type RequeueAssetsResult struct {
	Dispatched []int `json:"dispatched"` // videoIds reenviados
	Errors     int   `json:"errors"`
}
