package models

// Tipos de categoría del home.
const (
	CategoryKindGenre   = "genre"   // fila resuelta por género
	CategoryKindCurated = "curated" // fila con lista manual de videoIds
)

// CategoryDoc es una fila del catálogo ("Trending", "Terror", etc.).
type CategoryDoc struct {
	Slug     string `json:"slug" bson:"_id"`
	Title    string `json:"title" bson:"title"`
	Kind     string `json:"kind" bson:"kind"` // genre|curated
	Genre    string `json:"genre,omitempty" bson:"genre,omitempty"`
	VideoIDs []int  `json:"videoIds,omitempty" bson:"videoIds,omitempty"`
	Position int    `json:"position" bson:"position"` // orden en el home, ascendente
}

// CategoryRow es una fila ya resuelta para un perfil.
type CategoryRow struct {
	Slug   string     `json:"slug"`
	Title  string     `json:"title"`
	Videos []VideoDoc `json:"videos"`
}

// HomeScreen es la respuesta de /catalog/home.
type HomeScreen struct {
	ContinueWatching []ContinueWatchingItem `json:"continueWatching"`
	Rows             []CategoryRow          `json:"rows"`
}
