package route

import "time"

// Difficulty grades a route. Values match the catalog's display language.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "初级"
	DifficultyIntermediate Difficulty = "中级"
	DifficultyAdvanced     Difficulty = "高级"
	DifficultyExpert       Difficulty = "专业级"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyExpert:
		return true
	}
	return false
}

type Route struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	DistanceKm  float64    `json:"distance_km"`
	ElevationM  float64    `json:"elevation_m"`
	DurationH   float64    `json:"duration_h"`
	Difficulty  Difficulty `json:"difficulty"`
	HotScore    float64    `json:"hot_score"`
	Tags        string     `json:"tags"`
	CoverURL    string     `json:"cover_url"`
	Description string     `json:"description"`
	SourceURL   string     `json:"source_url"`
	Location    string     `json:"location"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Filter narrows catalog listings. Zero thresholds fall back to the
// defaults for day hikes (back before dark, no overnight stay).
type Filter struct {
	Location     string  `json:"location"`
	MaxDistance  float64 `json:"max_distance"`
	MaxElevation float64 `json:"max_elevation"`
	MaxDuration  float64 `json:"max_duration"`
	Limit        int     `json:"limit"`
	Offset       int     `json:"offset"`
}

const (
	defaultMaxDistance  = 15
	defaultMaxElevation = 800
	defaultMaxDuration  = 6
	defaultLimit        = 3
)

func (f Filter) normalize() Filter {
	if f.MaxDistance <= 0 {
		f.MaxDistance = defaultMaxDistance
	}
	if f.MaxElevation <= 0 {
		f.MaxElevation = defaultMaxElevation
	}
	if f.MaxDuration <= 0 {
		f.MaxDuration = defaultMaxDuration
	}
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// SeedReport summarizes a batch load of the built-in route dataset.
type SeedReport struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}
