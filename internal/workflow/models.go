package workflow

import (
	"image"
	"sync"
	"time"

	"github.com/Evayanr/hike-organizer/internal/route"
	"github.com/Evayanr/hike-organizer/internal/weather"
)

// Stage names a step of the organizing pipeline. Transitions only move
// forward; Cancelled is reachable from any non-terminal stage.
type Stage string

const (
	StageCreated              Stage = "created"
	StageRouteSelected        Stage = "route_selected"
	StageThemeChosen          Stage = "theme_chosen"
	StageBackgroundChosen     Stage = "background_chosen"
	StageVoteOptionsGenerated Stage = "vote_options_generated"
	StageDeadlineSet          Stage = "deadline_set"
	StagePosterGenerated      Stage = "poster_generated"
	StagePublished            Stage = "published"
	StageDateDecided          Stage = "date_decided"
	StageGroupCreated         Stage = "group_created"
	StageCancelled            Stage = "cancelled"
)

func (s Stage) Terminal() bool {
	return s == StageGroupCreated || s == StageCancelled
}

// Workflow carries the draft artifacts of one organizing run. All access
// goes through Service methods, which serialize on mu so two transitions
// can never interleave on the same workflow.
type Workflow struct {
	ID        string
	CreatedAt time.Time

	mu sync.Mutex

	Stage       Stage
	Route       *route.Route
	Theme       string
	Background  image.Image
	Options     []weather.VoteOption
	VoteYear    int
	VoteMonth   int
	Location    string
	Deadline    time.Time
	PosterPath  string
	VoteURL     string
	DecidedDate string
	ActivityID  string
}

// View is the JSON-safe snapshot handed to HTTP clients. The background
// image itself never leaves the process.
type View struct {
	ID            string               `json:"id"`
	Stage         Stage                `json:"stage"`
	RouteID       string               `json:"route_id,omitempty"`
	RouteName     string               `json:"route_name,omitempty"`
	Theme         string               `json:"theme,omitempty"`
	HasBackground bool                 `json:"has_background"`
	Options       []weather.VoteOption `json:"options,omitempty"`
	Deadline      *time.Time           `json:"deadline,omitempty"`
	PosterPath    string               `json:"poster_path,omitempty"`
	VoteURL       string               `json:"vote_url,omitempty"`
	DecidedDate   string               `json:"decided_date,omitempty"`
	ActivityID    string               `json:"activity_id,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

func (w *Workflow) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	v := View{
		ID:            w.ID,
		Stage:         w.Stage,
		Theme:         w.Theme,
		HasBackground: w.Background != nil,
		Options:       w.Options,
		PosterPath:    w.PosterPath,
		VoteURL:       w.VoteURL,
		DecidedDate:   w.DecidedDate,
		ActivityID:    w.ActivityID,
		CreatedAt:     w.CreatedAt,
	}
	if w.Route != nil {
		v.RouteID = w.Route.ID
		v.RouteName = w.Route.Name
	}
	if !w.Deadline.IsZero() {
		deadline := w.Deadline
		v.Deadline = &deadline
	}
	return v
}
