package workflow

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Evayanr/hike-organizer/internal/activity"
	"github.com/Evayanr/hike-organizer/internal/config"
	"github.com/Evayanr/hike-organizer/internal/poster"
	"github.com/Evayanr/hike-organizer/internal/route"
	"github.com/Evayanr/hike-organizer/internal/weather"
)

// ErrPrecondition means a transition was attempted before its predecessor
// artifact exists, or against a terminal workflow.
var ErrPrecondition = errors.New("workflow precondition not met")

// ErrNotFound means no live workflow carries the given id.
var ErrNotFound = errors.New("workflow not found")

type routeCatalog interface {
	Get(ctx context.Context, id string) (route.Route, error)
}

type optionSource interface {
	GenerateVoteOptions(ctx context.Context, year, month int, location string) []weather.VoteOption
	Forecast(ctx context.Context, date time.Time, location string) string
}

type posterMaker interface {
	Compose(r route.Route, theme string, background image.Image, voteURL string, options []weather.VoteOption) (image.Image, error)
	Save(img image.Image) (string, error)
}

type activityStore interface {
	Insert(ctx context.Context, input activity.Activity) (activity.Activity, error)
	ReplaceVoteOptions(ctx context.Context, activityID string, options []activity.VoteOption) ([]activity.VoteOption, error)
	MaxVoteOption(ctx context.Context, activityID string) (activity.VoteOption, error)
}

type notifier interface {
	SendPoster(ctx context.Context, posterRef, voteURL string) error
	SendVoteResult(ctx context.Context, selectedDate, weather string) error
	SendWelcome(ctx context.Context, r route.Route, date string) error
}

// Service drives organizing runs through their stages. Workflows live in
// memory; nothing is durable until CreateGroup inserts the activity.
type Service struct {
	routes     routeCatalog
	weather    optionSource
	posters    posterMaker
	activities activityStore
	bot        notifier

	voteBaseURL string

	mu       sync.RWMutex
	registry map[string]*Workflow

	nowFn func() time.Time
}

func NewService(routes routeCatalog, wx optionSource, posters posterMaker, activities activityStore, bot notifier, cfg config.Config) *Service {
	return &Service{
		routes:      routes,
		weather:     wx,
		posters:     posters,
		activities:  activities,
		bot:         bot,
		voteBaseURL: strings.TrimRight(cfg.VoteBaseURL, "/"),
		registry:    make(map[string]*Workflow),
		nowFn:       time.Now,
	}
}

// Create registers a fresh workflow and returns it.
func (s *Service) Create() *Workflow {
	wf := &Workflow{
		ID:        uuid.NewString(),
		CreatedAt: s.nowFn(),
		Stage:     StageCreated,
	}
	s.mu.Lock()
	s.registry[wf.ID] = wf
	s.mu.Unlock()
	return wf
}

func (s *Service) Get(id string) (*Workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wf, ok := s.registry[id]
	if !ok {
		return nil, ErrNotFound
	}
	return wf, nil
}

func requireStage(wf *Workflow, allowed ...Stage) error {
	for _, stage := range allowed {
		if wf.Stage == stage {
			return nil
		}
	}
	return fmt.Errorf("%w: stage is %s", ErrPrecondition, wf.Stage)
}

// SelectRoute pins the workflow to a catalog route.
func (s *Service) SelectRoute(ctx context.Context, wf *Workflow, routeID string) error {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	if err := requireStage(wf, StageCreated, StageRouteSelected); err != nil {
		return err
	}
	r, err := s.routes.Get(ctx, routeID)
	if err != nil {
		return fmt.Errorf("lookup route: %w", err)
	}
	wf.Route = &r
	wf.Location = r.Location
	wf.Stage = StageRouteSelected
	return nil
}

// ThemeChoices lists poster theme suggestions for the selected route.
func (s *Service) ThemeChoices(wf *Workflow) ([]string, error) {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	if wf.Route == nil {
		return nil, fmt.Errorf("%w: no route selected", ErrPrecondition)
	}
	return poster.SuggestThemes(*wf.Route), nil
}

// ChooseTheme records the poster theme. Free text is allowed; the
// suggestion list is advisory.
func (s *Service) ChooseTheme(ctx context.Context, wf *Workflow, theme string) error {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	if err := requireStage(wf, StageRouteSelected, StageThemeChosen); err != nil {
		return err
	}
	if strings.TrimSpace(theme) == "" {
		return fmt.Errorf("%w: empty theme", ErrPrecondition)
	}
	wf.Theme = theme
	wf.Stage = StageThemeChosen
	return nil
}

// ChooseBackground records the poster background image.
func (s *Service) ChooseBackground(ctx context.Context, wf *Workflow, img image.Image) error {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	if err := requireStage(wf, StageThemeChosen, StageBackgroundChosen); err != nil {
		return err
	}
	if img == nil {
		return fmt.Errorf("%w: nil background image", ErrPrecondition)
	}
	wf.Background = img
	wf.Stage = StageBackgroundChosen
	return nil
}

// ChooseBackgroundURL downloads the image first; a failed download leaves
// the workflow unchanged so the caller can pick another candidate.
func (s *Service) ChooseBackgroundURL(ctx context.Context, wf *Workflow, url string) error {
	img, err := poster.DownloadImage(ctx, url)
	if err != nil {
		return err
	}
	return s.ChooseBackground(ctx, wf, img)
}

// GenerateVoteOptions drafts one option per weekend of the month.
// Re-invocation overwrites the previous draft.
func (s *Service) GenerateVoteOptions(ctx context.Context, wf *Workflow, year, month int, location string) error {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	if err := requireStage(wf, StageBackgroundChosen, StageVoteOptionsGenerated); err != nil {
		return err
	}
	if location == "" {
		location = wf.Location
	}
	options := s.weather.GenerateVoteOptions(ctx, year, month, location)
	if len(options) == 0 {
		return fmt.Errorf("%w: month %d-%d has no weekend dates", ErrPrecondition, year, month)
	}
	wf.Options = options
	wf.VoteYear = year
	wf.VoteMonth = month
	wf.Location = location
	wf.Stage = StageVoteOptionsGenerated
	return nil
}

// SetDeadline records the vote cutoff, which must lie in the future.
func (s *Service) SetDeadline(ctx context.Context, wf *Workflow, deadline time.Time) error {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	if err := requireStage(wf, StageVoteOptionsGenerated, StageDeadlineSet); err != nil {
		return err
	}
	if !deadline.After(s.nowFn()) {
		return fmt.Errorf("%w: deadline %s is not in the future", ErrPrecondition, deadline.Format(time.RFC3339))
	}
	wf.Deadline = deadline
	wf.Stage = StageDeadlineSet
	return nil
}

// GeneratePoster composes and saves the poster and mints the vote URL.
func (s *Service) GeneratePoster(ctx context.Context, wf *Workflow) error {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	if err := requireStage(wf, StageDeadlineSet, StagePosterGenerated); err != nil {
		return err
	}

	voteURL := fmt.Sprintf("%s/%d", s.voteBaseURL, s.nowFn().Unix())
	img, err := s.posters.Compose(*wf.Route, wf.Theme, wf.Background, voteURL, wf.Options)
	if err != nil {
		return fmt.Errorf("compose poster: %w", err)
	}
	path, err := s.posters.Save(img)
	if err != nil {
		return fmt.Errorf("save poster: %w", err)
	}
	wf.PosterPath = path
	wf.VoteURL = voteURL
	wf.Stage = StagePosterGenerated
	return nil
}

// Publish pushes the poster and vote link to the group. On delivery
// failure the stage does not advance; the caller retries explicitly.
func (s *Service) Publish(ctx context.Context, wf *Workflow) error {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	if err := requireStage(wf, StagePosterGenerated); err != nil {
		return err
	}
	if err := s.bot.SendPoster(ctx, wf.PosterPath, wf.VoteURL); err != nil {
		return err
	}
	wf.Stage = StagePublished
	return nil
}

// DecideDate fixes the activity date. An empty selection consults the
// persisted tally when an activity row already exists; otherwise a date
// must be supplied and must match one of the drafted options.
func (s *Service) DecideDate(ctx context.Context, wf *Workflow, selected string) error {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	if err := requireStage(wf, StagePublished); err != nil {
		return err
	}

	if selected == "" {
		if wf.ActivityID == "" {
			return fmt.Errorf("%w: no tally available, supply a date", ErrPrecondition)
		}
		winner, err := s.activities.MaxVoteOption(ctx, wf.ActivityID)
		if err != nil {
			return fmt.Errorf("consult tally: %w", err)
		}
		selected = winner.VoteDate
	}

	found := false
	for _, opt := range wf.Options {
		if opt.Label == selected {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s is not a drafted option", ErrPrecondition, selected)
	}

	wf.DecidedDate = selected
	wf.Stage = StageDateDecided

	// the result announcement is best effort; the decision itself stands
	if bareDate, err := time.Parse("2006-01-02", truncateLabel(selected)); err == nil {
		forecast := s.weather.Forecast(ctx, bareDate, wf.Location)
		if err := s.bot.SendVoteResult(ctx, selected, forecast); err != nil {
			log.Printf("vote result announcement failed: %v", err)
		}
	}
	return nil
}

// truncateLabel strips the weekday suffix from a "2006-01-02（周六）" label.
func truncateLabel(label string) string {
	if i := strings.Index(label, "（"); i >= 0 {
		return label[:i]
	}
	return label
}

// CreateGroup is the durability point: it inserts the activity, persists
// the vote options, and sends the welcome message. A failed welcome is
// logged but not fatal since the activity is already stored.
func (s *Service) CreateGroup(ctx context.Context, wf *Workflow) (activity.Activity, error) {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	if err := requireStage(wf, StageDateDecided); err != nil {
		return activity.Activity{}, err
	}

	activityDate, err := time.Parse("2006-01-02", truncateLabel(wf.DecidedDate))
	if err != nil {
		return activity.Activity{}, fmt.Errorf("parse decided date: %w", err)
	}

	record := activity.Activity{
		RouteID:      wf.Route.ID,
		Name:         fmt.Sprintf("%s - %s", wf.Route.Name, wf.DecidedDate),
		ActivityDate: activityDate,
		Status:       activity.StatusRecruiting,
		PosterURL:    wf.PosterPath,
		VoteURL:      wf.VoteURL,
		VoteDeadline: wf.Deadline,
		VoteMonth:    fmt.Sprintf("%d-%02d", wf.VoteYear, wf.VoteMonth),
		SelectedDate: wf.DecidedDate,
	}
	stored, err := s.activities.Insert(ctx, record)
	if err != nil {
		return activity.Activity{}, fmt.Errorf("insert activity: %w", err)
	}

	options := make([]activity.VoteOption, 0, len(wf.Options))
	for _, opt := range wf.Options {
		options = append(options, activity.VoteOption{
			ActivityID: stored.ID,
			VoteDate:   opt.Label,
			Weather:    opt.Weather,
		})
	}
	if _, err := s.activities.ReplaceVoteOptions(ctx, stored.ID, options); err != nil {
		return activity.Activity{}, fmt.Errorf("persist vote options: %w", err)
	}

	if err := s.bot.SendWelcome(ctx, *wf.Route, wf.DecidedDate); err != nil {
		log.Printf("welcome message for activity %s failed: %v", stored.ID, err)
	}

	wf.ActivityID = stored.ID
	wf.Stage = StageGroupCreated
	return stored, nil
}

// Cancel abandons the run from any non-terminal stage.
func (s *Service) Cancel(ctx context.Context, wf *Workflow) error {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	if wf.Stage.Terminal() {
		return fmt.Errorf("%w: workflow is %s", ErrPrecondition, wf.Stage)
	}
	wf.Stage = StageCancelled
	return nil
}
