package workflow

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/Evayanr/hike-organizer/internal/activity"
	"github.com/Evayanr/hike-organizer/internal/config"
	"github.com/Evayanr/hike-organizer/internal/notify"
	"github.com/Evayanr/hike-organizer/internal/route"
	"github.com/Evayanr/hike-organizer/internal/weather"
)

type fakeCatalog struct {
	routes map[string]route.Route
}

func (f *fakeCatalog) Get(_ context.Context, id string) (route.Route, error) {
	r, ok := f.routes[id]
	if !ok {
		return route.Route{}, errors.New("no rows in result set")
	}
	return r, nil
}

type fakeWeather struct{}

func (fakeWeather) GenerateVoteOptions(_ context.Context, year, month int, _ string) []weather.VoteOption {
	weekends := weather.Weekends(year, month)
	options := make([]weather.VoteOption, 0, len(weekends))
	for _, d := range weekends {
		options = append(options, weather.VoteOption{Date: d, Label: weather.DateLabel(d), Weather: "晴，8-16℃"})
	}
	return options
}

func (fakeWeather) Forecast(_ context.Context, _ time.Time, _ string) string {
	return "晴，8-16℃"
}

type fakePoster struct {
	composeErr error
	saveErr    error
	saved      int
}

func (f *fakePoster) Compose(route.Route, string, image.Image, string, []weather.VoteOption) (image.Image, error) {
	if f.composeErr != nil {
		return nil, f.composeErr
	}
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

func (f *fakePoster) Save(image.Image) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saved++
	return fmt.Sprintf("assets/poster_%d.png", f.saved), nil
}

type fakeActivities struct {
	inserted  []activity.Activity
	persisted []activity.VoteOption
	maxOption activity.VoteOption
	maxErr    error
}

func (f *fakeActivities) Insert(_ context.Context, input activity.Activity) (activity.Activity, error) {
	input.ID = fmt.Sprintf("act-%d", len(f.inserted)+1)
	f.inserted = append(f.inserted, input)
	return input, nil
}

func (f *fakeActivities) ReplaceVoteOptions(_ context.Context, activityID string, options []activity.VoteOption) ([]activity.VoteOption, error) {
	f.persisted = append(f.persisted[:0], options...)
	for i := range f.persisted {
		f.persisted[i].ID = int64(i + 1)
	}
	return f.persisted, nil
}

func (f *fakeActivities) MaxVoteOption(_ context.Context, _ string) (activity.VoteOption, error) {
	return f.maxOption, f.maxErr
}

type fakeBot struct {
	posterErr  error
	welcomeErr error
	resultErr  error
	sent       []string
}

func (f *fakeBot) SendPoster(_ context.Context, _, _ string) error {
	if f.posterErr != nil {
		return f.posterErr
	}
	f.sent = append(f.sent, "poster")
	return nil
}

func (f *fakeBot) SendVoteResult(_ context.Context, _, _ string) error {
	if f.resultErr != nil {
		return f.resultErr
	}
	f.sent = append(f.sent, "result")
	return nil
}

func (f *fakeBot) SendWelcome(_ context.Context, _ route.Route, _ string) error {
	if f.welcomeErr != nil {
		return f.welcomeErr
	}
	f.sent = append(f.sent, "welcome")
	return nil
}

type testDeps struct {
	catalog    *fakeCatalog
	posters    *fakePoster
	activities *fakeActivities
	bot        *fakeBot
}

func newTestService() (*Service, *testDeps) {
	deps := &testDeps{
		catalog: &fakeCatalog{routes: map[string]route.Route{
			"r1": {ID: "r1", Name: "东山环线", DistanceKm: 12.5, ElevationM: 650, DurationH: 5.5, Tags: "风景,茶文化,轻松", Location: "苏州东山"},
		}},
		posters:    &fakePoster{},
		activities: &fakeActivities{},
		bot:        &fakeBot{},
	}
	svc := NewService(deps.catalog, fakeWeather{}, deps.posters, deps.activities, deps.bot, config.Config{VoteBaseURL: "https://example.com/vote"})
	svc.nowFn = func() time.Time { return time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC) }
	return svc, deps
}

func advanceToDeadlineSet(t *testing.T, svc *Service) *Workflow {
	t.Helper()
	ctx := context.Background()
	wf := svc.Create()
	if err := svc.SelectRoute(ctx, wf, "r1"); err != nil {
		t.Fatalf("select route: %v", err)
	}
	if err := svc.ChooseTheme(ctx, wf, "山野徒步"); err != nil {
		t.Fatalf("choose theme: %v", err)
	}
	if err := svc.ChooseBackground(ctx, wf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("choose background: %v", err)
	}
	if err := svc.GenerateVoteOptions(ctx, wf, 2025, 11, ""); err != nil {
		t.Fatalf("generate options: %v", err)
	}
	if err := svc.SetDeadline(ctx, wf, time.Date(2025, 10, 25, 12, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}
	return wf
}

func TestFullPipeline(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()
	wf := advanceToDeadlineSet(t, svc)

	if len(wf.Options) != 10 {
		t.Fatalf("expected 10 weekend options for 2025-11, got %d", len(wf.Options))
	}
	if wf.Options[0].Label != "2025-11-01（周六）" {
		t.Fatalf("unexpected first option %s", wf.Options[0].Label)
	}

	if err := svc.GeneratePoster(ctx, wf); err != nil {
		t.Fatalf("generate poster: %v", err)
	}
	if wf.PosterPath == "" || !strings.HasPrefix(wf.VoteURL, "https://example.com/vote/") {
		t.Fatalf("poster artifacts missing: path=%q url=%q", wf.PosterPath, wf.VoteURL)
	}

	if err := svc.Publish(ctx, wf); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if wf.Stage != StagePublished {
		t.Fatalf("expected published stage, got %s", wf.Stage)
	}

	if err := svc.DecideDate(ctx, wf, "2025-11-02（周日）"); err != nil {
		t.Fatalf("decide date: %v", err)
	}

	stored, err := svc.CreateGroup(ctx, wf)
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	if stored.Status != activity.StatusRecruiting {
		t.Fatalf("expected recruiting status, got %s", stored.Status)
	}
	if stored.Name != "东山环线 - 2025-11-02（周日）" {
		t.Fatalf("unexpected activity name %s", stored.Name)
	}
	if stored.VoteMonth != "2025-11" {
		t.Fatalf("unexpected vote month %s", stored.VoteMonth)
	}
	if got := stored.ActivityDate.Format("2006-01-02"); got != "2025-11-02" {
		t.Fatalf("unexpected activity date %s", got)
	}
	if len(deps.activities.persisted) != 10 {
		t.Fatalf("expected persisted options, got %d", len(deps.activities.persisted))
	}
	if wf.Stage != StageGroupCreated {
		t.Fatalf("expected terminal stage, got %s", wf.Stage)
	}

	want := []string{"poster", "result", "welcome"}
	if len(deps.bot.sent) != len(want) {
		t.Fatalf("expected messages %v, got %v", want, deps.bot.sent)
	}
	for i, msg := range want {
		if deps.bot.sent[i] != msg {
			t.Fatalf("expected messages %v, got %v", want, deps.bot.sent)
		}
	}
}

func TestGeneratePosterRequiresDeadline(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	wf := svc.Create()
	if err := svc.SelectRoute(ctx, wf, "r1"); err != nil {
		t.Fatalf("select route: %v", err)
	}
	if err := svc.ChooseTheme(ctx, wf, "山野徒步"); err != nil {
		t.Fatalf("choose theme: %v", err)
	}
	if err := svc.ChooseBackground(ctx, wf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("choose background: %v", err)
	}
	if err := svc.GenerateVoteOptions(ctx, wf, 2025, 11, ""); err != nil {
		t.Fatalf("generate options: %v", err)
	}

	if err := svc.GeneratePoster(ctx, wf); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected precondition error, got %v", err)
	}
	if wf.Stage != StageVoteOptionsGenerated {
		t.Fatalf("stage moved on rejected transition: %s", wf.Stage)
	}
}

func TestPublishFailureDoesNotAdvance(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()
	wf := advanceToDeadlineSet(t, svc)
	if err := svc.GeneratePoster(ctx, wf); err != nil {
		t.Fatalf("generate poster: %v", err)
	}

	deps.bot.posterErr = notify.ErrNotConfigured
	if err := svc.Publish(ctx, wf); !errors.Is(err, notify.ErrNotConfigured) {
		t.Fatalf("expected delivery error, got %v", err)
	}
	if wf.Stage != StagePosterGenerated {
		t.Fatalf("stage advanced despite failed delivery: %s", wf.Stage)
	}

	// explicit retry succeeds once delivery works
	deps.bot.posterErr = nil
	if err := svc.Publish(ctx, wf); err != nil {
		t.Fatalf("retry publish: %v", err)
	}
	if wf.Stage != StagePublished {
		t.Fatalf("expected published after retry, got %s", wf.Stage)
	}
}

func TestDecideDateValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	wf := advanceToDeadlineSet(t, svc)
	if err := svc.GeneratePoster(ctx, wf); err != nil {
		t.Fatalf("generate poster: %v", err)
	}
	if err := svc.Publish(ctx, wf); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if err := svc.DecideDate(ctx, wf, "2025-12-25（周四）"); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected rejection of non-option date, got %v", err)
	}
	if err := svc.DecideDate(ctx, wf, ""); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected rejection without a tally, got %v", err)
	}

	// a manual pick that matches a drafted option goes through
	if err := svc.DecideDate(ctx, wf, "2025-11-08（周六）"); err != nil {
		t.Fatalf("decide date: %v", err)
	}
	if wf.DecidedDate != "2025-11-08（周六）" {
		t.Fatalf("unexpected decided date %s", wf.DecidedDate)
	}
}

func TestGenerateVoteOptionsOverwritesDraft(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	wf := svc.Create()
	if err := svc.SelectRoute(ctx, wf, "r1"); err != nil {
		t.Fatalf("select route: %v", err)
	}
	if err := svc.ChooseTheme(ctx, wf, "山野徒步"); err != nil {
		t.Fatalf("choose theme: %v", err)
	}
	if err := svc.ChooseBackground(ctx, wf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("choose background: %v", err)
	}
	if err := svc.GenerateVoteOptions(ctx, wf, 2025, 11, ""); err != nil {
		t.Fatalf("generate options: %v", err)
	}
	first := len(wf.Options)

	if err := svc.GenerateVoteOptions(ctx, wf, 2025, 12, ""); err != nil {
		t.Fatalf("regenerate options: %v", err)
	}
	if wf.VoteMonth != 12 {
		t.Fatalf("vote month not updated: %d", wf.VoteMonth)
	}
	for _, opt := range wf.Options {
		if !strings.HasPrefix(opt.Label, "2025-12") {
			t.Fatalf("stale option %s survived regeneration (had %d before)", opt.Label, first)
		}
	}
}

func TestSetDeadlineMustBeFuture(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	wf := svc.Create()
	if err := svc.SelectRoute(ctx, wf, "r1"); err != nil {
		t.Fatalf("select route: %v", err)
	}
	if err := svc.ChooseTheme(ctx, wf, "山野徒步"); err != nil {
		t.Fatalf("choose theme: %v", err)
	}
	if err := svc.ChooseBackground(ctx, wf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("choose background: %v", err)
	}
	if err := svc.GenerateVoteOptions(ctx, wf, 2025, 11, ""); err != nil {
		t.Fatalf("generate options: %v", err)
	}

	past := time.Date(2025, 10, 19, 12, 0, 0, 0, time.UTC)
	if err := svc.SetDeadline(ctx, wf, past); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected rejection of past deadline, got %v", err)
	}
}

func TestSelectRouteUnknown(t *testing.T) {
	svc, _ := newTestService()
	wf := svc.Create()
	if err := svc.SelectRoute(context.Background(), wf, "missing"); err == nil {
		t.Fatal("expected error for unknown route")
	}
	if wf.Stage != StageCreated {
		t.Fatalf("stage moved on failed lookup: %s", wf.Stage)
	}
}

func TestCancelBlocksFurtherTransitions(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	wf := svc.Create()
	if err := svc.Cancel(ctx, wf); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := svc.SelectRoute(ctx, wf, "r1"); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected precondition error after cancel, got %v", err)
	}
	if err := svc.Cancel(ctx, wf); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected cancel of terminal workflow to fail, got %v", err)
	}
}

func TestCreateGroupWelcomeFailureIsNotFatal(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()
	wf := advanceToDeadlineSet(t, svc)
	if err := svc.GeneratePoster(ctx, wf); err != nil {
		t.Fatalf("generate poster: %v", err)
	}
	if err := svc.Publish(ctx, wf); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := svc.DecideDate(ctx, wf, "2025-11-01（周六）"); err != nil {
		t.Fatalf("decide date: %v", err)
	}

	deps.bot.welcomeErr = notify.ErrDeliveryFailed
	stored, err := svc.CreateGroup(ctx, wf)
	if err != nil {
		t.Fatalf("create group should survive welcome failure: %v", err)
	}
	if stored.ID == "" || wf.Stage != StageGroupCreated {
		t.Fatalf("activity not durable: %+v stage=%s", stored, wf.Stage)
	}
}

func TestGetUnknownWorkflow(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
