package activity

import (
	"context"
	"errors"

	"github.com/Evayanr/hike-organizer/internal/db"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus     = errors.New("invalid status")
	ErrStatusRegression  = errors.New("status cannot move backwards")
	ErrNegativeVoteCount = errors.New("vote count must not be negative")
	ErrDeadlineUnset     = errors.New("vote deadline must be set first")
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Insert(ctx context.Context, input Activity) (Activity, error) {
	if input.Status == "" {
		input.Status = StatusPlanning
	}
	if !input.Status.Valid() {
		return Activity{}, ErrInvalidStatus
	}
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO activities (id, route_id, name, activity_date, status, poster_url, vote_url, vote_deadline, vote_month, selected_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at
	`, input.ID, input.RouteID, input.Name, input.ActivityDate, string(input.Status),
		input.PosterURL, input.VoteURL, input.VoteDeadline, input.VoteMonth, input.SelectedDate)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Activity{}, err
	}
	return input, nil
}

func (s *Service) Get(ctx context.Context, id string) (Activity, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, route_id, name, activity_date, status, poster_url, vote_url, vote_deadline, vote_month, selected_date, created_at
		FROM activities WHERE id=$1
	`, id)
	var a Activity
	if err := row.Scan(&a.ID, &a.RouteID, &a.Name, &a.ActivityDate, &a.Status, &a.PosterURL,
		&a.VoteURL, &a.VoteDeadline, &a.VoteMonth, &a.SelectedDate, &a.CreatedAt); err != nil {
		return Activity{}, err
	}
	return a, nil
}

func (s *Service) Update(ctx context.Context, id string, patch Activity) (Activity, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return Activity{}, err
	}
	if patch.Name != "" {
		a.Name = patch.Name
	}
	if !patch.ActivityDate.IsZero() {
		a.ActivityDate = patch.ActivityDate
	}
	if patch.PosterURL != "" {
		a.PosterURL = patch.PosterURL
	}
	if patch.VoteURL != "" {
		a.VoteURL = patch.VoteURL
	}
	if !patch.VoteDeadline.IsZero() {
		a.VoteDeadline = patch.VoteDeadline
	}
	if patch.VoteMonth != "" {
		a.VoteMonth = patch.VoteMonth
	}
	if patch.SelectedDate != "" {
		a.SelectedDate = patch.SelectedDate
	}

	_, err = s.db.Exec(ctx, `
		UPDATE activities
		SET name=$2, activity_date=$3, poster_url=$4, vote_url=$5, vote_deadline=$6, vote_month=$7, selected_date=$8
		WHERE id=$1
	`, a.ID, a.Name, a.ActivityDate, a.PosterURL, a.VoteURL, a.VoteDeadline, a.VoteMonth, a.SelectedDate)
	if err != nil {
		return Activity{}, err
	}
	return a, nil
}

// AdvanceStatus moves an activity forward; backward transitions are rejected.
func (s *Service) AdvanceStatus(ctx context.Context, id string, next Status) (Activity, error) {
	if !next.Valid() {
		return Activity{}, ErrInvalidStatus
	}
	a, err := s.Get(ctx, id)
	if err != nil {
		return Activity{}, err
	}
	if !a.Status.CanAdvanceTo(next) {
		return Activity{}, ErrStatusRegression
	}
	// voting must have a cutoff before the activity moves past recruiting
	if statusOrder[next] > statusOrder[StatusRecruiting] && a.VoteDeadline.IsZero() {
		return Activity{}, ErrDeadlineUnset
	}
	if _, err := s.db.Exec(ctx, `UPDATE activities SET status=$2 WHERE id=$1`, id, string(next)); err != nil {
		return Activity{}, err
	}
	a.Status = next
	return a, nil
}

// ReplaceVoteOptions deletes any existing options for the activity and
// inserts the batch, so regenerating after persistence never duplicates rows.
func (s *Service) ReplaceVoteOptions(ctx context.Context, activityID string, options []VoteOption) ([]VoteOption, error) {
	if _, err := s.db.Exec(ctx, `DELETE FROM vote_options WHERE activity_id=$1`, activityID); err != nil {
		return nil, err
	}
	saved := make([]VoteOption, 0, len(options))
	for _, opt := range options {
		opt.ActivityID = activityID
		row := s.db.QueryRow(ctx, `
			INSERT INTO vote_options (activity_id, vote_date, weather)
			VALUES ($1,$2,$3)
			RETURNING id, created_at
		`, activityID, opt.VoteDate, opt.Weather)
		if err := row.Scan(&opt.ID, &opt.CreatedAt); err != nil {
			return nil, err
		}
		saved = append(saved, opt)
	}
	return saved, nil
}

func (s *Service) ListVoteOptions(ctx context.Context, activityID string) ([]VoteOption, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, activity_id, vote_date, weather, vote_count, created_at
		FROM vote_options WHERE activity_id=$1
		ORDER BY vote_date
	`, activityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []VoteOption
	for rows.Next() {
		var opt VoteOption
		if err := rows.Scan(&opt.ID, &opt.ActivityID, &opt.VoteDate, &opt.Weather, &opt.VoteCount, &opt.CreatedAt); err != nil {
			return nil, err
		}
		options = append(options, opt)
	}
	return options, nil
}

func (s *Service) UpdateVoteCount(ctx context.Context, optionID int64, count int) error {
	if count < 0 {
		return ErrNegativeVoteCount
	}
	_, err := s.db.Exec(ctx, `UPDATE vote_options SET vote_count=$2 WHERE id=$1`, optionID, count)
	return err
}

// MaxVoteOption returns the leading option; equal counts resolve to the
// lowest id so repeated calls always agree.
func (s *Service) MaxVoteOption(ctx context.Context, activityID string) (VoteOption, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, activity_id, vote_date, weather, vote_count, created_at
		FROM vote_options WHERE activity_id=$1
		ORDER BY vote_count DESC, id ASC LIMIT 1
	`, activityID)
	var opt VoteOption
	if err := row.Scan(&opt.ID, &opt.ActivityID, &opt.VoteDate, &opt.Weather, &opt.VoteCount, &opt.CreatedAt); err != nil {
		return VoteOption{}, err
	}
	return opt, nil
}
