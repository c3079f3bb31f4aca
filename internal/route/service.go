package route

import (
	"context"
	"errors"

	"github.com/Evayanr/hike-organizer/internal/db"

	"github.com/google/uuid"
)

var ErrInvalidDifficulty = errors.New("invalid difficulty")

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Insert(ctx context.Context, input Route) (Route, error) {
	if input.Difficulty == "" {
		input.Difficulty = DifficultyBeginner
	}
	if !input.Difficulty.Valid() {
		return Route{}, ErrInvalidDifficulty
	}
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO routes (id, name, distance_km, elevation_m, duration_h, difficulty, hot_score, tags, cover_url, description, source_url, location)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING created_at
	`, input.ID, input.Name, input.DistanceKm, input.ElevationM, input.DurationH, string(input.Difficulty),
		input.HotScore, input.Tags, input.CoverURL, input.Description, input.SourceURL, input.Location)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Route{}, err
	}
	return input, nil
}

func (s *Service) Get(ctx context.Context, id string) (Route, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, distance_km, elevation_m, duration_h, difficulty, hot_score, tags, cover_url, description, source_url, location, created_at
		FROM routes WHERE id=$1
	`, id)
	var r Route
	if err := row.Scan(&r.ID, &r.Name, &r.DistanceKm, &r.ElevationM, &r.DurationH, &r.Difficulty,
		&r.HotScore, &r.Tags, &r.CoverURL, &r.Description, &r.SourceURL, &r.Location, &r.CreatedAt); err != nil {
		return Route{}, err
	}
	return r, nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]Route, error) {
	f = f.normalize()
	rows, err := s.db.Query(ctx, `
		SELECT id, name, distance_km, elevation_m, duration_h, difficulty, hot_score, tags, cover_url, description, source_url, location, created_at
		FROM routes
		WHERE distance_km <= $1 AND elevation_m <= $2 AND duration_h <= $3
		  AND ($4 = '' OR location LIKE '%' || $4 || '%')
		ORDER BY hot_score DESC
		LIMIT $5 OFFSET $6
	`, f.MaxDistance, f.MaxElevation, f.MaxDuration, f.Location, f.Limit, f.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []Route
	for rows.Next() {
		var r Route
		if err := rows.Scan(&r.ID, &r.Name, &r.DistanceKm, &r.ElevationM, &r.DurationH, &r.Difficulty,
			&r.HotScore, &r.Tags, &r.CoverURL, &r.Description, &r.SourceURL, &r.Location, &r.CreatedAt); err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	return routes, nil
}

func (s *Service) Count(ctx context.Context, f Filter) (int, error) {
	f = f.normalize()
	var count int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM routes
		WHERE distance_km <= $1 AND elevation_m <= $2 AND duration_h <= $3
		  AND ($4 = '' OR location LIKE '%' || $4 || '%')
	`, f.MaxDistance, f.MaxElevation, f.MaxDuration, f.Location).Scan(&count)
	return count, err
}

func (s *Service) exists(ctx context.Context, name, location string) (bool, error) {
	var ok bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM routes WHERE name=$1 AND location=$2)
	`, name, location).Scan(&ok)
	return ok, err
}

// Seed loads the built-in dataset for a location, skipping routes whose
// exact name already exists in the same location.
func (s *Service) Seed(ctx context.Context, location string) (SeedReport, error) {
	dataset := SeedRoutes(location)
	report := SeedReport{Total: len(dataset)}
	for _, r := range dataset {
		present, err := s.exists(ctx, r.Name, r.Location)
		if err != nil {
			return report, err
		}
		if present {
			report.Skipped++
			continue
		}
		if _, err := s.Insert(ctx, r); err != nil {
			return report, err
		}
		report.Inserted++
	}
	return report, nil
}

// SaveDiscovered persists discovered drafts with the same name dedupe as Seed.
func (s *Service) SaveDiscovered(ctx context.Context, drafts []Route) (SeedReport, error) {
	report := SeedReport{Total: len(drafts)}
	for _, r := range drafts {
		present, err := s.exists(ctx, r.Name, r.Location)
		if err != nil {
			return report, err
		}
		if present {
			report.Skipped++
			continue
		}
		if _, err := s.Insert(ctx, r); err != nil {
			return report, err
		}
		report.Inserted++
	}
	return report, nil
}
