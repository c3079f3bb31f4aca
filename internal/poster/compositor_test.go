package poster

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Evayanr/hike-organizer/internal/config"
	"github.com/Evayanr/hike-organizer/internal/route"
	"github.com/Evayanr/hike-organizer/internal/weather"
)

func testRoute() route.Route {
	return route.Route{
		Name:       "东山环太湖步道",
		DistanceKm: 12.5,
		ElevationM: 300,
		DurationH:  4.5,
		Difficulty: route.DifficultyBeginner,
		Tags:       "风景,轻松",
		Location:   "苏州",
	}
}

func testOptions(n int) []weather.VoteOption {
	options := make([]weather.VoteOption, n)
	for i := range options {
		options[i] = weather.VoteOption{Label: "2025-11-01（周六）", Weather: "晴，8-16℃"}
	}
	return options
}

func TestComposeFixedDimensions(t *testing.T) {
	c := NewCompositor(config.Config{AssetsDir: t.TempDir()})

	backgrounds := []image.Image{
		image.NewRGBA(image.Rect(0, 0, 400, 300)),
		image.NewRGBA(image.Rect(0, 0, 4000, 3000)),
	}
	for _, bg := range backgrounds {
		img, err := c.Compose(testRoute(), "山野徒步", bg, "https://example.com/vote/1", testOptions(10))
		if err != nil {
			t.Fatalf("compose: %v", err)
		}
		bounds := img.Bounds()
		if bounds.Dx() != 1080 || bounds.Dy() != 1920 {
			t.Fatalf("expected 1080x1920, got %dx%d for background %v", bounds.Dx(), bounds.Dy(), bg.Bounds())
		}
	}
}

func TestComposeWithoutBackground(t *testing.T) {
	c := NewCompositor(config.Config{AssetsDir: t.TempDir()})

	img, err := c.Compose(testRoute(), "山野徒步", nil, "https://example.com/vote/1", testOptions(2))
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1080 || b.Dy() != 1920 {
		t.Fatalf("expected full canvas, got %v", b)
	}
}

func TestSaveWritesPNG(t *testing.T) {
	dir := t.TempDir()
	c := NewCompositor(config.Config{AssetsDir: dir})

	img, err := c.Compose(testRoute(), "山野徒步", nil, "https://example.com/vote/1", nil)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	path, err := c.Save(img)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("expected poster under %s, got %s", dir, path)
	}
	name := filepath.Base(path)
	if !strings.HasPrefix(name, "poster_") || !strings.HasSuffix(name, ".png") {
		t.Fatalf("unexpected poster filename %s", name)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("expected non-empty poster file: %v", err)
	}
}
