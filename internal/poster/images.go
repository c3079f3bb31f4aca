package poster

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"time"
)

var sampleImages = map[string][]string{
	"春日赏花": {
		"https://images.pexels.com/photos/1366957/pexels-photo-1366957.jpeg",
		"https://images.pexels.com/photos/1470726/pexels-photo-1470726.jpeg",
		"https://images.pexels.com/photos/1856086/pexels-photo-1856086.jpeg",
	},
	"山野徒步": {
		"https://images.pexels.com/photos/167699/pexels-photo-167699.jpeg",
		"https://images.pexels.com/photos/1687855/pexels-photo-1687855.jpeg",
		"https://images.pexels.com/photos/1511311/pexels-photo-1511311.jpeg",
	},
	"周末逃离": {
		"https://images.pexels.com/photos/162436/pexels-photo-162436.jpeg",
		"https://images.pexels.com/photos/1408221/pexels-photo-1408221.jpeg",
		"https://images.pexels.com/photos/1470111/pexels-photo-1470111.jpeg",
	},
	"自然疗愈": {
		"https://images.pexels.com/photos/1547813/pexels-photo-1547813.jpeg",
		"https://images.pexels.com/photos/1366919/pexels-photo-1366919.jpeg",
		"https://images.pexels.com/photos/1444724/pexels-photo-1444724.jpeg",
	},
}

var defaultImages = []string{
	"https://images.pexels.com/photos/167699/pexels-photo-167699.jpeg",
	"https://images.pexels.com/photos/1687855/pexels-photo-1687855.jpeg",
	"https://images.pexels.com/photos/1511311/pexels-photo-1511311.jpeg",
}

// SearchImages returns candidate background URLs for a theme. Themes without
// a curated list fall back to the default hiking photos.
func SearchImages(theme string, count int) []string {
	urls, ok := sampleImages[theme]
	if !ok {
		urls = defaultImages
	}
	if count > 0 && count < len(urls) {
		urls = urls[:count]
	}
	return urls
}

var downloadClient = &http.Client{Timeout: 10 * time.Second}

// DownloadImage fetches and decodes a jpg or png background. Callers treat
// failure as a degraded state, not a fatal one.
func DownloadImage(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}

	resp, err := downloadClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download image: status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
