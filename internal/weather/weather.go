package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/Evayanr/hike-organizer/internal/config"
	"github.com/redis/go-redis/v9"
)

// NoForecast is returned whenever the provider cannot supply data for a date.
const NoForecast = "天气暂无数据"

var cityIDs = map[string]string{
	"苏州": "101190401",
	"上海": "101020100",
}

const defaultCityID = "101190401"

var weekdayNames = [7]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}

// Client queries a qweather-style 7-day forecast API. Forecast lookups are
// cached in redis when a cache client is provided.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cache   *redis.Client
}

func NewClient(cfg config.Config, cache *redis.Client) *Client {
	return &Client{
		baseURL: cfg.WeatherBaseURL,
		apiKey:  cfg.WeatherAPIKey,
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
	}
}

type forecastResponse struct {
	Code  string `json:"code"`
	Daily []struct {
		FxDate  string `json:"fxDate"`
		TempMin string `json:"tempMin"`
		TempMax string `json:"tempMax"`
		TextDay string `json:"textDay"`
	} `json:"daily"`
}

// Forecast returns a one-line summary for the given date, or NoForecast when
// the provider fails or has no data. It never returns an error.
func (c *Client) Forecast(ctx context.Context, date time.Time, location string) string {
	cityID, ok := cityIDs[location]
	if !ok {
		cityID = defaultCityID
	}
	day := date.Format("2006-01-02")
	cacheKey := "weather:" + cityID + ":" + day

	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			return cached
		}
	}

	summary := c.fetchForecast(ctx, cityID, day)

	if c.cache != nil && summary != NoForecast {
		if err := c.cache.Set(ctx, cacheKey, summary, time.Hour).Err(); err != nil {
			log.Printf("weather cache set error: %v", err)
		}
	}
	return summary
}

func (c *Client) fetchForecast(ctx context.Context, cityID, day string) string {
	endpoint := fmt.Sprintf("%s/weather/7d?location=%s&key=%s", c.baseURL, url.QueryEscape(cityID), url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return NoForecast
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("weather request error: %v", err)
		return NoForecast
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return NoForecast
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return NoForecast
	}
	if payload.Code != "200" {
		return NoForecast
	}
	for _, d := range payload.Daily {
		if d.FxDate == day {
			return fmt.Sprintf("%s，%s-%s℃", d.TextDay, d.TempMin, d.TempMax)
		}
	}
	return NoForecast
}

// VoteOption is a candidate activity date paired with its forecast summary.
type VoteOption struct {
	Date    time.Time `json:"date"`
	Label   string    `json:"label"`
	Weather string    `json:"weather"`
}

// Weekends returns every Saturday and Sunday of the month in ascending order.
func Weekends(year, month int) []time.Time {
	var weekends []time.Time
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			weekends = append(weekends, d)
		}
	}
	return weekends
}

// DateLabel renders a date the way vote options display it, with the
// two-character weekday name appended.
func DateLabel(date time.Time) string {
	return fmt.Sprintf("%s（%s）", date.Format("2006-01-02"), weekdayNames[date.Weekday()])
}

// GenerateVoteOptions builds one option per weekend date of the month,
// chronologically, annotating each with its forecast summary.
func (c *Client) GenerateVoteOptions(ctx context.Context, year, month int, location string) []VoteOption {
	weekends := Weekends(year, month)
	options := make([]VoteOption, 0, len(weekends))
	for _, date := range weekends {
		options = append(options, VoteOption{
			Date:    date,
			Label:   DateLabel(date),
			Weather: c.Forecast(ctx, date, location),
		})
	}
	return options
}
