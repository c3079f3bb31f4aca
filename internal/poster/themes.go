package poster

import (
	"strings"

	"github.com/Evayanr/hike-organizer/internal/route"
)

const maxThemes = 6

var baseThemes = []string{"春日赏花", "山野徒步", "周末逃离", "自然疗愈"}

var tagThemes = []struct {
	keyword string
	theme   string
}{
	{"风景", "绝美风光"},
	{"茶文化", "茶香之旅"},
	{"古镇", "文化探索"},
	{"文化", "文化探索"},
	{"亲子", "亲子时光"},
	{"轻松", "轻松休闲"},
}

// SuggestThemes proposes poster theme labels for a route: a seasonal base
// set plus labels derived from its tags and location, deduped and capped.
func SuggestThemes(r route.Route) []string {
	themes := make([]string, 0, maxThemes)
	seen := make(map[string]bool)
	add := func(theme string) {
		if !seen[theme] {
			seen[theme] = true
			themes = append(themes, theme)
		}
	}

	for _, t := range baseThemes {
		add(t)
	}
	for _, rule := range tagThemes {
		if strings.Contains(r.Tags, rule.keyword) {
			add(rule.theme)
		}
	}
	if strings.Contains(r.Location, "苏州") {
		add("苏式生活")
	}
	if strings.Contains(r.Location, "上海") {
		add("都市绿洲")
	}

	if len(themes) > maxThemes {
		themes = themes[:maxThemes]
	}
	return themes
}
