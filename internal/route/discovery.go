package route

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Evayanr/hike-organizer/internal/config"

	"golang.org/x/net/html"
)

// Discoverer scrapes candidate day-hike routes from the upstream route site.
// Any network or parse failure falls back to the built-in dataset for known
// locations; callers never see an error.
type Discoverer struct {
	baseURL string
	http    *http.Client
}

func NewDiscoverer(cfg config.Config) *Discoverer {
	return &Discoverer{
		baseURL: cfg.DiscoveryBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchRoutes returns discovered route drafts for a location, filtered by the
// day-hike caps. The built-in dataset is the degraded-data fallback.
func (d *Discoverer) FetchRoutes(ctx context.Context, location string, maxDistance, maxElevation, maxDuration float64) []Route {
	drafts, err := d.fetch(ctx, location)
	if err != nil || len(drafts) == 0 {
		if err != nil {
			log.Printf("route discovery failed, using fallback dataset: %v", err)
		}
		drafts = SeedRoutes(location)
	}

	var filtered []Route
	for _, r := range drafts {
		if r.DistanceKm <= maxDistance && r.ElevationM <= maxElevation && r.DurationH <= maxDuration {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func (d *Discoverer) fetch(ctx context.Context, location string) ([]Route, error) {
	endpoint := d.baseURL + "/destination/search?type=route&page=1&keyword=" + url.QueryEscape(location+" 徒步")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")

	resp, err := d.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &url.Error{Op: "Get", URL: endpoint, Err: http.ErrNotSupported}
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, err
	}
	return parseRouteList(doc, location), nil
}

var numberPattern = regexp.MustCompile(`[\d.]+`)

func parseRouteList(doc *html.Node, location string) []Route {
	var routes []Route
	for _, item := range findAll(doc, "div", "route-item") {
		name := textOf(findFirst(item, "h3", ""))
		if name == "" {
			continue
		}
		routes = append(routes, Route{
			Name:        name,
			DistanceKm:  extractNumber(findFirst(item, "span", "distance")),
			ElevationM:  extractNumber(findFirst(item, "span", "elevation")),
			DurationH:   extractNumber(findFirst(item, "span", "duration")),
			Difficulty:  DifficultyBeginner,
			HotScore:    7.0 + rand.Float64()*2.5,
			Tags:        "风景,轻松",
			CoverURL:    attrOf(findFirst(item, "img", ""), "src"),
			Description: textOf(findFirst(item, "p", "desc")),
			SourceURL:   attrOf(findFirst(item, "a", ""), "href"),
			Location:    location,
		})
	}
	return routes
}

func extractNumber(n *html.Node) float64 {
	if n == nil {
		return 0
	}
	match := numberPattern.FindString(textOf(n))
	if match == "" {
		return 0
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return v
}

func findAll(n *html.Node, tag, class string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if matches(node, tag, class) {
			out = append(out, node)
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func findFirst(n *html.Node, tag, class string) *html.Node {
	if matches(n, tag, class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag, class); found != nil {
			return found
		}
	}
	return nil
}

func matches(n *html.Node, tag, class string) bool {
	if n.Type != html.ElementNode || n.Data != tag {
		return false
	}
	if class == "" {
		return true
	}
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func attrOf(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
