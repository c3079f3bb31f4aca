package poster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	qrcode "github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/Evayanr/hike-organizer/internal/config"
	"github.com/Evayanr/hike-organizer/internal/route"
	"github.com/Evayanr/hike-organizer/internal/weather"
)

const (
	posterWidth  = 1080
	posterHeight = 1920
	qrSize       = 250
)

var defaultFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	"/System/Library/Fonts/PingFang.ttc",
	"/System/Library/Fonts/Helvetica.ttc",
	"C:/Windows/Fonts/simhei.ttf",
	"C:/Windows/Fonts/msyh.ttc",
}

// Compositor renders vote posters onto a fixed portrait canvas. Font loading
// is best effort; when no system font is available the built-in bitmap face
// keeps composition working.
type Compositor struct {
	assetsDir string

	titleFace    font.Face
	subtitleFace font.Face
	contentFace  font.Face
	smallFace    font.Face
}

func NewCompositor(cfg config.Config) *Compositor {
	paths := cfg.FontPaths
	if len(paths) == 0 {
		paths = defaultFontPaths
	}
	return &Compositor{
		assetsDir:    cfg.AssetsDir,
		titleFace:    loadFace(paths, 72),
		subtitleFace: loadFace(paths, 48),
		contentFace:  loadFace(paths, 36),
		smallFace:    loadFace(paths, 28),
	}
}

func loadFace(paths []string, points float64) font.Face {
	for _, p := range paths {
		if face, err := gg.LoadFontFace(p, points); err == nil {
			return face
		}
	}
	return basicfont.Face7x13
}

// Compose renders the poster. The output is always exactly 1080x1920
// regardless of the background's dimensions.
func (c *Compositor) Compose(r route.Route, theme string, background image.Image, voteURL string, options []weather.VoteOption) (image.Image, error) {
	dc := gg.NewContext(posterWidth, posterHeight)
	dc.SetColor(color.White)
	dc.Clear()

	if background != nil {
		stretched := image.NewRGBA(image.Rect(0, 0, posterWidth, posterHeight))
		xdraw.BiLinear.Scale(stretched, stretched.Bounds(), background, background.Bounds(), xdraw.Src, nil)
		dc.DrawImage(stretched, 0, 0)
	}

	// dark wash so white text stays readable over any photo
	dc.SetRGBA255(0, 0, 0, 100)
	dc.DrawRectangle(0, 0, posterWidth, posterHeight)
	dc.Fill()

	dc.SetColor(color.White)
	dc.SetFontFace(c.titleFace)
	dc.DrawStringAnchored(theme, posterWidth/2, 100, 0.5, 1)

	dc.SetFontFace(c.subtitleFace)
	dc.DrawStringAnchored(r.Name, posterWidth/2, 200, 0.5, 1)

	c.drawInfoCard(dc, r, 350)
	c.drawVoteOptions(dc, options, 700)

	qr, err := qrcode.New(voteURL, qrcode.Low)
	if err != nil {
		return nil, fmt.Errorf("generate qr code: %w", err)
	}
	dc.DrawImage(qr.Image(qrSize), (posterWidth-qrSize)/2, 1450)

	dc.SetColor(color.White)
	dc.SetFontFace(c.contentFace)
	dc.DrawStringAnchored("扫码选择活动日期", posterWidth/2, 1720, 0.5, 1)

	dc.SetFontFace(c.smallFace)
	dc.DrawStringAnchored("公益徒步 · 安全第一 · 快乐同行", posterWidth/2, 1850, 0.5, 1)

	return dc.Image(), nil
}

func (c *Compositor) drawInfoCard(dc *gg.Context, r route.Route, y float64) {
	const margin = 40
	const cardHeight = 250

	dc.DrawRoundedRectangle(margin, y, posterWidth-2*margin, cardHeight, 20)
	dc.SetColor(color.White)
	dc.FillPreserve()
	dc.SetRGB255(200, 200, 200)
	dc.SetLineWidth(2)
	dc.Stroke()

	lines := []string{
		fmt.Sprintf("路线：%s", r.Name),
		fmt.Sprintf("里程：%g公里 | 爬升：%g米", r.DistanceKm, r.ElevationM),
		fmt.Sprintf("时长：%g小时 | 难度：%s", r.DurationH, r.Difficulty),
	}

	dc.SetRGB255(50, 50, 50)
	dc.SetFontFace(c.contentFace)
	lineY := y + 50
	for _, line := range lines {
		dc.DrawStringAnchored(line, 80, lineY, 0, 1)
		lineY += 60
	}
}

func (c *Compositor) drawVoteOptions(dc *gg.Context, options []weather.VoteOption, y float64) {
	dc.SetColor(color.White)
	dc.SetFontFace(c.subtitleFace)
	dc.DrawStringAnchored("活动日期投票", 60, y, 0, 1)

	// the canvas fits four option cards; extra options are left off the poster
	if len(options) > 4 {
		options = options[:4]
	}

	const margin = 40
	const cardHeight = 80
	startY := y + 70
	for i, opt := range options {
		cardY := startY + float64(i)*(cardHeight+15)

		dc.DrawRoundedRectangle(margin, cardY, posterWidth-2*margin, cardHeight, 10)
		dc.SetRGBA255(255, 255, 255, 230)
		dc.Fill()

		dc.SetRGB255(50, 50, 50)
		dc.SetFontFace(c.contentFace)
		dc.DrawStringAnchored(opt.Label, 70, cardY+15, 0, 1)

		dc.SetRGB255(100, 100, 100)
		dc.SetFontFace(c.smallFace)
		dc.DrawStringAnchored(opt.Weather, 70, cardY+45, 0, 1)
	}
}

// Save writes the poster as a timestamped PNG under the assets directory and
// returns its path.
func (c *Compositor) Save(img image.Image) (string, error) {
	if err := os.MkdirAll(c.assetsDir, 0o755); err != nil {
		return "", fmt.Errorf("create assets dir: %w", err)
	}

	path := filepath.Join(c.assetsDir, fmt.Sprintf("poster_%d.png", time.Now().Unix()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create poster file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encode poster: %w", err)
	}
	return path, nil
}
