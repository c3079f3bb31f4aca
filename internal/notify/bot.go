package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Evayanr/hike-organizer/internal/config"
	"github.com/Evayanr/hike-organizer/internal/route"
)

var (
	// ErrNotConfigured means no webhook URL is set; sending is impossible
	// but not a programming error.
	ErrNotConfigured = errors.New("webhook url not configured")
	// ErrDeliveryFailed means the provider rejected or never received the
	// message; the caller decides whether to retry.
	ErrDeliveryFailed = errors.New("message delivery failed")
)

// Bot posts messages to a WeChat-work style group webhook. Success is
// determined solely by the provider's errcode in the response body.
type Bot struct {
	webhookURL string
	http       *http.Client
}

func NewBot(cfg config.Config) *Bot {
	return &Bot{
		webhookURL: cfg.WechatWebhookURL,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

type sendResult struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

func (b *Bot) send(ctx context.Context, payload any) error {
	if b.webhookURL == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	var result sendResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	if result.ErrCode != 0 {
		return fmt.Errorf("%w: %s", ErrDeliveryFailed, result.ErrMsg)
	}
	return nil
}

func (b *Bot) SendText(ctx context.Context, content string) error {
	return b.send(ctx, map[string]any{
		"msgtype": "text",
		"text":    map[string]string{"content": content},
	})
}

func (b *Bot) SendMarkdown(ctx context.Context, content string) error {
	return b.send(ctx, map[string]any{
		"msgtype":  "markdown",
		"markdown": map[string]string{"content": content},
	})
}

// SendImage delivers a poster by reference. The webhook API has no direct
// upload, so the reference must be publicly reachable.
func (b *Bot) SendImage(ctx context.Context, imageRef string) error {
	return b.SendMarkdown(ctx, fmt.Sprintf("![海报](%s)", imageRef))
}

// SendPoster publishes the poster image followed by the vote announcement.
func (b *Bot) SendPoster(ctx context.Context, posterRef, voteURL string) error {
	if err := b.SendImage(ctx, posterRef); err != nil {
		return err
	}
	return b.SendMarkdown(ctx, fmt.Sprintf("📢 活动投票已开启！\n\n请扫描上方二维码或点击下方链接选择活动日期：\n%s", voteURL))
}

func (b *Bot) SendWelcome(ctx context.Context, r route.Route, activityDate string) error {
	message := fmt.Sprintf(`🎉 欢迎大家加入本次轻徒步活动群！

本次活动信息：
📍 <font color="warning">路线</font>：%s
📅 <font color="info">时间</font>：%s
🏃 里程：%g公里
⛰️ 爬升：%g米
⏱️ 时长：%g小时
💰 费用：公益免费（AA制交通费）

---

📋 常见问题快速入口：
1. 活动费用多少？
2. 需要带什么装备？
3. 集合时间和地点？
4. 活动难度如何？
5. 天气怎么样？
6. 如何报名参加？

<font color="comment">有任何问题请直接在群里提问，机器人小助手会自动回复～</font>`,
		r.Name, activityDate, r.DistanceKm, r.ElevationM, r.DurationH)
	return b.SendMarkdown(ctx, message)
}

func (b *Bot) SendVoteResult(ctx context.Context, selectedDate, weather string) error {
	message := fmt.Sprintf(`🎉 投票结果公布！

活动日期已确定为：<font color="warning">%s</font>
天气预报：<font color="info">%s</font>

接下来请留意群内通知，我们会在活动前发布详细安排和集合信息。

<font color="comment">期待与大家一起出发！🚶‍♂️🚶‍♀️</font>`, selectedDate, weather)
	return b.SendMarkdown(ctx, message)
}

func (b *Bot) SendReminder(ctx context.Context, activityDate string) error {
	message := fmt.Sprintf(`📢 活动前提醒！

活动时间：<font color="warning">%s</font>

<font color="info">集合信息</font>：
- 时间：活动前一天晚上群内通知
- 地点：待定

<font color="warning">装备清单</font>：
✅ 徒步鞋（防滑耐磨）
✅ 双肩背包
✅ 饮用水（1.5-2L）
✅ 午餐和零食
✅ 防晒用品
✅ 个人常用药品

<font color="comment">请提前做好准备，准时集合！</font>`, activityDate)
	return b.SendMarkdown(ctx, message)
}
