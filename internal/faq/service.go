package faq

import (
	"context"

	"github.com/Evayanr/hike-organizer/internal/db"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Insert(ctx context.Context, question, answer, category string) (FAQ, error) {
	entry := FAQ{Question: question, Answer: answer, Category: category}
	row := s.db.QueryRow(ctx, `
		INSERT INTO faq (question, answer, category)
		VALUES ($1,$2,$3)
		RETURNING id, created_at
	`, question, answer, category)
	if err := row.Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return FAQ{}, err
	}
	return entry, nil
}

// All lists the knowledge base, most-asked entries first.
func (s *Service) All(ctx context.Context) ([]FAQ, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, question, answer, category, click_count, created_at
		FROM faq ORDER BY click_count DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []FAQ
	for rows.Next() {
		var entry FAQ
		if err := rows.Scan(&entry.ID, &entry.Question, &entry.Answer, &entry.Category, &entry.ClickCount, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Match finds the first entry whose question contains the text and bumps
// its click counter. A miss surfaces as pgx.ErrNoRows from the scan.
func (s *Service) Match(ctx context.Context, text string) (FAQ, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, question, answer, category, click_count, created_at
		FROM faq WHERE question LIKE '%'||$1||'%'
		ORDER BY id ASC LIMIT 1
	`, text)
	var entry FAQ
	if err := row.Scan(&entry.ID, &entry.Question, &entry.Answer, &entry.Category, &entry.ClickCount, &entry.CreatedAt); err != nil {
		return FAQ{}, err
	}
	if _, err := s.db.Exec(ctx, `UPDATE faq SET click_count = click_count + 1 WHERE id=$1`, entry.ID); err != nil {
		return FAQ{}, err
	}
	entry.ClickCount++
	return entry, nil
}

var seedEntries = []FAQ{
	{Question: "活动费用多少？", Answer: "本次活动为公益性质，不收取服务费，仅收取AA制交通费用，具体金额在活动群内通知。", Category: "费用"},
	{Question: "需要带什么装备？", Answer: "请准备好徒步鞋、双肩背包、饮用水（1.5-2L）、午餐、防晒用品等。详细装备清单稍后发布。", Category: "装备"},
	{Question: "集合时间和地点？", Answer: "集合时间和地点会在活动前一天晚上群内通知，请关注群消息。", Category: "集合"},
	{Question: "活动难度如何？", Answer: "本次路线为轻徒步，适合新手参与，全程有领队带领。", Category: "难度"},
	{Question: "天气怎么样？", Answer: "活动前3天会发布天气预报，请根据天气准备相应装备。", Category: "天气"},
	{Question: "如何报名参加？", Answer: "报名链接将在群内发布，点击链接填写信息即可报名。", Category: "报名"},
	{Question: "报名截止时间？", Answer: "报名截止时间为活动前2天中午12点。", Category: "报名"},
	{Question: "可以带朋友吗？", Answer: "可以，请让朋友扫码进群并单独报名。", Category: "报名"},
	{Question: "可以取消报名吗？", Answer: "可以，请在活动前2天联系组织者取消。", Category: "报名"},
	{Question: "有保险吗？", Answer: "活动会为每位参与者购买户外运动保险。", Category: "安全"},
	{Question: "如果中途放弃怎么办？", Answer: "请告知领队，在安全地点等待或自行下撤。", Category: "安全"},
	{Question: "紧急联系方式？", Answer: "领队电话：[待定]，医疗救援：120", Category: "安全"},
	{Question: "需要准备午餐吗？", Answer: "需要，请自带午餐和适量零食。", Category: "装备"},
	{Question: "有厕所吗？", Answer: "路线途中可能有厕所，建议自备湿纸巾。", Category: "其他"},
	{Question: "可以带宠物吗？", Answer: "为了安全和环保，不建议带宠物。", Category: "其他"},
}

// Seed loads the built-in knowledge base. A non-empty table is left alone.
func (s *Service) Seed(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM faq`).Scan(&count); err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	for _, entry := range seedEntries {
		if _, err := s.Insert(ctx, entry.Question, entry.Answer, entry.Category); err != nil {
			return 0, err
		}
	}
	return len(seedEntries), nil
}
