package route

// Built-in day-hike datasets for the two supported areas. Used for initial
// seeding and as the discovery fallback when the upstream site is unreachable.

func suzhouRoutes() []Route {
	return []Route{
		{Name: "东山环线·碧螺春茶园之旅", DistanceKm: 12.5, ElevationM: 650, DurationH: 5.5, Difficulty: DifficultyBeginner, HotScore: 9.2, Tags: "风景,茶文化,轻松", Description: "穿越东山茶园，欣赏太湖美景，感受茶文化", Location: "苏州东山"},
		{Name: "西山缥缈峰轻徒步", DistanceKm: 14.0, ElevationM: 780, DurationH: 6.0, Difficulty: DifficultyBeginner, HotScore: 8.9, Tags: "山景,太湖,观景", Description: "登顶缥缈峰，俯瞰太湖全景", Location: "苏州西山"},
		{Name: "上方山森林徒步", DistanceKm: 8.5, ElevationM: 350, DurationH: 4.0, Difficulty: DifficultyBeginner, HotScore: 8.7, Tags: "森林,亲子,轻松", Description: "漫步森林氧吧，适合家庭出游", Location: "苏州上方山"},
		{Name: "灵岩山古寺徒步", DistanceKm: 10.0, ElevationM: 450, DurationH: 4.5, Difficulty: DifficultyBeginner, HotScore: 8.5, Tags: "古迹,山景,文化", Description: "探访千年古寺，登高望远", Location: "苏州灵岩山"},
		{Name: "天平山红叶徒步", DistanceKm: 9.5, ElevationM: 400, DurationH: 4.2, Difficulty: DifficultyBeginner, HotScore: 8.3, Tags: "红叶,风景,秋季", Description: "秋季赏红叶绝佳去处", Location: "苏州天平山"},
		{Name: "旺山生态徒步", DistanceKm: 11.0, ElevationM: 500, DurationH: 5.0, Difficulty: DifficultyBeginner, HotScore: 8.1, Tags: "生态,乡村,轻松", Description: "走进美丽乡村，体验田园风光", Location: "苏州旺山"},
		{Name: "虞山古道徒步", DistanceKm: 13.5, ElevationM: 720, DurationH: 5.8, Difficulty: DifficultyBeginner, HotScore: 7.9, Tags: "古道,山景,历史", Description: "行走在千年古道上，感受历史沧桑", Location: "苏州常熟虞山"},
		{Name: "同里湖畔徒步", DistanceKm: 7.0, ElevationM: 200, DurationH: 3.5, Difficulty: DifficultyBeginner, HotScore: 7.7, Tags: "水乡,古镇,轻松", Description: "漫步同里湖畔，欣赏水乡风光", Location: "苏州同里"},
		{Name: "穹窿山轻徒步", DistanceKm: 14.5, ElevationM: 790, DurationH: 6.0, Difficulty: DifficultyBeginner, HotScore: 7.5, Tags: "山景,森林,挑战", Description: "苏州最高峰，视野开阔", Location: "苏州穹窿山"},
	}
}

func shanghaiRoutes() []Route {
	return []Route{
		{Name: "佘山国家森林公园", DistanceKm: 8.0, ElevationM: 300, DurationH: 4.0, Difficulty: DifficultyBeginner, HotScore: 9.0, Tags: "森林,轻松,亲子", Description: "上海近郊徒步首选，适合全家", Location: "上海松江佘山"},
		{Name: "辰山植物园徒步", DistanceKm: 6.5, ElevationM: 150, DurationH: 3.0, Difficulty: DifficultyBeginner, HotScore: 8.8, Tags: "植物园,风景,轻松", Description: "漫步植物园，欣赏奇花异草", Location: "上海松江辰山"},
		{Name: "滨江森林公园徒步", DistanceKm: 10.0, ElevationM: 200, DurationH: 4.5, Difficulty: DifficultyBeginner, HotScore: 8.6, Tags: "江景,森林,轻松", Description: "沿江徒步，感受江风拂面", Location: "上海浦东滨江"},
		{Name: "东平国家森林公园", DistanceKm: 12.0, ElevationM: 250, DurationH: 5.0, Difficulty: DifficultyBeginner, HotScore: 8.4, Tags: "森林,生态,崇明", Description: "崇明岛最大森林公园，天然氧吧", Location: "上海崇明东平"},
		{Name: "滴水湖环湖徒步", DistanceKm: 21.0, ElevationM: 100, DurationH: 5.5, Difficulty: DifficultyBeginner, HotScore: 8.2, Tags: "湖景,环湖,轻松", Description: "环滴水湖一周，欣赏湖光山色", Location: "上海临港滴水湖"},
		{Name: "顾村公园徒步", DistanceKm: 7.5, ElevationM: 180, DurationH: 3.5, Difficulty: DifficultyBeginner, HotScore: 8.0, Tags: "公园,樱花,轻松", Description: "春季赏樱胜地", Location: "上海宝山顾村"},
	}
}

// SeedRoutes returns the built-in dataset for a location, or both datasets
// when location is empty. Unknown locations yield nil.
func SeedRoutes(location string) []Route {
	switch location {
	case "":
		return append(suzhouRoutes(), shanghaiRoutes()...)
	case "苏州":
		return suzhouRoutes()
	case "上海":
		return shanghaiRoutes()
	}
	return nil
}
