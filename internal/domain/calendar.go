package domain

import "time"

type CalendarSlot struct {
	URL           string `json:"url"`
	SubmitterName string `json:"submitterName"`
}

type Schedule struct {
	GeneratedAt time.Time `json:"generatedAt"`
	Seed        int64     `json:"seed"`
	// 键为日历中的天数（从 1 开始），序列化成 JSON 后键是字符串
	Days map[int][]CalendarSlot `json:"days"`
}
