package domain

import "encoding/json"

type NotificationMessage struct {
	Channel string          `json:"channel"` // sms 或 email
	Type    string          `json:"type"`
	To      string          `json:"to"`
	Data    json.RawMessage `json:"data"` // 具体结构由 Type 决定
}

type DailyUnlockData struct {
	Day     int      `json:"day"`
	URLs    []string `json:"urls"`
	PageURL string   `json:"pageURL"`
}
