package domain

import "time"

type Submission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Links     []string  `json:"links"`
	CreatedAt time.Time `json:"createdAt"`
}
