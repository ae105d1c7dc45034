package catalog

import "time"

type Position struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type PositionResponsibility struct {
	ID          string  `json:"id"`
	PositionID  string  `json:"positionId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
}
