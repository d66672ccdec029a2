package monitor

import "time"

type Status struct {
	PostgreSQL bool      `json:"postgresql"`
	Redis      bool      `json:"redis"`
	Analytics  bool      `json:"analytics"`
	EventCount int       `json:"event_count"`
	LastCheck  time.Time `json:"last_check"`
}
