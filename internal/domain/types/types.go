// Package types contains common types used across the application
package types

// Entry represents one ranked leaderboard row.
type Entry struct {
	Rank     int     `json:"rank"`
	TeamName string  `json:"team_name"`
	Score    float64 `json:"score"`
	Status   string  `json:"status"`
}
