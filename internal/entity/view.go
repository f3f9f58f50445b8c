package entity

import "strconv"

type HistoryEntry struct {
	Move        int    `json:"move"`
	Description string `json:"description"`
	Board       Board  `json:"board"`
}

// GameView is what a presentation layer needs to draw the game.
type GameView struct {
	Board       Board          `json:"board"`
	History     []HistoryEntry `json:"history"`
	CurrentMove int            `json:"current_move"`
	Status      string         `json:"status"`
	Winner      Mark           `json:"winner"`
	NextPlayer  Mark           `json:"next_player"`
	Saving      bool           `json:"saving"`
	Notice      string         `json:"notice,omitempty"`
}

// DescribeMove - label of a history jump button.
func DescribeMove(move int) string {
	if move > 0 {
		return "Go to move #" + strconv.Itoa(move)
	}

	return "Go to game start"
}
