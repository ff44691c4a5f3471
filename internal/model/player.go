package model

import "github.com/benbeisheim/chessmatch-backend/internal/chess"

type Player struct {
	ID    string
	Color chess.Color
}

type ClientPlayer struct {
	ID       string      `json:"id"`
	Color    chess.Color `json:"color"`
	TimeLeft int         `json:"timeLeft"` // tenths of a second
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

// MatchFoundEvent is pushed to a queued player once matchmaking seats them.
type MatchFoundEvent struct {
	GameID string      `json:"gameId"`
	Color  chess.Color `json:"color"`
}
