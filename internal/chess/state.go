package chess

type CapturedPieces struct {
	White []PieceView `json:"white"`
	Black []PieceView `json:"black"`
}

type LastMove struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// MatchState is a JSON friendly copy of everything a client needs to draw the match.
type MatchState struct {
	Board               [][]*PieceView `json:"board"`
	Turn                int            `json:"turn"`
	CurrentPlayer       Color          `json:"currentPlayer"`
	Check               bool           `json:"check"`
	CheckMate           bool           `json:"checkMate"`
	Winner              Color          `json:"winner,omitempty"`
	EnPassantVulnerable string         `json:"enPassantVulnerable,omitempty"`
	PendingPromotion    string         `json:"pendingPromotion,omitempty"`
	CapturedPieces      CapturedPieces `json:"capturedPieces"`
	MoveHistory         []Move         `json:"moveHistory"`
	LastMove            *LastMove      `json:"lastMove"`
}

func (m *Match) State() MatchState {
	state := MatchState{
		Board:         m.Pieces(),
		Turn:          m.turn,
		CurrentPlayer: m.currentPlayer,
		Check:         m.check,
		CheckMate:     m.checkMate,
		CapturedPieces: CapturedPieces{
			White: []PieceView{},
			Black: []PieceView{},
		},
		MoveHistory: m.Moves(),
	}
	if winner, ok := m.Winner(); ok {
		state.Winner = winner
	}
	if m.enPassantVulnerable != nil {
		if cp, ok := m.enPassantVulnerable.ChessPosition(); ok {
			state.EnPassantVulnerable = cp.String()
		}
	}
	if m.promoted != nil {
		if cp, ok := m.promoted.ChessPosition(); ok {
			state.PendingPromotion = cp.String()
		}
	}
	for _, piece := range m.capturedPieces {
		if piece.color == White {
			state.CapturedPieces.White = append(state.CapturedPieces.White, piece.View())
		} else {
			state.CapturedPieces.Black = append(state.CapturedPieces.Black, piece.View())
		}
	}
	if n := len(m.history); n > 0 {
		state.LastMove = &LastMove{From: m.history[n-1].From, To: m.history[n-1].To}
	}
	return state
}
