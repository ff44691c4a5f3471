package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/benbeisheim/chessmatch-backend/internal/chess"
)

// MoveRequest is a move as clients send it. Promotion is optional and only read when the move
// promotes a pawn.
type MoveRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

type PromoteRequest struct {
	Piece string `json:"piece"`
}

func (m MoveRequest) squares() (chess.ChessPosition, chess.ChessPosition, error) {
	if m.From == "" || m.To == "" {
		return chess.ChessPosition{}, chess.ChessPosition{}, ErrInvalidMoveFormat
	}
	from, err := chess.ParseChessPosition(m.From)
	if err != nil {
		return chess.ChessPosition{}, chess.ChessPosition{}, fmt.Errorf("from: %w", err)
	}
	to, err := chess.ParseChessPosition(m.To)
	if err != nil {
		return chess.ChessPosition{}, chess.ChessPosition{}, fmt.Errorf("to: %w", err)
	}
	return from, to, nil
}

func promotionAcronym(piece string) (string, error) {
	acronym := strings.ToUpper(strings.TrimSpace(piece))
	choices := chess.PromotionAcronyms()
	if !slices.Contains(choices, acronym) {
		return "", fmt.Errorf("%w: %q, want one of %s", ErrInvalidPromotion, piece, strings.Join(choices, ", "))
	}
	return acronym, nil
}
