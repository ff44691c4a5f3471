package model

import "errors"

var (
	ErrGameFull          = errors.New("game is full")
	ErrGameNotFound      = errors.New("game not found")
	ErrGameExists        = errors.New("game already exists")
	ErrNotPlayer         = errors.New("player not in game")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrGameOver          = errors.New("game is over")
	ErrAlreadyQueued     = errors.New("player already in queue")
	ErrConnectionExists  = errors.New("connection already exists")
	ErrInvalidMoveFormat = errors.New("move needs from and to squares")
	ErrInvalidPromotion  = errors.New("invalid promotion piece")
)
