package entity

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownMode = errors.New("unknown game mode")

// Mode decides whether the computer takes part in the game.
type Mode string

const (
	ModeHuman    Mode = "human"
	ModeComputer Mode = "computer"
)

func ParseMode(s string) (Mode, error) {
	switch mode := Mode(strings.ToLower(strings.TrimSpace(s))); mode {
	case ModeHuman, ModeComputer:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

func (that Mode) WithComputer() bool {
	return that == ModeComputer
}
