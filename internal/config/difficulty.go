package config

import (
	"errors"
	"fmt"
)

// LevelCount is the number of selectable levels.
const LevelCount = 3

// ErrInvalidLevel is returned for a level outside [1, LevelCount].
var ErrInvalidLevel = errors.New("config: invalid level")

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// LevelForPreset returns the level a difficulty preset starts on.
func LevelForPreset(preset DifficultyPreset) (int, error) {
	switch preset {
	case DifficultyEasy:
		return 1, nil
	case DifficultyNormal:
		return 2, nil
	case DifficultyHard:
		return 3, nil
	default:
		return 0, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidLevel, preset)
	}
}

// ValidLevel reports whether level is selectable.
func ValidLevel(level int) bool {
	return level >= 1 && level <= LevelCount
}

// Level returns the configuration of a 1-based level.
func (c InvadersConfig) Level(level int) (LevelConfig, error) {
	if !ValidLevel(level) || level > len(c.Levels) {
		return LevelConfig{}, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}
	return c.Levels[level-1], nil
}
