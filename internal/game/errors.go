package game

import "errors"

var (
	// ErrSyncInFlight indicates a refill request is already running.
	ErrSyncInFlight = errors.New("challenge sync already in flight")
	// ErrUnknownGoal indicates the goal id is neither selected nor a preset.
	ErrUnknownGoal = errors.New("unknown goal")
	// ErrEmptyName indicates a rename to a blank display name.
	ErrEmptyName = errors.New("name must not be empty")
	// ErrEmptyGoalLabel indicates a custom goal without a label.
	ErrEmptyGoalLabel = errors.New("goal label must not be empty")
	// ErrInvalidCategory indicates a category outside the fixed enum.
	ErrInvalidCategory = errors.New("invalid category")
)
