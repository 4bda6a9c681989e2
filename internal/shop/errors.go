package shop

import "errors"

var (
	// ErrUnknownItem indicates the item id is not in the catalog.
	ErrUnknownItem = errors.New("unknown shop item")
	// ErrInsufficientGems indicates the profile cannot afford the item.
	ErrInsufficientGems = errors.New("insufficient gems")
	// ErrAlreadyOwned indicates the unlock has already been purchased.
	ErrAlreadyOwned = errors.New("item already owned")
	// ErrNotOwned indicates an attempt to equip a cosmetic that was never unlocked.
	ErrNotOwned = errors.New("cosmetic not owned")
)
