package domain

import "errors"

// Sentinel errors shared across the core. Adapters translate these to
// transport-level responses; everything else is wrapped with context.
var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateName   = errors.New("name already in use")
	ErrEmptyCollection = errors.New("collection has no tracks")
	ErrNothingPlaying  = errors.New("no source loaded")
	ErrNoMusicPlaying  = errors.New("no music currently playing")
	ErrNotPodcast      = errors.New("loaded source is not a podcast")
	ErrNotShuffleable  = errors.New("loaded source is not a playlist or album")
	ErrBackwardClock   = errors.New("clock cannot move backwards")
	ErrNegativePrice   = errors.New("price cannot be negative")
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrOffline         = errors.New("user is offline")
	ErrNoData          = errors.New("no listening data")
)
