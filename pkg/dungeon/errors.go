package dungeon

import "errors"

var (
	// ErrInvalidParameters is returned before generation starts when a
	// parameter is outside its documented range.
	ErrInvalidParameters = errors.New("invalid generation parameters")

	// ErrNoRoomsSurvived means size filtering removed every floor region.
	ErrNoRoomsSurvived = errors.New("no rooms survived filtering")

	// ErrDisconnectedRoomGraph means the connector left a room unreachable
	// from the main room. It indicates a bug, not bad input.
	ErrDisconnectedRoomGraph = errors.New("room graph is disconnected")
)
