package core

import "fmt"

// Channel identifies an audio channel.
type Channel int

const (
	ChannelMusic  Channel = iota // Looping background track
	ChannelEffect                // One-shot sound effect
)

// String returns a human-readable name for the channel.
func (c Channel) String() string {
	switch c {
	case ChannelMusic:
		return "music"
	case ChannelEffect:
		return "effect"
	default:
		return "unknown"
	}
}

// AudioOp is an operation on an audio channel.
type AudioOp int

const (
	OpRewind AudioOp = iota // Seek to the start
	OpPlay
	OpPause
)

// String returns a human-readable name for the operation.
func (o AudioOp) String() string {
	switch o {
	case OpRewind:
		return "rewind"
	case OpPlay:
		return "play"
	case OpPause:
		return "pause"
	default:
		return "unknown"
	}
}

// Effect is a side effect requested by a simulation step.
// Steps never touch audio themselves; they return effects for the
// platform to perform once the step has finished mutating state.
type Effect struct {
	Channel Channel
	Op      AudioOp
}

func (e Effect) String() string {
	return fmt.Sprintf("%s:%s", e.Channel, e.Op)
}
