package timeline

import (
	"encoding/json"
	"math"

	"sharecut/internal/timecode"
)

// Instant is a point on the timeline in seconds, or the open-ended sentinel
// that stands for "until the recording ends". The zero Instant is neither:
// it marks a value that was never set.
type Instant struct {
	seconds float64
	open    bool
	bounded bool
}

// Open is the open-ended instant.
var Open = Instant{open: true}

// At returns a bounded instant.
func At(seconds float64) Instant {
	return Instant{seconds: seconds, bounded: true}
}

// IsOpen reports whether the instant is the open-ended sentinel.
func (i Instant) IsOpen() bool { return i.open }

// IsSet reports whether the instant was built by At or is Open.
func (i Instant) IsSet() bool { return i.open || i.bounded }

// Seconds returns the bounded value, or +Inf for the open sentinel.
func (i Instant) Seconds() float64 {
	if i.open {
		return math.Inf(1)
	}
	return i.seconds
}

// Equal reports whether two instants denote the same point.
func (i Instant) Equal(other Instant) bool {
	if i.open || other.open {
		return i.open == other.open
	}
	return i.seconds == other.seconds
}

func (i Instant) String() string {
	if i.open {
		return "open"
	}
	return timecode.FormatDecimal(i.seconds)
}

// MarshalJSON encodes the open sentinel as null.
func (i Instant) MarshalJSON() ([]byte, error) {
	if i.open {
		return []byte("null"), nil
	}
	return json.Marshal(i.seconds)
}

// MarshalYAML encodes the open sentinel as null.
func (i Instant) MarshalYAML() (any, error) {
	if i.open {
		return nil, nil
	}
	return i.seconds, nil
}
