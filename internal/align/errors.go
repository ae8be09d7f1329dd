package align

import (
	"errors"
	"fmt"

	"cuesync/internal/script"
)

// ErrUnmatchedCue marks a cue whose start or end voice line has no
// corresponding voice item left in the project.
var ErrUnmatchedCue = errors.New("unmatched voice cue")

// UnmatchedCueError identifies the specific voice reference that failed to
// match. It unwraps to ErrUnmatchedCue.
type UnmatchedCueError struct {
	Ref script.VoiceRef
}

func (e *UnmatchedCueError) Error() string {
	return fmt.Sprintf("no matching voice item for %s", e.Ref)
}

func (e *UnmatchedCueError) Unwrap() error { return ErrUnmatchedCue }
