package memory

import (
	"github.com/wippyai/memstream/errors"
)

// Mode is the parsed form of an open mode string.
type Mode struct {
	Read     bool // 'r', 'w' or '+'
	Write    bool // 'w', 'a' or '+'
	Truncate bool // 'w': zero the buffer, high-water mark starts at 0
	Append   bool // 'a': position starts at the high-water mark
}

// ParseMode parses an fopen-style mode string. 'w' opens for reading and
// writing so truncated content can be read back; 'a' alone is write-only.
// 'b' is accepted and ignored, as are unknown letters, but at least one of
// r, w, a or + must be present.
func ParseMode(s string) (Mode, error) {
	var m Mode
	recognized := false
	for _, c := range s {
		switch c {
		case 'r':
			m.Read = true
			recognized = true
		case 'w':
			m.Read = true
			m.Write = true
			m.Truncate = true
			recognized = true
		case 'a':
			m.Write = true
			m.Append = true
			recognized = true
		case '+':
			m.Read = true
			m.Write = true
			recognized = true
		}
	}
	if !recognized {
		return Mode{}, errors.New(errors.PhaseOpen, errors.KindInvalidArgument).
			Detail("mode %q has no r, w, a or +", s).
			Value(s).
			Build()
	}
	return m, nil
}

// String renders the mode back to its canonical letters.
func (m Mode) String() string {
	switch {
	case m.Truncate && m.Append:
		return "wa"
	case m.Truncate:
		return "w"
	case m.Append && m.Read:
		return "a+"
	case m.Append:
		return "a"
	case m.Read && m.Write:
		return "r+"
	case m.Read:
		return "r"
	}
	return ""
}
