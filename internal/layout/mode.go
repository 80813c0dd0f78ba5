package layout

import (
	"fmt"
	"slices"
	"strings"

	"sharecut/internal/services"
	"sharecut/internal/textutil"
)

// Mode selects how slides and camera share the canvas while sharing.
type Mode string

const (
	ModeSideBySide Mode = "side-by-side"
	ModeDiagonal   Mode = "diagonal"
)

// Modes lists the supported combined layouts.
func Modes() []Mode {
	return []Mode{ModeSideBySide, ModeDiagonal}
}

// ModeNames joins the supported layout names for help and error text.
func ModeNames() string {
	names := make([]string, 0, len(Modes()))
	for _, m := range Modes() {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}

// ParseMode resolves a layout name case-insensitively. An empty name selects
// side-by-side.
func ParseMode(value string) (Mode, error) {
	normalized := Mode(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return ModeSideBySide, nil
	}
	if slices.Contains(Modes(), normalized) {
		return normalized, nil
	}
	return "", services.Wrap(services.ErrConfiguration, "layout", "mode",
		fmt.Sprintf("unknown layout %q (choose one of: %s)", value, ModeNames()), nil)
}

// Title returns a display name such as "Side By Side".
func (m Mode) Title() string {
	return textutil.HumanizeSlug(string(m))
}

// Description summarizes what each view shows in this mode.
func (m Mode) Description() string {
	switch m {
	case ModeDiagonal:
		return "large slides on the left with a small camera overlay in the bottom-right corner"
	default:
		return "slides and camera split 50/50"
	}
}
