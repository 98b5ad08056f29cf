package statusbar

import "github.com/riordanpawley/quadrant/internal/types"

// GetHints returns the keybinding hints for the given mode
func GetHints(mode types.Mode) string {
	switch mode {
	case types.ModeNormal:
		return "hjkl: move  n: new  Space: action  /: search  f: filter  ?: help  q: quit"
	case types.ModeGoto:
		return "g: top  e: end  w: jump  1-5: lane  Esc: cancel"
	case types.ModeSelect:
		return "Space: toggle  %: all  a: actions  Esc: done"
	case types.ModeSearch:
		return "Type to search  Tab: complete  Enter: confirm  Esc: clear"
	default:
		return ""
	}
}
