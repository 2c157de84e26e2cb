package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the board to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow - move cursor up
	ActionDown           // S, J, Down arrow - move cursor down
	ActionLeft           // A, H, Left arrow - move cursor left
	ActionRight          // D, L, Right arrow - move cursor right
	ActionSelect         // Space, Enter - reveal the tile under the cursor
	ActionRestart        // R - restart the board (asks for confirmation)
	ActionShuffle        // N - deal a new board immediately
	ActionConfirm        // Y - confirm a pending prompt
	ActionBack           // Escape, B - dismiss a prompt or overlay
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSelect:
		return "Select"
	case ActionRestart:
		return "Restart"
	case ActionShuffle:
		return "Shuffle"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
