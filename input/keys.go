package input

import "github.com/gdamore/tcell/v2"

// nudgeStep is the velocity impulse per keypress, world units/sec
const nudgeStep = 60.0

// Decode maps one terminal event to an intent. Unmapped events decode to
// IntentNone.
func Decode(ev tcell.Event) Intent {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return Intent{}
	}

	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Intent{Type: IntentQuit}
	case tcell.KeyUp:
		return Intent{Type: IntentNudge, Dy: -nudgeStep}
	case tcell.KeyDown:
		return Intent{Type: IntentNudge, Dy: nudgeStep}
	case tcell.KeyLeft:
		return Intent{Type: IntentNudge, Dx: -nudgeStep}
	case tcell.KeyRight:
		return Intent{Type: IntentNudge, Dx: nudgeStep}
	case tcell.KeyRune:
		return decodeRune(key.Rune())
	}
	return Intent{}
}

func decodeRune(r rune) Intent {
	switch r {
	case 'q':
		return Intent{Type: IntentQuit}
	case ' ':
		return Intent{Type: IntentTogglePause}
	case 'r':
		return Intent{Type: IntentReset}
	case 's':
		return Intent{Type: IntentToggleSound}
	case 'h':
		return Intent{Type: IntentNudge, Dx: -nudgeStep}
	case 'l':
		return Intent{Type: IntentNudge, Dx: nudgeStep}
	case 'k':
		return Intent{Type: IntentNudge, Dy: -nudgeStep}
	case 'j':
		return Intent{Type: IntentNudge, Dy: nudgeStep}
	case ']':
		return Intent{Type: IntentRestitutionUp}
	case '[':
		return Intent{Type: IntentRestitutionDown}
	case '.':
		return Intent{Type: IntentAngularSpeedUp}
	case ',':
		return Intent{Type: IntentAngularSpeedDown}
	case '+', '=':
		return Intent{Type: IntentTimeScaleUp}
	case '-':
		return Intent{Type: IntentTimeScaleDown}
	case 'g':
		return Intent{Type: IntentGravityToggle}
	}
	return Intent{}
}
