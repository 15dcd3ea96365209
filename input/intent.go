// Package input translates terminal key events into semantic intents so the
// main loop never reasons about raw keys.
package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit        // q, ESC, Ctrl+C
	IntentTogglePause // space
	IntentReset       // r
	IntentToggleSound // s

	// Ball control
	IntentNudge // h,j,k,l or arrows: velocity impulse

	// Parameter adjustment
	IntentRestitutionUp    // ]
	IntentRestitutionDown  // [
	IntentAngularSpeedUp   // .
	IntentAngularSpeedDown // ,
	IntentTimeScaleUp      // +
	IntentTimeScaleDown    // -
	IntentGravityToggle    // g: switch gravity on/off
)

// Intent is one decoded user action. Dx/Dy carry the nudge direction for
// IntentNudge and are zero otherwise.
type Intent struct {
	Type IntentType
	Dx   float64
	Dy   float64
}
