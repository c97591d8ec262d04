package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input holds the per-frame control signals of the demo.
type Input struct {
	// PausePressed is true on the frame Escape or the gamepad start button was pressed.
	PausePressed bool
	// ResetPressed is true on the frame R or the gamepad select button was pressed.
	ResetPressed bool
	// QuitPressed is true on the frame F12 was pressed.
	QuitPressed bool
	// DebugPressed toggles the stats overlay (F3).
	DebugPressed bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls keyboard and the first gamepad.
func (i *Input) Update() {
	var gpPause, gpReset bool
	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		gid := ids[0]
		gpPause = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
		gpReset = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterLeft)
	}

	i.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || gpPause
	i.ResetPressed = inpututil.IsKeyJustPressed(ebiten.KeyR) || gpReset
	i.QuitPressed = inpututil.IsKeyJustPressed(ebiten.KeyF12)
	i.DebugPressed = inpututil.IsKeyJustPressed(ebiten.KeyF3)
}
