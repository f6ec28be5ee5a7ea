package input

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// Action names a bindable viewer command.
type Action string

const (
	ActionRotate           Action = "rotate"
	ActionPan              Action = "pan"
	ActionFocus            Action = "focus"
	ActionReset            Action = "reset"
	ActionNextTarget       Action = "next_target"
	ActionToggleBackground Action = "toggle_background"
	ActionNextEnvironment  Action = "next_environment"
)

// Bindings maps actions to mouse buttons and keys. Rotate and Pan are mouse buttons; the rest are keys.
type Bindings struct {
	RotateButton        int
	PanButton           int
	FocusKey            int
	ResetKey            int
	NextTargetKey       int
	ToggleBackgroundKey int
	NextEnvironmentKey  int
}

// DefaultBindings returns left-drag to orbit, middle-drag to pan, F to focus, R to reset,
// Space for the next target, B to toggle the solid background and N for the next environment.
func DefaultBindings() Bindings {
	return Bindings{
		RotateButton:        common.MouseLeft,
		PanButton:           common.MouseMiddle,
		FocusKey:            common.KeyF,
		ResetKey:            common.KeyR,
		NextTargetKey:       common.KeySpace,
		ToggleBackgroundKey: common.KeyB,
		NextEnvironmentKey:  common.KeyN,
	}
}

// ParseBindings resolves configuration names into Bindings. Actions missing from names keep their default.
//
// Parameters:
//   - names: action to button/key name, for example {"rotate": "left", "focus": "f"}
//
// Returns:
//   - Bindings: the resolved bindings
//   - error: error naming the first unknown action, button or key
func ParseBindings(names map[Action]string) (Bindings, error) {
	b := DefaultBindings()
	for action, name := range names {
		var target *int
		isButton := false
		switch action {
		case ActionRotate:
			target, isButton = &b.RotateButton, true
		case ActionPan:
			target, isButton = &b.PanButton, true
		case ActionFocus:
			target = &b.FocusKey
		case ActionReset:
			target = &b.ResetKey
		case ActionNextTarget:
			target = &b.NextTargetKey
		case ActionToggleBackground:
			target = &b.ToggleBackgroundKey
		case ActionNextEnvironment:
			target = &b.NextEnvironmentKey
		default:
			return Bindings{}, fmt.Errorf("unknown action %q", action)
		}

		var code int
		var ok bool
		if isButton {
			code, ok = common.MouseButtonByName(name)
		} else {
			code, ok = common.KeyByName(name)
		}
		if !ok {
			return Bindings{}, fmt.Errorf("action %q: unknown input %q", action, name)
		}
		*target = code
	}
	return b, nil
}

// keyAction returns the key-bound action for code.
func (b Bindings) keyAction(code int) (Action, bool) {
	switch code {
	case b.FocusKey:
		return ActionFocus, true
	case b.ResetKey:
		return ActionReset, true
	case b.NextTargetKey:
		return ActionNextTarget, true
	case b.ToggleBackgroundKey:
		return ActionToggleBackground, true
	case b.NextEnvironmentKey:
		return ActionNextEnvironment, true
	}
	return "", false
}
