package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyB     = 66  // B key (ASCII)
	KeyF     = 70  // F key (ASCII)
	KeyN     = 78  // N key (ASCII)
	KeyR     = 82  // R key (ASCII)
	KeySpace = 32  // Spacebar (ASCII)
	KeyEsc   = 256 // Escape key (GLFW)

	Key1 = 49 // 1 key (ASCII)
	Key2 = 50 // 2 key (ASCII)
	Key3 = 51 // 3 key (ASCII)
)

// Mouse button codes, matching glfw.MouseButton numbering.
const (
	MouseLeft   = 0
	MouseRight  = 1
	MouseMiddle = 2
)

var keyNames = map[string]int{
	"b":     KeyB,
	"f":     KeyF,
	"n":     KeyN,
	"r":     KeyR,
	"space": KeySpace,
	"esc":   KeyEsc,
	"1":     Key1,
	"2":     Key2,
	"3":     Key3,
}

var buttonNames = map[string]int{
	"left":   MouseLeft,
	"right":  MouseRight,
	"middle": MouseMiddle,
}

// KeyByName resolves a configuration key name (for example "space" or "f") to its key code.
func KeyByName(name string) (int, bool) {
	code, ok := keyNames[name]
	return code, ok
}

// MouseButtonByName resolves "left", "right" or "middle" to its button code.
func MouseButtonByName(name string) (int, bool) {
	code, ok := buttonNames[name]
	return code, ok
}
