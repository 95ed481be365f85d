package config

// DeviceConfig is the root config for device.json
type DeviceConfig struct {
	TickMillis int           `json:"tickMillis"` // Poll period (milliseconds)
	Echoes     int           `json:"echoes"`     // Extra polls that repeat each fresh report
	Output     string        `json:"output"`     // HID gadget device node
	Once       bool          `json:"once"`       // Stop after the last step instead of looping
	Alert      AlertConfig   `json:"alert"`
	Display    DisplayConfig `json:"display"`
}

// AlertConfig configures the completion buzzer
type AlertConfig struct {
	Enabled   bool    `json:"enabled"`
	Frequency float64 `json:"frequency"` // Tone frequency (Hz)
	Millis    int     `json:"millis"`    // Tone length (milliseconds)
}

// DisplayConfig configures the preview and capture windows
type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Scale        int `json:"scale"`
}

// DefaultDevice returns the reference device settings. Fields missing from
// device.json keep these values.
func DefaultDevice() DeviceConfig {
	return DeviceConfig{
		TickMillis: 8,
		Echoes:     2,
		Output:     "/dev/hidg0",
		Alert: AlertConfig{
			Frequency: 880,
			Millis:    250,
		},
		Display: DisplayConfig{
			ScreenWidth:  320,
			ScreenHeight: 180,
			Scale:        3,
		},
	}
}

// MacroFile is the on-disk form of a timeline
type MacroFile struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	LoopAnchor  int         `yaml:"loopAnchor"`
	Steps       []StepEntry `yaml:"steps"`
}

// StepEntry is one authored step. Ticks is decoded as a number so that
// fractional values can be detected and rejected, and as a pointer so that
// a missing key is an error rather than zero.
type StepEntry struct {
	Action string   `yaml:"action"`
	Ticks  *float64 `yaml:"ticks"`
}
