package gadget

import (
	"fmt"
	"os"
)

// ReportDescriptor is the HID report descriptor of the HORI Pokken pad with
// Home and Capture unlocked. Write it to the gadget's functions/hid.*/report_desc
// so the host parses reports the way package report encodes them.
var ReportDescriptor = []byte{
	0x05, 0x01, // Usage Page (Generic Desktop)
	0x09, 0x05, // Usage (Joystick)
	0xA1, 0x01, // Collection (Application)

	// 16 buttons
	0x15, 0x00, // Logical Minimum (0)
	0x25, 0x01, // Logical Maximum (1)
	0x35, 0x00, // Physical Minimum (0)
	0x45, 0x01, // Physical Maximum (1)
	0x75, 0x01, // Report Size (1)
	0x95, 0x10, // Report Count (16)
	0x05, 0x09, // Usage Page (Button)
	0x19, 0x01, // Usage Minimum (1)
	0x29, 0x10, // Usage Maximum (16)
	0x81, 0x02, // Input (Data, Var, Abs)

	// Hat switch, 4 bits plus 4 bits padding
	0x05, 0x01, // Usage Page (Generic Desktop)
	0x25, 0x07, // Logical Maximum (7)
	0x46, 0x3B, 0x01, // Physical Maximum (315)
	0x75, 0x04, // Report Size (4)
	0x95, 0x01, // Report Count (1)
	0x65, 0x14, // Unit (Degrees)
	0x09, 0x39, // Usage (Hat Switch)
	0x81, 0x42, // Input (Data, Var, Abs, Null)
	0x65, 0x00, // Unit (None)
	0x95, 0x01, // Report Count (1)
	0x81, 0x01, // Input (Const)

	// Sticks
	0x26, 0xFF, 0x00, // Logical Maximum (255)
	0x46, 0xFF, 0x00, // Physical Maximum (255)
	0x09, 0x30, // Usage (X)
	0x09, 0x31, // Usage (Y)
	0x09, 0x32, // Usage (Z)
	0x09, 0x35, // Usage (Rz)
	0x75, 0x08, // Report Size (8)
	0x95, 0x04, // Report Count (4)
	0x81, 0x02, // Input (Data, Var, Abs)

	// Vendor byte
	0x06, 0x00, 0xFF, // Usage Page (Vendor Defined)
	0x09, 0x20, // Usage (0x20)
	0x95, 0x01, // Report Count (1)
	0x81, 0x02, // Input (Data, Var, Abs)

	// 8 byte output report
	0x0A, 0x21, 0x26, // Usage (0x2621)
	0x95, 0x08, // Report Count (8)
	0x91, 0x02, // Output (Data, Var, Abs)

	0xC0, // End Collection
}

// WriteDescriptor writes ReportDescriptor to path
func WriteDescriptor(path string) error {
	if err := os.WriteFile(path, ReportDescriptor, 0644); err != nil {
		return fmt.Errorf("failed to write report descriptor: %w", err)
	}
	return nil
}
