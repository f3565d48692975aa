package host

import "os"

// ResetVector is the address every Uxn ROM is loaded at and first run
// from, leaving the zero page free for the devices' reset-time state.
const ResetVector = 0x0100

// LoadROM reads a headerless Uxn binary from path.
func LoadROM(path string) ([]byte, error) {
	return os.ReadFile(path)
}
