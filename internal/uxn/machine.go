package uxn

// Machine is the whole addressable state of one Uxn instance: 64 KiB of
// memory, the two stacks, and the 16-slot device table.
type Machine struct {
	Memory  [65536]byte
	WST     Stack
	RST     Stack
	Devices [16]*Device
}

// NewMachine returns a Machine with every device slot populated by a
// no-op stub, so DEI/DEO against any port is always safe to dispatch.
// Callers replace the slots they care about with RegisterDevice before
// booting a ROM.
func NewMachine() *Machine {
	m := &Machine{}
	for i := range m.Devices {
		m.Devices[i] = NopDevice(uint8(i))
	}
	return m
}

// RegisterDevice installs dev at its own ID slot, replacing whatever was
// there (a stub, by default).
func (m *Machine) RegisterDevice(dev *Device) {
	m.Devices[dev.ID&0x0f] = dev
}

// Load copies rom into memory starting at addr, the convention the
// reference bootstrap uses to place a program's reset vector at 0x0100.
func (m *Machine) Load(addr uint16, rom []byte) {
	copy(m.Memory[addr:], rom)
}

// DeviceVector returns the entry vector a device has requested for its
// port, read big-endian from the first two bytes of its page — the same
// convention consoles, screens and timers use to ask the host to re-run
// Eval against a handler routine.
func DeviceVector(dev *Device) uint16 {
	return uint16(dev.Dat[0])<<8 | uint16(dev.Dat[1])
}
