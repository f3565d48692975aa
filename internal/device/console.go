package device

import (
	"fmt"
	"io"
	"sync"

	"github.com/zotley/uxn/internal/uxn"
)

// Console device ports, grounded on console_poke in the reference SDL
// host: a plain byte write, a hex-byte write, and a hex-short/string
// write that each use the byte one port below as the stored high half
// of a 16-bit value or pointer.
const (
	conVector = 0x00
	conInput  = 0x02 // read: next queued stdin byte
	conChar   = 0x08
	conByte   = 0x09
	conShortH = 0x0a
	conShort  = 0x0b
	conStrH   = 0x0c
	conString = 0x0d
	conError  = 0x0f
)

// Console is the id-0x1 device. Output ports print through Out (stdout)
// or Err (stderr); input is driven by a mutex-guarded byte queue the
// host's raw-terminal reader goroutine appends to, mirroring the
// producer/consumer split terminal_host.go uses for its MMIO console.
type Console struct {
	dev *uxn.Device
	m   *uxn.Machine
	Out io.Writer
	Err io.Writer

	mu    sync.Mutex
	queue []byte
}

// NewConsole builds the console device and registers it on m.
func NewConsole(m *uxn.Machine, out, errOut io.Writer) *Console {
	c := &Console{m: m, Out: out, Err: errOut}
	c.dev = &uxn.Device{ID: 0x1, Talk: c.talk}
	m.RegisterDevice(c.dev)
	return c
}

// PushInput appends a host keystroke to the pending queue. Safe to call
// concurrently with Eval.
func (c *Console) PushInput(b byte) {
	c.mu.Lock()
	c.queue = append(c.queue, b)
	c.mu.Unlock()
}

// Pending reports whether input bytes are waiting to be delivered, so
// the host run loop knows when to invoke the console vector.
func (c *Console) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue) > 0
}

// Vector returns the device's configured entry vector.
func (c *Console) Vector() uint16 {
	return uxn.DeviceVector(c.dev)
}

func (c *Console) talk(offset uint8, mode uxn.DeviceMode) {
	mem := &c.m.Memory
	if mode == uxn.DeviceInput {
		if offset == conInput {
			c.mu.Lock()
			if len(c.queue) > 0 {
				c.dev.Dat[conInput] = c.queue[0]
				c.queue = c.queue[1:]
			} else {
				c.dev.Dat[conInput] = 0
			}
			c.mu.Unlock()
		}
		return
	}

	switch offset {
	case conChar:
		fmt.Fprintf(c.Out, "%c", c.dev.Dat[conChar])
	case conByte:
		fmt.Fprintf(c.Out, "0x%02x\n", c.dev.Dat[conByte])
	case conShort:
		v := uint16(c.dev.Dat[conShortH])<<8 | uint16(c.dev.Dat[conShort])
		fmt.Fprintf(c.Out, "0x%04x\n", v)
	case conString:
		addr := uint16(c.dev.Dat[conStrH])<<8 | uint16(c.dev.Dat[conString])
		end := addr
		for mem[end] != 0 {
			end++
		}
		fmt.Fprintf(c.Out, "%s\n", mem[addr:end])
	case conError:
		fmt.Fprintf(c.Err, "0x%02x\n", c.dev.Dat[conError])
	}
}
