// Package device implements the concrete Uxn peripherals this host ships:
// system, console, file and datetime are fully wired; the remaining
// canonical device ids are left as the no-op stubs uxn.NopDevice already
// provides.
package device

import (
	"log"

	"github.com/zotley/uxn/internal/uxn"
)

// System device ports, following the Varvara convention the reference
// SDL host (emulator.c's system_poke) and uxntal programs assume.
const (
	sysVector  = 0x00 // 0x00-0x01
	sysExpansn = 0x02 // reserved
	sysWstPtr  = 0x04 // informational wst.ptr mirror
	sysRstPtr  = 0x05 // informational rst.ptr mirror
	sysRed     = 0x08 // 0x08-0x09, palette (stored, never rendered)
	sysGreen   = 0x0a
	sysBlue    = 0x0c
	sysDebug   = 0x0e // write: a non-zero byte logs both stack pointers at once
	sysHalt    = 0x0f // write: sets Halted with this byte as exit code; Eval itself runs on to its BRK
)

// System is the id-0x0 device: it owns the palette registers (kept but
// never rendered, since pixel output is out of scope), a debug-dump
// toggle, and the halt/exit-code register the CLI host polls after Eval
// returns to decide its own process exit status.
type System struct {
	dev      *uxn.Device
	m        *uxn.Machine
	log      *log.Logger
	Halted   bool
	ExitCode uint8
}

// NewSystem builds the system device and registers it on m.
func NewSystem(m *uxn.Machine, logger *log.Logger) *System {
	s := &System{m: m, log: logger}
	s.dev = &uxn.Device{ID: 0x0, Talk: s.talk}
	m.RegisterDevice(s.dev)
	return s
}

// SetDebug stores 1 (or 0) in the debug register without invoking Talk,
// so the guest reads that value back through DEI. It logs nothing: a
// stack dump is logged only when the guest writes a non-zero byte to the
// debug port.
func (s *System) SetDebug(on bool) {
	if on {
		s.dev.Dat[sysDebug] = 1
	} else {
		s.dev.Dat[sysDebug] = 0
	}
}

func (s *System) talk(offset uint8, mode uxn.DeviceMode) {
	if mode == uxn.DeviceInput {
		switch offset {
		case sysWstPtr:
			s.dev.Dat[sysWstPtr] = s.m.WST.Ptr
		case sysRstPtr:
			s.dev.Dat[sysRstPtr] = s.m.RST.Ptr
		}
		return
	}
	switch offset {
	case sysDebug:
		if s.dev.Dat[sysDebug] != 0 {
			s.log.Printf("system debug: wst.ptr=%d rst.ptr=%d", s.m.WST.Ptr, s.m.RST.Ptr)
		}
	case sysHalt:
		s.Halted = true
		s.ExitCode = s.dev.Dat[sysHalt]
	}
}
