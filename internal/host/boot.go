package host

import (
	"log"
	"os"
	"time"

	"github.com/zotley/uxn/internal/device"
	"github.com/zotley/uxn/internal/uxn"
)

// Options configures a booted machine.
type Options struct {
	BaseDir string
	Debug   bool
	Logger  *log.Logger
}

// Boot wires a fresh Machine with the system, console, file and
// datetime devices (everything else stays the no-op stub uxn.NewMachine
// already installs), ready for Run to load a ROM and drive it.
type Boot struct {
	Machine  *uxn.Machine
	System   *device.System
	Console  *device.Console
	File     *device.File
	Datetime *device.Datetime
	log      *log.Logger
}

// NewBoot constructs the machine and registers its live devices.
func NewBoot(opts Options) *Boot {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	m := uxn.NewMachine()
	b := &Boot{
		Machine:  m,
		System:   device.NewSystem(m, logger),
		Console:  device.NewConsole(m, os.Stdout, os.Stderr),
		File:     device.NewFile(m, opts.BaseDir),
		Datetime: device.NewDatetime(m),
		log:      logger,
	}
	b.System.SetDebug(opts.Debug)
	return b
}

// Run loads rom at ResetVector, evaluates the reset vector, then drives
// the console vector each time host input has arrived, until the
// system device's halt register is written or Eval faults.
func (b *Boot) Run(rom []byte) error {
	b.Machine.Load(ResetVector, rom)

	if err := uxn.Eval(b.Machine, ResetVector); err != nil {
		return err
	}
	for !b.System.Halted {
		if b.Console.Pending() {
			if vec := b.Console.Vector(); vec != 0 {
				if err := uxn.Eval(b.Machine, vec); err != nil {
					return err
				}
			} else {
				// program never set a console vector; the input stays
				// queued and the loop waits.
				time.Sleep(time.Millisecond)
			}
		} else {
			time.Sleep(time.Millisecond)
		}
	}
	return nil
}
