package uxn

import "fmt"

// StackName identifies which of the two stacks a Fault occurred on.
type StackName string

const (
	WorkingStack StackName = "working"
	ReturnStack  StackName = "return"
)

// Fault is the error Eval returns when a stack over/underflows. It is
// always fatal to the Eval call in progress; the core never attempts to
// recover from one itself.
type Fault struct {
	Stack  StackName
	Err    uint8
	Opcode uint8
	PC     uint16
}

func (f *Fault) Error() string {
	kind := "overflow"
	if f.Err == ErrUnderflow {
		kind = "underflow"
	}
	return fmt.Sprintf("uxn: %s stack %s at pc %#04x, opcode %#02x", f.Stack, kind, f.PC, f.Opcode)
}

func newFault(name StackName, s *Stack, opcode uint8, pc uint16) *Fault {
	return &Fault{Stack: name, Err: s.Err, Opcode: opcode, PC: pc}
}
