package uxn

import "testing"

// TestOpcodeMatrixNeverPanics runs every one of the 256 instruction
// bytes against a range of starting stack depths and confirms Eval
// always terminates by either halting or returning a *Fault — the
// universal invariant every opcode must satisfy regardless of mode.
func TestOpcodeMatrixNeverPanics(t *testing.T) {
	for instr := 0; instr < 256; instr++ {
		for depth := 0; depth <= 6; depth++ {
			m := NewMachine()
			for i := 0; i < depth; i++ {
				m.WST.Data[i] = byte(i + 1)
				m.RST.Data[i] = byte(i + 1)
			}
			m.WST.Ptr = uint8(depth)
			m.RST.Ptr = uint8(depth)
			load(m, 0x0100, byte(instr), 0x00, 0x00, OpBRK)

			err := Eval(m, 0x0100)
			if err == nil {
				continue
			}
			if _, ok := err.(*Fault); !ok {
				t.Fatalf("opcode %#02x depth %d: non-Fault error %v", instr, depth, err)
			}
		}
	}
}

// TestPermuteOpsPreserveMultisetNonKeep checks the invariant from the
// spec's testable properties: POP/DUP/SWP/OVR/ROT in non-keep mode only
// rearrange, discard or (DUP, OVR) copy existing bytes, never invent new
// ones.
func TestPermuteOpsPreserveMultisetNonKeep(t *testing.T) {
	ops := []struct {
		op    uint8
		extra byte // the seed byte the op copies, or 0 if it copies none
	}{
		{OpPOP, 0}, {OpDUP, 0x33}, {OpSWP, 0}, {OpOVR, 0x22}, {OpROT, 0},
	}
	for _, tc := range ops {
		op := tc.op
		m := NewMachine()
		seed := []byte{0x11, 0x22, 0x33}
		copy(m.WST.Data[:], seed)
		m.WST.Ptr = uint8(len(seed))
		load(m, 0x0100, op, OpBRK)
		if err := Eval(m, 0x0100); err != nil {
			t.Fatalf("op %#02x: %v", op, err)
		}
		counts := map[byte]int{}
		for _, b := range seed {
			counts[b]++
		}
		if tc.extra != 0 {
			counts[tc.extra]++
		}
		for i := 0; i < int(m.WST.Ptr); i++ {
			counts[m.WST.Data[i]]--
		}
		for b, c := range counts {
			if c < 0 {
				t.Fatalf("op %#02x: byte %#02x appeared out of nowhere", op, b)
			}
		}
	}
}

func TestKeepModeLeavesOperandsInPlace(t *testing.T) {
	m := NewMachine()
	load(m, 0x0100, OpLIT, 0x07, OpLIT, 0x03, OpADD|ModeKeep, OpBRK)
	if err := Eval(m, 0x0100); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	want := []byte{0x07, 0x03, 0x0a}
	if int(m.WST.Ptr) != len(want) {
		t.Fatalf("wst.ptr = %d, want %d", m.WST.Ptr, len(want))
	}
	for i, b := range want {
		if m.WST.Data[i] != b {
			t.Errorf("wst.data[%d] = %#02x, want %#02x", i, m.WST.Data[i], b)
		}
	}
}

// TestLDZkLeavesAddressAndAppendsValue checks the exact keep-mode shape
// LDZk is supposed to have: the zero-page address stays where it was,
// and the loaded byte is appended above it rather than overwriting it.
func TestLDZkLeavesAddressAndAppendsValue(t *testing.T) {
	m := NewMachine()
	m.Memory[0x20] = 0xab
	load(m, 0x0100, OpLIT, 0x20, OpLDZ|ModeKeep, OpBRK)
	if err := Eval(m, 0x0100); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if m.WST.Ptr != 2 {
		t.Fatalf("wst.ptr = %d, want 2", m.WST.Ptr)
	}
	if m.WST.Data[0] != 0x20 {
		t.Fatalf("wst.data[0] = %#02x, want 0x20 (address kept)", m.WST.Data[0])
	}
	if m.WST.Data[1] != 0xab {
		t.Fatalf("wst.data[1] = %#02x, want 0xab (value appended)", m.WST.Data[1])
	}
}

// TestDEOkLeavesPortAndValue checks that DEOk, which has no stack
// result at all, leaves both its operands on the stack untouched.
func TestDEOkLeavesPortAndValue(t *testing.T) {
	m := NewMachine()
	var got uint8
	m.RegisterDevice(&Device{ID: 0x2, Talk: func(offset uint8, mode DeviceMode) {
		if mode == DeviceOutput {
			got = offset
		}
	}})
	load(m, 0x0100, OpLIT, 0x2a, OpLIT, 0x20, OpDEO|ModeKeep, OpBRK)
	if err := Eval(m, 0x0100); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got != 0x00 {
		t.Fatalf("talk offset = %#02x, want 0x00", got)
	}
	if m.WST.Ptr != 2 || m.WST.Data[0] != 0x2a || m.WST.Data[1] != 0x20 {
		t.Fatalf("wst = %v (ptr %d), want [2a 20]", m.WST.Data[:m.WST.Ptr], m.WST.Ptr)
	}
}
