package uxn

// doPermute implements the five pure stack-reshuffling opcodes (POP, DUP,
// SWP, OVR, ROT). readUnits bytes (or byte pairs, in short mode) are read
// from just below the stack top, deepest first, and handed to arrange,
// which returns the replacement units in the same deepest-first order.
// In keep mode the read units are left untouched and the replacement is
// appended on top; otherwise the replacement overwrites the read window
// in place. Reports true on a stack fault.
func doPermute(s *Stack, short, keep bool, readUnits int, arrange func(in [][]byte) [][]byte) bool {
	unit := 1
	if short {
		unit = 2
	}
	depthBytes := readUnits * unit
	if s.checkUnderflow(depthBytes) {
		return true
	}
	base := int(s.Ptr) - depthBytes
	in := make([][]byte, readUnits)
	for i := 0; i < readUnits; i++ {
		in[i] = s.Data[base+i*unit : base+i*unit+unit]
	}
	out := arrange(in)

	writeBase := base
	if keep {
		writeBase = int(s.Ptr)
	}
	produceBytes := len(out) * unit
	newPtr := writeBase + produceBytes
	if s.checkOverflow(newPtr) {
		return true
	}

	flat := make([]byte, produceBytes)
	for i, u := range out {
		copy(flat[i*unit:], u)
	}
	copy(s.Data[writeBase:writeBase+produceBytes], flat)
	s.Ptr = uint8(newPtr)
	return false
}

// doBinary implements the comparison, arithmetic, bitwise and shift
// opcodes, all of which read two operands (a shallower, b deeper) and
// write one result. compare forces a 1-byte boolean result regardless of
// operand width; otherwise the result is as wide as the operands.
func doBinary(s *Stack, short, keep, compare bool, op func(a, b uint16) uint16) bool {
	unit := 1
	if short {
		unit = 2
	}
	depth := 2 * unit
	if s.checkUnderflow(depth) {
		return true
	}
	base := int(s.Ptr) - depth

	var a, b uint16
	if short {
		a = be16(s.Data[base+unit], s.Data[base+unit+1])
		b = be16(s.Data[base], s.Data[base+1])
	} else {
		a = uint16(s.Data[base+unit])
		b = uint16(s.Data[base])
	}
	result := op(a, b)

	resultWidth := unit
	if compare {
		resultWidth = 1
	}
	writeBase := base
	if keep {
		writeBase = int(s.Ptr)
	}
	newPtr := writeBase + resultWidth
	if s.checkOverflow(newPtr) {
		return true
	}

	if resultWidth == 2 {
		s.Data[writeBase] = byte(result >> 8)
		s.Data[writeBase+1] = byte(result)
	} else {
		s.Data[writeBase] = byte(result)
	}
	s.Ptr = uint8(newPtr)
	return false
}

// doMemLoad implements LDZ/LDR/LDA: pop an address of addrWidth bytes
// from primary, push the value read through load8/load16 depending on
// mode. The address operand itself is always plain (never widened by
// short mode); only the loaded value's width changes. In keep mode the
// address is left in place and the value is appended above it, the same
// read-in-place-or-appended-on-top shape doPermute uses.
func doMemLoad(s *Stack, short, keep bool, addrWidth int, load8, load16 func(addr uint16) uint16) bool {
	if s.checkUnderflow(addrWidth) {
		return true
	}
	base := int(s.Ptr) - addrWidth
	var addr uint16
	if addrWidth == 2 {
		addr = be16(s.Data[base], s.Data[base+1])
	} else {
		addr = uint16(s.Data[base])
	}

	valWidth := 1
	if short {
		valWidth = 2
	}
	writeBase := base
	if keep {
		writeBase = int(s.Ptr)
	}
	newPtr := writeBase + valWidth
	if s.checkOverflow(newPtr) {
		return true
	}
	if short {
		v := load16(addr)
		s.Data[writeBase] = byte(v >> 8)
		s.Data[writeBase+1] = byte(v)
	} else {
		v := load8(addr)
		s.Data[writeBase] = byte(v)
	}
	s.Ptr = uint8(newPtr)
	return false
}

// doMemStore implements STZ/STR/STA: pop an addrWidth-byte address (the
// shallower operand) and a value of 1 or 2 bytes (the deeper operand,
// widened by short mode), and hand both to store8/store16. There is no
// result to push, so keep mode simply leaves both operands on the stack
// instead of popping them.
func doMemStore(s *Stack, short, keep bool, addrWidth int, store8, store16 func(addr uint16, v uint16)) bool {
	valWidth := 1
	if short {
		valWidth = 2
	}
	depth := addrWidth + valWidth
	if s.checkUnderflow(depth) {
		return true
	}
	base := int(s.Ptr) - depth

	var val uint16
	if short {
		val = be16(s.Data[base], s.Data[base+1])
	} else {
		val = uint16(s.Data[base])
	}
	var addr uint16
	if addrWidth == 2 {
		addr = be16(s.Data[base+valWidth], s.Data[base+valWidth+1])
	} else {
		addr = uint16(s.Data[base+valWidth])
	}

	if short {
		store16(addr, val)
	} else {
		store8(addr, val)
	}
	if !keep {
		s.Ptr = uint8(base)
	}
	return false
}

// doJump implements JMP/JMP2: pop a destination (a signed relative byte,
// or an absolute short) and return the new pc. JMP produces no stack
// result, so keep mode just leaves the destination operand in place.
func doJump(s *Stack, short, keep bool, pc uint16) (uint16, bool) {
	width := 1
	if short {
		width = 2
	}
	if s.checkUnderflow(width) {
		return 0, true
	}
	base := int(s.Ptr) - width
	var newPC uint16
	if short {
		newPC = be16(s.Data[base], s.Data[base+1])
	} else {
		newPC = pc + uint16(int8(s.Data[base]))
	}
	if !keep {
		s.Ptr = uint8(base)
	}
	return newPC, false
}

// doBranch implements JCN/JCN2: pop a destination the same way as
// doJump, plus a condition byte beneath it; only jump if the condition
// is non-zero. Keep mode leaves both operands on the stack.
func doBranch(s *Stack, short, keep bool, pc uint16) (uint16, bool) {
	width := 1
	if short {
		width = 2
	}
	depth := width + 1
	if s.checkUnderflow(depth) {
		return 0, true
	}
	base := int(s.Ptr) - depth
	cond := s.Data[base]
	var dest uint16
	if short {
		addr := be16(s.Data[base+1], s.Data[base+2])
		dest = addr
	} else {
		dest = pc + uint16(int8(s.Data[base+1]))
	}
	if !keep {
		s.Ptr = uint8(base)
	}
	if cond != 0 {
		return dest, false
	}
	return pc, false
}

// doCall implements JSR/JSR2: like doJump, but first pushes the current
// pc onto the other stack as a two-byte return address. That push always
// happens, keep or not — it is the call's side effect, not a result
// drawn from primary's read window — so keep only decides whether the
// destination operand is popped off primary.
func doCall(primary, other *Stack, short, keep bool, pc uint16) (uint16, bool) {
	width := 1
	if short {
		width = 2
	}
	if primary.checkUnderflow(width) {
		return 0, true
	}
	base := int(primary.Ptr) - width
	var newPC uint16
	if short {
		newPC = be16(primary.Data[base], primary.Data[base+1])
	} else {
		newPC = pc + uint16(int8(primary.Data[base]))
	}

	if other.checkOverflow(int(other.Ptr) + 2) {
		return 0, true
	}
	other.push8(uint8(pc >> 8))
	other.push8(uint8(pc))
	if !keep {
		primary.Ptr = uint8(base)
	}
	return newPC, false
}

// doStash implements STH: move one value (1 or 2 bytes) from primary to
// other. Keep mode leaves the value on primary as well — the push onto
// other always happens, so STHk leaves the source value on its stack
// and a copy on the other one.
func doStash(primary, other *Stack, short, keep bool) bool {
	width := 1
	if short {
		width = 2
	}
	if primary.checkUnderflow(width) {
		return true
	}
	if other.checkOverflow(int(other.Ptr) + width) {
		return true
	}
	base := int(primary.Ptr) - width
	if short {
		other.push8(primary.Data[base])
		other.push8(primary.Data[base+1])
	} else {
		other.push8(primary.Data[base])
	}
	if !keep {
		primary.Ptr = uint8(base)
	}
	return false
}

// doDeviceIn implements DEI/DEI2: pop a port byte, push the byte(s) read
// from that device's page, invoking Talk once per byte read exactly as
// the reference devpeek8/devpeek16 helpers do. In keep mode the port
// byte is left in place and the value is appended above it.
func doDeviceIn(m *Machine, s *Stack, short, keep bool) bool {
	if s.checkUnderflow(1) {
		return true
	}
	port := s.peek8(1)
	dev := m.Devices[port>>4]

	width := 1
	if short {
		width = 2
	}
	base := int(s.Ptr) - 1
	writeBase := base
	if keep {
		writeBase = int(s.Ptr)
	}
	newPtr := writeBase + width
	if s.checkOverflow(newPtr) {
		return true
	}
	if short {
		hi := dev.peek8(port)
		lo := dev.peek8(port + 1)
		s.Data[writeBase] = hi
		s.Data[writeBase+1] = lo
	} else {
		s.Data[writeBase] = dev.peek8(port)
	}
	s.Ptr = uint8(newPtr)
	return false
}

// doDeviceOut implements DEO/DEO2: pop a port byte and a value (1 or 2
// bytes), writing it into that device's page and invoking Talk once per
// byte written. There is no stack result, so keep mode just leaves both
// operands in place instead of popping them.
func doDeviceOut(m *Machine, s *Stack, short, keep bool) bool {
	width := 1
	if short {
		width = 2
	}
	depth := 1 + width
	if s.checkUnderflow(depth) {
		return true
	}
	base := int(s.Ptr) - depth
	port := s.Data[base+width]
	dev := m.Devices[port>>4]
	if short {
		v := be16(s.Data[base], s.Data[base+1])
		dev.poke16(port, v)
	} else {
		dev.poke8(port, s.Data[base])
	}
	if !keep {
		s.Ptr = uint8(base)
	}
	return false
}
