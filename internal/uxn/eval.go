package uxn

// Eval runs the interpreter starting at pc until the program counter
// returns to zero (BRK) or either stack raises a fault. It mutates m in
// place and returns nil on a clean halt, or a *Fault describing the
// first stack error encountered.
func Eval(m *Machine, pc uint16) error {
	for pc != 0 {
		instr := m.Memory[pc]
		pc++

		short := instr&ModeShort != 0
		ret := instr&ModeReturn != 0
		keep := instr&ModeKeep != 0
		base := instr & baseMask

		primary, other := &m.WST, &m.RST
		primaryName, otherName := WorkingStack, ReturnStack
		if ret {
			primary, other = &m.RST, &m.WST
			primaryName, otherName = ReturnStack, WorkingStack
		}

		var faulted bool
		var faultStack *Stack
		var faultName StackName

		switch base {
		case OpBRK:
			pc = 0
			continue

		case OpLIT:
			width := 1
			if short {
				width = 2
			}
			if primary.checkOverflow(int(primary.Ptr) + width) {
				faulted, faultStack, faultName = true, primary, primaryName
				break
			}
			if width == 2 {
				primary.push8(m.Memory[pc])
				primary.push8(m.Memory[pc+1])
				pc += 2
			} else {
				primary.push8(m.Memory[pc])
				pc++
			}

		case OpNOP:
			// no operation, any mode

		case OpPOP:
			faulted = doPermute(primary, short, keep, 1, func(in [][]byte) [][]byte {
				return nil
			})
			faultStack, faultName = primary, primaryName

		case OpDUP:
			faulted = doPermute(primary, short, keep, 1, func(in [][]byte) [][]byte {
				return [][]byte{in[0], in[0]}
			})
			faultStack, faultName = primary, primaryName

		case OpSWP:
			faulted = doPermute(primary, short, keep, 2, func(in [][]byte) [][]byte {
				return [][]byte{in[1], in[0]}
			})
			faultStack, faultName = primary, primaryName

		case OpOVR:
			faulted = doPermute(primary, short, keep, 2, func(in [][]byte) [][]byte {
				return [][]byte{in[0], in[1], in[0]}
			})
			faultStack, faultName = primary, primaryName

		case OpROT:
			faulted = doPermute(primary, short, keep, 3, func(in [][]byte) [][]byte {
				return [][]byte{in[1], in[2], in[0]}
			})
			faultStack, faultName = primary, primaryName

		case OpEQU:
			faulted = doBinary(primary, short, keep, true, func(a, b uint16) uint16 { return boolU16(b == a) })
			faultStack, faultName = primary, primaryName

		case OpNEQ:
			faulted = doBinary(primary, short, keep, true, func(a, b uint16) uint16 { return boolU16(b != a) })
			faultStack, faultName = primary, primaryName

		case OpGTH:
			faulted = doBinary(primary, short, keep, true, func(a, b uint16) uint16 { return boolU16(b > a) })
			faultStack, faultName = primary, primaryName

		case OpLTH:
			faulted = doBinary(primary, short, keep, true, func(a, b uint16) uint16 { return boolU16(b < a) })
			faultStack, faultName = primary, primaryName

		case OpJMP:
			newPC, f := doJump(primary, short, keep, pc)
			if f {
				faulted, faultStack, faultName = true, primary, primaryName
				break
			}
			pc = newPC

		case OpJCN:
			newPC, f := doBranch(primary, short, keep, pc)
			if f {
				faulted, faultStack, faultName = true, primary, primaryName
				break
			}
			pc = newPC

		case OpJSR:
			newPC, f := doCall(primary, other, short, keep, pc)
			if f {
				faulted = true
				if primary.faulted() {
					faultStack, faultName = primary, primaryName
				} else {
					faultStack, faultName = other, otherName
				}
				break
			}
			pc = newPC

		case OpSTH:
			f := doStash(primary, other, short, keep)
			if f {
				faulted = true
				if primary.faulted() {
					faultStack, faultName = primary, primaryName
				} else {
					faultStack, faultName = other, otherName
				}
			}

		case OpLDZ:
			faulted = doMemLoad(primary, short, keep, 1, func(addr uint16) uint16 { return uint16(m.Memory[addr]) },
				func(addr uint16) uint16 { return be16(m.Memory[addr], m.Memory[addr+1]) })
			faultStack, faultName = primary, primaryName

		case OpSTZ:
			faulted = doMemStore(primary, short, keep, 1, func(addr uint16, v uint16) {
				m.Memory[addr] = byte(v)
			}, func(addr uint16, v uint16) {
				m.Memory[addr] = byte(v >> 8)
				m.Memory[addr+1] = byte(v)
			})
			faultStack, faultName = primary, primaryName

		case OpLDR:
			base := pc
			faulted = doMemLoad(primary, short, keep, 1, func(off uint16) uint16 {
				return uint16(m.Memory[base+uint16(int8(off))])
			}, func(off uint16) uint16 {
				a := base + uint16(int8(off))
				return be16(m.Memory[a], m.Memory[a+1])
			})
			faultStack, faultName = primary, primaryName

		case OpSTR:
			pcBase := pc
			faulted = doMemStore(primary, short, keep, 1, func(off uint16, v uint16) {
				m.Memory[pcBase+uint16(int8(off))] = byte(v)
			}, func(off uint16, v uint16) {
				a := pcBase + uint16(int8(off))
				m.Memory[a] = byte(v >> 8)
				m.Memory[a+1] = byte(v)
			})
			faultStack, faultName = primary, primaryName

		case OpLDA:
			faulted = doMemLoad(primary, short, keep, 2, func(addr uint16) uint16 { return uint16(m.Memory[addr]) },
				func(addr uint16) uint16 { return be16(m.Memory[addr], m.Memory[addr+1]) })
			faultStack, faultName = primary, primaryName

		case OpSTA:
			faulted = doMemStore(primary, short, keep, 2, func(addr uint16, v uint16) {
				m.Memory[addr] = byte(v)
			}, func(addr uint16, v uint16) {
				m.Memory[addr] = byte(v >> 8)
				m.Memory[addr+1] = byte(v)
			})
			faultStack, faultName = primary, primaryName

		case OpDEI:
			faulted = doDeviceIn(m, primary, short, keep)
			faultStack, faultName = primary, primaryName

		case OpDEO:
			faulted = doDeviceOut(m, primary, short, keep)
			faultStack, faultName = primary, primaryName

		case OpADD:
			faulted = doBinary(primary, short, keep, false, func(a, b uint16) uint16 { return b + a })
			faultStack, faultName = primary, primaryName

		case OpSUB:
			faulted = doBinary(primary, short, keep, false, func(a, b uint16) uint16 { return b - a })
			faultStack, faultName = primary, primaryName

		case OpMUL:
			faulted = doBinary(primary, short, keep, false, func(a, b uint16) uint16 { return b * a })
			faultStack, faultName = primary, primaryName

		case OpDIV:
			faulted = doBinary(primary, short, keep, false, func(a, b uint16) uint16 {
				if a == 0 {
					return 0
				}
				return b / a
			})
			faultStack, faultName = primary, primaryName

		case OpAND:
			faulted = doBinary(primary, short, keep, false, func(a, b uint16) uint16 { return b & a })
			faultStack, faultName = primary, primaryName

		case OpORA:
			faulted = doBinary(primary, short, keep, false, func(a, b uint16) uint16 { return b | a })
			faultStack, faultName = primary, primaryName

		case OpEOR:
			faulted = doBinary(primary, short, keep, false, func(a, b uint16) uint16 { return b ^ a })
			faultStack, faultName = primary, primaryName

		case OpSFT:
			faulted = doBinary(primary, short, keep, false, func(a, b uint16) uint16 {
				return b >> (a & 0x0f) << ((a & 0xf0) >> 4)
			})
			faultStack, faultName = primary, primaryName
		}

		if faulted {
			return newFault(faultName, faultStack, instr, pc)
		}
	}
	return nil
}

func boolU16(v bool) uint16 {
	if v {
		return 1
	}
	return 0
}

func be16(hi, lo byte) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}
