package device

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/zotley/uxn/internal/uxn"
)

// File device ports, byte-for-byte grounded on file_poke in the
// reference SDL host: a seek offset, an append flag, a name pointer, a
// transfer length, and a pair of trigger ports whose low byte arrives as
// the DEO write itself and whose high byte is staged one port below.
const (
	fileOffset  = 0x00 // 0x00-0x01, seek position
	fileFlags   = 0x02 // bit 0: append instead of truncate on write
	fileNamePtr = 0x08 // 0x08-0x09
	fileLength  = 0x0a // 0x0a-0x0b
	fileReadHi  = 0x0c
	fileRead    = 0x0d // trigger: read length bytes into ram at (hi<<8)|b1
	fileWriteHi = 0x0e
	fileWrite   = 0x0f // trigger: write length bytes from ram at (hi<<8)|b1
)

// File is the id-0x7 device. All paths are resolved against baseDir and
// rejected if they would escape it, the same two-step Join-then-Rel
// check the teacher's FileIODevice.sanitizePath uses.
type File struct {
	dev     *uxn.Device
	m       *uxn.Machine
	baseDir string
}

// NewFile builds the file device rooted at baseDir and registers it on m.
func NewFile(m *uxn.Machine, baseDir string) *File {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		abs = baseDir
	}
	f := &File{m: m, baseDir: abs}
	f.dev = &uxn.Device{ID: 0x7, Talk: f.talk}
	m.RegisterDevice(f.dev)
	return f
}

func (f *File) talk(offset uint8, mode uxn.DeviceMode) {
	if mode == uxn.DeviceInput {
		return
	}
	switch offset {
	case fileRead:
		f.doRead()
	case fileWrite:
		f.doWrite()
	}
}

func (f *File) sanitizePath(name string) (string, bool) {
	if filepath.IsAbs(name) || strings.Contains(name, "..") {
		return "", false
	}
	full := filepath.Join(f.baseDir, name)
	rel, err := filepath.Rel(f.baseDir, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return full, true
}

func (f *File) readName() string {
	mem := &f.m.Memory
	addr := uint16(f.dev.Dat[fileNamePtr])<<8 | uint16(f.dev.Dat[fileNamePtr+1])
	var name []byte
	for i := 0; i < 256 && mem[addr] != 0; i++ {
		name = append(name, mem[addr])
		addr++
	}
	return string(name)
}

func (f *File) doRead() {
	mem := &f.m.Memory
	path, ok := f.sanitizePath(f.readName())
	if !ok {
		return
	}
	length := uint16(f.dev.Dat[fileLength])<<8 | uint16(f.dev.Dat[fileLength+1])
	offset := uint16(f.dev.Dat[fileOffset])<<8 | uint16(f.dev.Dat[fileOffset+1])
	addr := uint16(f.dev.Dat[fileReadHi])<<8 | uint16(f.dev.Dat[fileRead])

	data, err := os.ReadFile(path)
	if err != nil || int(offset)+int(length) > len(data) {
		return
	}
	copy(mem[addr:], data[offset:offset+length])
}

func (f *File) doWrite() {
	mem := &f.m.Memory
	path, ok := f.sanitizePath(f.readName())
	if !ok {
		return
	}
	length := uint16(f.dev.Dat[fileLength])<<8 | uint16(f.dev.Dat[fileLength+1])
	addr := uint16(f.dev.Dat[fileWriteHi])<<8 | uint16(f.dev.Dat[fileWrite])
	data := make([]byte, length)
	copy(data, mem[addr:int(addr)+int(length)])

	flags := os.O_WRONLY | os.O_CREATE
	if f.dev.Dat[fileFlags]&0x1 != 0 {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	fh, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return
	}
	defer fh.Close()
	fh.Write(data)
}
