package device

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zotley/uxn/internal/uxn"
)

func setName(m *uxn.Machine, f *File, name string, nameAddr uint16) {
	copy(m.Memory[nameAddr:], append([]byte(name), 0))
	f.dev.Dat[fileNamePtr] = byte(nameAddr >> 8)
	f.dev.Dat[fileNamePtr+1] = byte(nameAddr)
}

func TestFileWriteThenRead(t *testing.T) {
	dir := t.TempDir()
	m := uxn.NewMachine()
	f := NewFile(m, dir)

	const nameAddr, dataAddr = 0x0300, 0x0400
	setName(m, f, "out.txt", nameAddr)
	copy(m.Memory[dataAddr:], []byte("hello"))
	f.dev.Dat[fileLength] = 0
	f.dev.Dat[fileLength+1] = 5
	f.dev.Dat[fileWriteHi] = byte(dataAddr >> 8)
	f.dev.Dat[fileWrite] = byte(dataAddr & 0xff)
	f.talk(fileWrite, uxn.DeviceOutput)

	got, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	if err != nil {
		t.Fatalf("file not written: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("file contents = %q, want %q", got, "hello")
	}

	const readAddr = 0x0500
	f.dev.Dat[fileReadHi] = byte(readAddr >> 8)
	f.dev.Dat[fileRead] = byte(readAddr & 0xff)
	f.talk(fileRead, uxn.DeviceOutput)
	if string(m.Memory[readAddr:readAddr+5]) != "hello" {
		t.Fatalf("read back = %q, want %q", m.Memory[readAddr:readAddr+5], "hello")
	}
}

func TestFileAppendFlag(t *testing.T) {
	dir := t.TempDir()
	m := uxn.NewMachine()
	f := NewFile(m, dir)

	const nameAddr, dataAddr = 0x0300, 0x0400
	setName(m, f, "log.txt", nameAddr)
	copy(m.Memory[dataAddr:], []byte("ab"))
	f.dev.Dat[fileLength+1] = 2
	f.dev.Dat[fileWriteHi] = byte(dataAddr >> 8)
	f.dev.Dat[fileWrite] = byte(dataAddr & 0xff)

	f.talk(fileWrite, uxn.DeviceOutput)
	f.dev.Dat[fileFlags] = 0x1
	f.talk(fileWrite, uxn.DeviceOutput)

	got, err := os.ReadFile(filepath.Join(dir, "log.txt"))
	if err != nil {
		t.Fatalf("file not written: %v", err)
	}
	if string(got) != "abab" {
		t.Fatalf("file contents = %q, want %q", got, "abab")
	}
}

func TestFileSanitizePathRejectsEscape(t *testing.T) {
	dir := t.TempDir()
	m := uxn.NewMachine()
	f := NewFile(m, dir)

	cases := []string{"../outside.txt", "/etc/passwd", "a/../../b"}
	for _, name := range cases {
		if _, ok := f.sanitizePath(name); ok {
			t.Errorf("sanitizePath(%q) = ok, want rejected", name)
		}
	}
}

func TestFileSanitizePathAllowsNested(t *testing.T) {
	dir := t.TempDir()
	m := uxn.NewMachine()
	f := NewFile(m, dir)

	path, ok := f.sanitizePath("sub/dir/file.txt")
	if !ok {
		t.Fatalf("sanitizePath rejected a valid nested path")
	}
	if filepath.Dir(path) != filepath.Join(dir, "sub", "dir") {
		t.Fatalf("sanitizePath = %q, want under %q", path, dir)
	}
}
