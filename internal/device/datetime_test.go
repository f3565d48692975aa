package device

import (
	"testing"
	"time"

	"github.com/zotley/uxn/internal/uxn"
)

func TestDatetimeFieldsOnRead(t *testing.T) {
	m := uxn.NewMachine()
	d := NewDatetime(m)
	fixed := time.Date(2026, time.March, 5, 13, 45, 30, 0, time.UTC)
	d.now = func() time.Time { return fixed }

	d.dev.Talk(0, uxn.DeviceInput)

	year := uint16(d.dev.Dat[0])<<8 | uint16(d.dev.Dat[1])
	if year != 2026 {
		t.Fatalf("year = %d, want 2026", year)
	}
	if d.dev.Dat[2] != 2 {
		t.Fatalf("month = %d, want 2 (March, zero-based)", d.dev.Dat[2])
	}
	if d.dev.Dat[3] != 5 {
		t.Fatalf("day = %d, want 5", d.dev.Dat[3])
	}
	if d.dev.Dat[4] != 13 || d.dev.Dat[5] != 45 || d.dev.Dat[6] != 30 {
		t.Fatalf("time = %d:%d:%d, want 13:45:30", d.dev.Dat[4], d.dev.Dat[5], d.dev.Dat[6])
	}
}

func TestDatetimeIgnoresOutputTalk(t *testing.T) {
	m := uxn.NewMachine()
	d := NewDatetime(m)
	d.now = func() time.Time { return time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC) }
	d.dev.Dat[0] = 0xaa
	d.dev.Talk(0, uxn.DeviceOutput)
	if d.dev.Dat[0] != 0xaa {
		t.Fatalf("DeviceOutput talk must not refresh fields")
	}
}
