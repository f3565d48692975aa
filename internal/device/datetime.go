package device

import (
	"time"

	"github.com/zotley/uxn/internal/uxn"
)

// Datetime is the id-0xa device. Every DEI against its page refreshes
// all eleven bytes from the host clock first, field layout copied
// verbatim from datetime_poke in the reference SDL host: year (big
// endian), month, day, hour, minute, second, weekday, year-day (big
// endian), daylight-saving flag.
type Datetime struct {
	dev *uxn.Device
	now func() time.Time
}

// NewDatetime builds the datetime device and registers it on m. now
// defaults to time.Now; tests may override it for determinism.
func NewDatetime(m *uxn.Machine) *Datetime {
	d := &Datetime{now: time.Now}
	d.dev = &uxn.Device{ID: 0xa, Talk: d.talk}
	m.RegisterDevice(d.dev)
	return d
}

func (d *Datetime) talk(offset uint8, mode uxn.DeviceMode) {
	if mode != uxn.DeviceInput {
		return
	}
	t := d.now().Local()
	year := uint16(t.Year())
	d.dev.Dat[0] = byte(year >> 8)
	d.dev.Dat[1] = byte(year)
	d.dev.Dat[2] = byte(t.Month() - 1)
	d.dev.Dat[3] = byte(t.Day())
	d.dev.Dat[4] = byte(t.Hour())
	d.dev.Dat[5] = byte(t.Minute())
	d.dev.Dat[6] = byte(t.Second())
	d.dev.Dat[7] = byte(t.Weekday())
	yday := uint16(t.YearDay() - 1)
	d.dev.Dat[8] = byte(yday >> 8)
	d.dev.Dat[9] = byte(yday)
	if t.IsDST() {
		d.dev.Dat[10] = 1
	} else {
		d.dev.Dat[10] = 0
	}
}
