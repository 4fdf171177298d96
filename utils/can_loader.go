package utils

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var requiredColumns = []string{
	"direction", "frame_id", "frame_name", "cycle_ms", "dlc",
	"signal_name", "start_bit", "bit_length", "endianness",
	"signed", "factor", "offset", "min", "max", "default", "unit", "comment",
}

// LoadCANMap reads a motor map CSV from disk.
func LoadCANMap(csvPath string) (*CANMap, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, errors.Wrap(err, "open motor map")
	}
	defer f.Close()

	m, err := ParseCANMap(f)
	if err != nil {
		return nil, errors.Wrapf(err, "motor map %s", csvPath)
	}
	return m, nil
}

// ParseCANMap parses the motor map CSV format: one row per signal, rows of
// the same frame_id grouped into one FrameDef.
func ParseCANMap(r io.Reader) (*CANMap, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	for _, k := range requiredColumns {
		if _, ok := col[k]; !ok {
			return nil, errors.Errorf("missing required column %q", k)
		}
	}

	m := newCANMap()
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		row := rowReader{rec: rec, col: col}
		frameID := row.hex("frame_id")
		frameName := row.str("frame_name")
		direction := strings.ToLower(row.str("direction"))
		cycleMS := row.int("cycle_ms")
		dlc := row.int("dlc")

		sig := SignalDef{
			Name:      row.str("signal_name"),
			StartBit:  row.int("start_bit"),
			BitLength: row.int("bit_length"),
			Signed:    row.bool("signed"),
			Factor:    row.float("factor"),
			Offset:    row.float("offset"),
			Min:       row.float("min"),
			Max:       row.float("max"),
			Default:   row.float("default"),
			Unit:      row.str("unit"),
			Comment:   row.str("comment"),
		}
		if row.err != nil {
			return nil, errors.Wrapf(row.err, "line %d", line)
		}

		if e := row.str("endianness"); e != "" && e != "little" {
			return nil, errors.Errorf("line %d: frame %s signal %s: unsupported endianness %q", line, frameName, sig.Name, e)
		}
		if direction != DirectionTX && direction != DirectionRX {
			return nil, errors.Errorf("line %d: frame %s: direction must be tx or rx, got %q", line, frameName, direction)
		}
		if dlc <= 0 || dlc > 8 {
			return nil, errors.Errorf("line %d: frame %s (0x%X): invalid dlc %d", line, frameName, frameID, dlc)
		}
		if sig.BitLength <= 0 || sig.StartBit < 0 || sig.StartBit+sig.BitLength > dlc*8 {
			return nil, errors.Errorf("line %d: frame %s signal %s: bits [%d,+%d) do not fit dlc %d",
				line, frameName, sig.Name, sig.StartBit, sig.BitLength, dlc)
		}
		if sig.Factor == 0 {
			return nil, errors.Errorf("line %d: frame %s signal %s: factor must not be zero", line, frameName, sig.Name)
		}

		fd, ok := m.ByID[frameID]
		if !ok {
			if other, dup := m.ByName[frameName]; dup {
				return nil, errors.Errorf("line %d: frame name %s used by 0x%X and 0x%X", line, frameName, other.ID, frameID)
			}
			fd = &FrameDef{
				ID:        frameID,
				Name:      frameName,
				DLC:       dlc,
				Direction: direction,
				CycleMS:   cycleMS,
			}
			m.ByID[frameID] = fd
			m.ByName[frameName] = fd
		}
		if fd.DLC != dlc {
			return nil, errors.Errorf("line %d: frame %s (0x%X) has inconsistent dlc (%d vs %d)", line, frameName, frameID, fd.DLC, dlc)
		}
		fd.Signals = append(fd.Signals, sig)
	}

	for _, fd := range m.ByID {
		sort.Slice(fd.Signals, func(i, j int) bool { return fd.Signals[i].StartBit < fd.Signals[j].StartBit })
	}
	return m, nil
}

func (m *CANMap) FrameByName(name string) (*FrameDef, error) {
	fd, ok := m.ByName[name]
	if !ok {
		return nil, errors.Errorf("unknown frame %q (available: %v)", name, m.FrameNames())
	}
	return fd, nil
}

func (m *CANMap) FrameByID(id uint32) (*FrameDef, error) {
	fd, ok := m.ByID[id]
	if !ok {
		return nil, errors.Errorf("unknown frame id 0x%X", id)
	}
	return fd, nil
}

// rowReader converts CSV cells and keeps the first conversion error.
type rowReader struct {
	rec []string
	col map[string]int
	err error
}

func (r *rowReader) str(name string) string {
	i := r.col[name]
	if i >= len(r.rec) {
		return ""
	}
	return strings.TrimSpace(r.rec[i])
}

func (r *rowReader) fail(name string, err error) {
	if r.err == nil {
		r.err = errors.Wrapf(err, "column %s", name)
	}
}

func (r *rowReader) int(name string) int {
	v, err := strconv.Atoi(r.str(name))
	if err != nil {
		r.fail(name, err)
	}
	return v
}

func (r *rowReader) float(name string) float64 {
	s := r.str(name)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.fail(name, err)
	}
	return v
}

func (r *rowReader) bool(name string) bool {
	switch strings.ToLower(r.str(name)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

func (r *rowReader) hex(name string) uint32 {
	s := r.str(name)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		s = s[2:]
	}
	u, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		r.fail(name, err)
	}
	return uint32(u)
}
