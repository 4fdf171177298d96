package utils

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
	"go.einride.tech/can"
)

// EncodeFrame packs physical values into a little-endian payload. Missing
// signals and NaN values take their default; every value is clamped to the
// signal's [min, max] and then to what its bit width can hold.
func (m *CANMap) EncodeFrame(frameName string, values map[string]float64) ([]byte, uint32, error) {
	fd, err := m.FrameByName(frameName)
	if err != nil {
		return nil, 0, err
	}

	var payload uint64
	for _, s := range fd.Signals {
		v, ok := values[s.Name]
		if !ok || math.IsNaN(v) {
			v = s.Default
		}
		if s.Min < s.Max {
			v = Clamp(v, s.Min, s.Max)
		}
		scaled := math.Round((v - s.Offset) / s.Factor)
		if math.IsNaN(scaled) {
			scaled = 0
		}
		scaled = Clamp(scaled, float64(rawMin(s)), float64(rawMax(s)))
		raw := Clamp(int64(scaled), rawMin(s), rawMax(s))
		payload = putField(payload, s.StartBit, s.BitLength, uint64(raw))
	}

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], payload)
	return buf[:fd.DLC], fd.ID, nil
}

// EncodeEinrideFrame produces a can.Frame ready to transmit.
func (m *CANMap) EncodeEinrideFrame(frameName string, values map[string]float64) (can.Frame, error) {
	payload, id, err := m.EncodeFrame(frameName, values)
	if err != nil {
		return can.Frame{}, err
	}

	f := can.Frame{ID: id, Length: uint8(len(payload))}
	copy(f.Data[:], payload)
	return f, nil
}

// DecodeFrame unpacks a received payload into physical values keyed by
// signal name.
func (m *CANMap) DecodeFrame(frameID uint32, data []byte) (map[string]float64, error) {
	fd, err := m.FrameByID(frameID)
	if err != nil {
		return nil, err
	}
	if len(data) < fd.DLC {
		return nil, errors.Errorf("frame %s (0x%X) expects dlc %d, got %d", fd.Name, frameID, fd.DLC, len(data))
	}

	var buf [8]byte
	copy(buf[:], data[:fd.DLC])
	payload := binary.LittleEndian.Uint64(buf[:])

	out := make(map[string]float64, len(fd.Signals))
	for _, s := range fd.Signals {
		u := field(payload, s.StartBit, s.BitLength)
		var raw int64
		if s.Signed {
			raw = signExtend(u, s.BitLength)
		} else {
			raw = int64(u)
		}
		out[s.Name] = float64(raw)*s.Factor + s.Offset
	}
	return out, nil
}

// DecodeEinrideFrame decodes a received can.Frame and returns its name.
func (m *CANMap) DecodeEinrideFrame(f can.Frame) (string, map[string]float64, error) {
	values, err := m.DecodeFrame(f.ID, f.Data[:f.Length])
	if err != nil {
		return "", nil, err
	}
	return m.ByID[f.ID].Name, values, nil
}

func fieldMask(bitLen int) uint64 {
	if bitLen >= 64 {
		return math.MaxUint64
	}
	return 1<<uint(bitLen) - 1
}

func field(payload uint64, start, bitLen int) uint64 {
	return (payload >> uint(start)) & fieldMask(bitLen)
}

func putField(payload uint64, start, bitLen int, v uint64) uint64 {
	mask := fieldMask(bitLen) << uint(start)
	return payload&^mask | (v<<uint(start))&mask
}

func signExtend(u uint64, bitLen int) int64 {
	shift := uint(64 - bitLen)
	return int64(u<<shift) >> shift
}

func rawMin(s SignalDef) int64 {
	if !s.Signed {
		return 0
	}
	if s.BitLength >= 64 {
		return math.MinInt64
	}
	return -(1 << uint(s.BitLength-1))
}

func rawMax(s SignalDef) int64 {
	if s.BitLength >= 64 {
		return math.MaxInt64
	}
	if s.Signed {
		return 1<<uint(s.BitLength-1) - 1
	}
	if s.BitLength == 63 {
		return math.MaxInt64
	}
	return 1<<uint(s.BitLength) - 1
}
