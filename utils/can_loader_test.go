package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "direction,frame_id,frame_name,cycle_ms,dlc,signal_name,start_bit,bit_length,endianness,signed,factor,offset,min,max,default,unit,comment\n"

func TestParseCANMapGroupsSignals(t *testing.T) {
	m := loadTestMap(t)

	assert.Equal(t, []string{"LEFT_DRIVE_CMD", "LEFT_DRIVE_FB"}, m.FrameNames())
	fd, err := m.FrameByName("LEFT_DRIVE_FB")
	require.NoError(t, err)
	assert.Equal(t, DirectionRX, fd.Direction)
	require.Len(t, fd.Signals, 2)
	assert.Equal(t, "enc_position", fd.Signals[0].Name)

	s, ok := fd.Signal("enc_velocity")
	require.True(t, ok)
	assert.Equal(t, 32, s.StartBit)
	assert.True(t, s.Signed)
}

func TestParseCANMapErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"MissingColumn", "direction,frame_id\ntx,0x1\n"},
		{"BadDLC", header + "tx,0x1,A,20,9,s,0,8,little,false,1,0,0,1,0,,\n"},
		{"SignalOutsideDLC", header + "tx,0x1,A,20,1,s,4,8,little,false,1,0,0,1,0,,\n"},
		{"BadDirection", header + "both,0x1,A,20,1,s,0,8,little,false,1,0,0,1,0,,\n"},
		{"BadNumber", header + "tx,0x1,A,20,1,s,zero,8,little,false,1,0,0,1,0,,\n"},
		{"BigEndian", header + "tx,0x1,A,20,1,s,0,8,big,false,1,0,0,1,0,,\n"},
		{"InconsistentDLC", header + "tx,0x1,A,20,1,s,0,8,little,false,1,0,0,1,0,,\ntx,0x1,A,20,2,t,8,8,little,false,1,0,0,1,0,,\n"},
		{"ZeroFactor", header + "tx,0x1,A,20,1,s,0,8,little,false,0,0,0,1,0,,\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCANMap(strings.NewReader(tt.csv))
			assert.Error(t, err)
		})
	}
}

func TestUnknownFrame(t *testing.T) {
	m := loadTestMap(t)

	_, err := m.FrameByName("NOPE")
	assert.ErrorContains(t, err, "NOPE")
	_, err = m.FrameByID(0x7FF)
	assert.Error(t, err)
	assert.False(t, m.HasFrame("NOPE"))
}
