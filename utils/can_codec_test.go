package utils

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMap = `direction,frame_id,frame_name,cycle_ms,dlc,signal_name,start_bit,bit_length,endianness,signed,factor,offset,min,max,default,unit,comment
tx,0x205,LEFT_DRIVE_CMD,20,3,duty,0,16,little,true,0.0001,0,-1,1,0,ratio,left duty
tx,0x205,LEFT_DRIVE_CMD,20,3,brake,16,1,little,false,1,0,0,1,1,bool,brake
rx,0x285,LEFT_DRIVE_FB,20,6,enc_position,0,32,little,true,1,0,0,0,0,counts,position
rx,0x285,LEFT_DRIVE_FB,20,6,enc_velocity,32,16,little,true,1,0,0,0,0,counts/100ms,velocity
`

func loadTestMap(t *testing.T) *CANMap {
	t.Helper()
	m, err := ParseCANMap(strings.NewReader(testMap))
	require.NoError(t, err)
	return m
}

func TestEncodeClampsToSignalRange(t *testing.T) {
	m := loadTestMap(t)

	payload, id, err := m.EncodeFrame("LEFT_DRIVE_CMD", map[string]float64{"duty": 1.4, "brake": 0})
	require.NoError(t, err)
	assert.Equal(t, uint32(0x205), id)
	require.Len(t, payload, 3)
	// 1.0 / 0.0001 = 10000 = 0x2710
	assert.Equal(t, []byte{0x10, 0x27, 0x00}, payload)
}

func TestEncodeNegativeAndDefault(t *testing.T) {
	m := loadTestMap(t)

	payload, _, err := m.EncodeFrame("LEFT_DRIVE_CMD", map[string]float64{"duty": -0.5})
	require.NoError(t, err)
	// -5000 in 16 bit two's complement is 0xEC78, brake defaults to 1
	assert.Equal(t, []byte{0x78, 0xEC, 0x01}, payload)
}

func TestEncodeNaNTakesDefault(t *testing.T) {
	m := loadTestMap(t)

	payload, _, err := m.EncodeFrame("LEFT_DRIVE_CMD", map[string]float64{"duty": math.NaN(), "brake": 0})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x00}, payload)

	values, err := m.DecodeFrame(0x205, payload)
	require.NoError(t, err)
	assert.Zero(t, values["duty"])
}

func TestMotorNaNCommandStops(t *testing.T) {
	motor := NewCANMotor("LEFT_DRIVE_CMD", false)
	motor.Set(math.NaN())
	assert.Zero(t, motor.Speed())
}

func TestDecodeSignedFeedback(t *testing.T) {
	m := loadTestMap(t)

	data := []byte{0x18, 0xFC, 0xFF, 0xFF, 0x0A, 0x00}
	values, err := m.DecodeFrame(0x285, data)
	require.NoError(t, err)
	assert.Equal(t, -1000.0, values["enc_position"])
	assert.Equal(t, 10.0, values["enc_velocity"])
}

func TestDecodeShortPayload(t *testing.T) {
	m := loadTestMap(t)

	_, err := m.DecodeFrame(0x285, []byte{0x01})
	assert.Error(t, err)
}

func TestEncodeEinrideFrame(t *testing.T) {
	m := loadTestMap(t)

	f, err := m.EncodeEinrideFrame("LEFT_DRIVE_CMD", map[string]float64{"duty": 0.25, "brake": 1})
	require.NoError(t, err)
	assert.Equal(t, uint32(0x205), f.ID)
	assert.Equal(t, uint8(3), f.Length)

	name, values, err := m.DecodeEinrideFrame(f)
	require.NoError(t, err)
	assert.Equal(t, "LEFT_DRIVE_CMD", name)
	assert.InDelta(t, 0.25, values["duty"], 1e-9)
	assert.Equal(t, 1.0, values["brake"])
}
