package memory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestROM(banks int, cartType, ramSize byte, title string) []byte {
	raw := make([]byte, banks*0x4000)
	copy(raw[titleAddress:], title)
	raw[cgbFlagAddress] = 0x00
	raw[cartTypeAddress] = cartType
	raw[romSizeAddress] = 0x00
	raw[ramSizeAddress] = ramSize

	var sum uint8
	for i := headerChecksumStart; i <= headerChecksumEnd; i++ {
		sum = sum - raw[i] - 1
	}
	raw[headerChecksumAddr] = sum
	return raw
}

func TestNewCartridgeFromBytes_ROMOnly(t *testing.T) {
	raw := buildTestROM(2, 0x00, 0x00, "TETRIS")
	cart, err := NewCartridgeFromBytes(raw)
	require.NoError(t, err)
	assert.Equal(t, "TETRIS", cart.Title)
	assert.Equal(t, ROMOnly, cart.MBCKind)
	assert.Equal(t, uint8(0), cart.RAMBankCount)
}

func TestNewCartridgeFromBytes_MBC1WithBattery(t *testing.T) {
	raw := buildTestROM(4, 0x03, 0x03, "ZELDA")
	cart, err := NewCartridgeFromBytes(raw)
	require.NoError(t, err)
	assert.Equal(t, MBC1Kind, cart.MBCKind)
	assert.True(t, cart.HasBattery)
	assert.Equal(t, uint8(4), cart.RAMBankCount)
}

func TestNewCartridgeFromBytes_MBC2IgnoresRAMHeader(t *testing.T) {
	raw := buildTestROM(2, 0x06, 0x03, "POKEMON")
	cart, err := NewCartridgeFromBytes(raw)
	require.NoError(t, err)
	assert.Equal(t, MBC2Kind, cart.MBCKind)
	assert.Equal(t, uint8(0), cart.RAMBankCount)
}

func TestNewCartridgeFromBytes_MBC3WithRTC(t *testing.T) {
	raw := buildTestROM(8, 0x10, 0x02, "PKMN GOLD")
	cart, err := NewCartridgeFromBytes(raw)
	require.NoError(t, err)
	assert.Equal(t, MBC3Kind, cart.MBCKind)
	assert.True(t, cart.HasRTC)
	assert.True(t, cart.HasBattery)
}

func TestNewCartridgeFromBytes_MBC5WithRumble(t *testing.T) {
	raw := buildTestROM(2, 0x1C, 0x00, "RUMBLE")
	cart, err := NewCartridgeFromBytes(raw)
	require.NoError(t, err)
	assert.Equal(t, MBC5Kind, cart.MBCKind)
	assert.True(t, cart.HasRumble)
	assert.False(t, cart.HasBattery)
}

func TestNewCartridgeFromBytes_UnsupportedType(t *testing.T) {
	raw := buildTestROM(2, 0xFE, 0x00, "CAMERA")
	_, err := NewCartridgeFromBytes(raw)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedMBC))
}

func TestNewCartridgeFromBytes_BadSize(t *testing.T) {
	raw := make([]byte, 0x1000)
	_, err := NewCartridgeFromBytes(raw)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedROM))
}

func TestNewCartridgeFromBytes_BadChecksum(t *testing.T) {
	raw := buildTestROM(2, 0x00, 0x00, "BAD")
	raw[headerChecksumAddr] ^= 0xFF
	_, err := NewCartridgeFromBytes(raw)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedROM))
}
