package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartWithBanks(banks int, cartType, ramSize byte) *Cartridge {
	raw := buildTestROM(banks, cartType, ramSize, "TEST")
	// Stamp each bank with its own index so bank-switch reads are verifiable.
	for b := 1; b < banks; b++ {
		raw[b*0x4000] = byte(b)
	}
	cart, err := NewCartridgeFromBytes(raw)
	if err != nil {
		panic(err)
	}
	return cart
}

func TestMBC1_BankZeroCoercedToOne(t *testing.T) {
	cart := cartWithBanks(8, 0x01, 0x00)
	mbc := NewMBC1(cart)
	mbc.WriteROM(0x2000, 0x00)
	assert.Equal(t, byte(1), mbc.ReadROM(0x4000))
}

func TestMBC1_SwitchesROMBank(t *testing.T) {
	cart := cartWithBanks(8, 0x01, 0x00)
	mbc := NewMBC1(cart)
	mbc.WriteROM(0x2000, 0x05)
	assert.Equal(t, byte(5), mbc.ReadROM(0x4000))
}

func TestMBC1_RAMGatedByEnable(t *testing.T) {
	cart := cartWithBanks(2, 0x03, 0x02)
	mbc := NewMBC1(cart)
	mbc.WriteRAM(0xA000, 0x42)
	assert.Equal(t, byte(0xFF), mbc.ReadRAM(0xA000), "disabled RAM reads as 0xFF")

	mbc.WriteROM(0x0000, 0x0A)
	mbc.WriteRAM(0xA000, 0x42)
	assert.Equal(t, byte(0x42), mbc.ReadRAM(0xA000))
}

func TestMBC2_BuiltinRAMIsNibbleWide(t *testing.T) {
	cart := cartWithBanks(2, 0x06, 0x00)
	mbc := NewMBC2(cart)
	mbc.WriteROM(0x0000, 0x0A)
	mbc.WriteRAM(0xA000, 0xFE)
	assert.Equal(t, byte(0xFE), mbc.ReadRAM(0xA000), "low nibble 0xE with high nibble forced to 0xF")
}

func TestMBC2_RAMMirrorsAcrossWindow(t *testing.T) {
	cart := cartWithBanks(2, 0x06, 0x00)
	mbc := NewMBC2(cart)
	mbc.WriteROM(0x0000, 0x0A)
	mbc.WriteRAM(0xA000, 0x03)
	assert.Equal(t, byte(0x03)|0xF0, mbc.ReadRAM(0xA200))
}

func TestMBC2_ROMBankSelectUsesAddressBit8(t *testing.T) {
	cart := cartWithBanks(4, 0x05, 0x00)
	mbc := NewMBC2(cart)
	mbc.WriteROM(0x2100, 0x03)
	assert.Equal(t, byte(3), mbc.ReadROM(0x4000))
}

func TestMBC3_SwitchesROMAndRAMBanks(t *testing.T) {
	cart := cartWithBanks(8, 0x13, 0x03)
	mbc := NewMBC3(cart)
	mbc.WriteROM(0x2000, 0x04)
	assert.Equal(t, byte(4), mbc.ReadROM(0x4000))

	mbc.WriteROM(0x0000, 0x0A)
	mbc.WriteROM(0x4000, 0x01)
	mbc.WriteRAM(0xA000, 0x77)
	assert.Equal(t, byte(0x77), mbc.ReadRAM(0xA000))
}

func TestMBC3_RTCRegistersAreAddressable(t *testing.T) {
	cart := cartWithBanks(2, 0x10, 0x00)
	mbc := NewMBC3(cart)
	mbc.WriteROM(0x0000, 0x0A)
	mbc.WriteROM(0x4000, 0x08) // select RTC seconds register
	mbc.WriteRAM(0xA000, 0x2A)
	assert.Equal(t, byte(0x2A), mbc.ReadRAM(0xA000))
}

func TestMBC5_AllowsBankZero(t *testing.T) {
	cart := cartWithBanks(4, 0x19, 0x00)
	mbc := NewMBC5(cart)
	mbc.WriteROM(0x2000, 0x00)
	assert.Equal(t, byte(0), mbc.ReadROM(0x4000))

	mbc.WriteROM(0x2000, 0x02)
	assert.Equal(t, byte(2), mbc.ReadROM(0x4000))
}

func TestMBC5_NineBitBankRegister(t *testing.T) {
	cart := cartWithBanks(600, 0x19, 0x00)
	mbc := NewMBC5(cart)
	mbc.WriteROM(0x2000, 0xFF)
	mbc.WriteROM(0x3000, 0x01)
	require.Equal(t, 0x1FF, int(mbc.romBankLow)|int(mbc.romBankHigh)<<8)
	assert.Equal(t, byte(0xFF), mbc.ReadROM(0x4000))
}
