package protocol

// crcInit is the CRC-16/MCRF4XX seed used on the link
const crcInit = 0xFFFF

// CRC16 returns the frame check of data: CRC-16/MCRF4XX (CCITT polynomial,
// reflected, no final xor), the same check Klipper frames carry.
func CRC16(data []byte) uint16 {
	crc := uint16(crcInit)
	for _, b := range data {
		crc = crc16Update(crc, b)
	}
	return crc
}

// crc16Update folds one byte into crc
func crc16Update(crc uint16, b byte) uint16 {
	b ^= uint8(crc)
	b ^= b << 4
	x := uint16(b)
	return (x<<8 | crc>>8) ^ (x >> 4) ^ (x << 3)
}

// appendCRC appends the big-endian check of frame and the sync byte
func appendCRC(frame []byte) []byte {
	crc := CRC16(frame)
	return append(frame, uint8(crc>>8), uint8(crc), MessageValueSync)
}
