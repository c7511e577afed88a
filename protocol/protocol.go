// Package protocol implements the serial link between a host and a buzzer MCU.
//
// Framing follows the Klipper wire format: a length byte, a sequence byte,
// VLQ encoded command ids and arguments, a CRC16 and a 0x7E sync byte.
// The MCU acknowledges every frame with an empty frame carrying the next
// expected sequence.
package protocol

// Version represents the gotone link version
const Version = "0.1.0"

// Frame layout
const (
	MessageMax         = 512 // Scratch output capacity
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64
	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1
	MessageValueSync   = 0x7E
	MessageDest        = 0x10
	MessageSeqMask     = 0x0F
)

// Command ids. Both ends use this static table in place of a dictionary
// exchange, so the order is part of the wire format.
const (
	CmdToneStart uint16 = iota // tone_start frequency=%u duration=%u
	CmdToneStop                // tone_stop
	CmdToneQuery               // tone_query
	RspToneState               // tone_state remaining=%u active=%c
	CmdToneCheck               // tone_check frequency=%u
	RspToneRange               // tone_range frequency=%u ok=%c divider=%c compare=%c
)

// Commands lists every message as "name format", indexed by id
var Commands = [...]string{
	CmdToneStart: "tone_start frequency=%u duration=%u",
	CmdToneStop:  "tone_stop",
	CmdToneQuery: "tone_query",
	RspToneState: "tone_state remaining=%u active=%c",
	CmdToneCheck: "tone_check frequency=%u",
	RspToneRange: "tone_range frequency=%u ok=%c divider=%c compare=%c",
}

// CommandName returns the message name for an id
func CommandName(id uint16) string {
	if int(id) >= len(Commands) {
		return ""
	}
	s := Commands[id]
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			return s[:i]
		}
	}
	return s
}

// CommandFormat returns the argument format for an id
func CommandFormat(id uint16) string {
	if int(id) >= len(Commands) {
		return ""
	}
	s := Commands[id]
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			return s[i+1:]
		}
	}
	return ""
}
