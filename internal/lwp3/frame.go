package lwp3

// header describes the parsed length/hub-id/message-type prefix common to
// every LWP3 frame.
type header struct {
	totalLength int
	headerSize  int
	hubID       byte
	msgType     MessageType
}

// parseHeader reads the length prefix, hub ID, and message type from the
// front of data. It never panics: on any ambiguity or short input it
// returns a malformed-frame error rather than guessing.
func parseHeader(data []byte) (header, error) {
	if len(data) < 3 {
		return header{}, malformed("frame shorter than minimum header (%d bytes)", len(data))
	}

	if data[0]&0x80 != 0 {
		if len(data) < 4 {
			return header{}, malformed("2-byte length form needs 4 header bytes, got %d", len(data))
		}
		total := int(data[0]&0x7F) | (int(data[1]) << 7)
		return header{
			totalLength: total,
			headerSize:  4,
			hubID:       data[2],
			msgType:     MessageType(data[3]),
		}, nil
	}

	total := int(data[0])
	return header{
		totalLength: total,
		headerSize:  3,
		hubID:       data[1],
		msgType:     MessageType(data[2]),
	}, nil
}

// lengthBytes returns the 1- or 2-byte length prefix for total, choosing
// the 2-byte form iff total >= 128.
func lengthBytes(total int) []byte {
	if total < 128 {
		return []byte{byte(total)}
	}
	return []byte{
		byte((total & 0x7F) | 0x80),
		byte(total >> 7),
	}
}
