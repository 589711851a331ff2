// Package lwp3 implements the LEGO Wireless Protocol v3 wire codec: the
// binary TLV-style framing used by Powered Up, BOOST, Technic, and City
// hubs.
//
// # Message Types
//
// Every frame carries a length prefix (1 or 2 bytes), a hub ID (always 0
// outbound, ignored inbound), and a message type byte. Decode never fails
// on an unrecognised message type or device type -- it falls back to an
// Unknown variant or passes raw integers through, since the catalog is
// deliberately non-exhaustive.
//
// # Usage Example - Decoding
//
//	msg, err := lwp3.Decode(frame)
//	if err != nil {
//		// frame was truncated or had a malformed length -- drop it
//	}
//	switch m := msg.(type) {
//	case lwp3.HubPropertyMsg:
//		// ...
//	case lwp3.AttachedIOMsg:
//		// ...
//	}
//
// # Usage Example - Encoding
//
//	frame := lwp3.EncodeStartSpeed(0, 75, 100, 0)
//
// # Thread Safety
//
// Decode and every Encode* constructor are pure functions over their
// arguments; they hold no package-level mutable state and are safe to
// call concurrently.
package lwp3
