package spike

import "github.com/muurk/legohub/internal/byteutil"

// Tag identifies the leading byte of a SPIKE Prime message.
type Tag uint8

const (
	TagInfoResponse      Tag = 0x01
	TagDeviceNotification Tag = 0x3C
	TagConsoleNotification Tag = 0x21
)

// SubTag identifies one fixed-size sub-record inside a DeviceNotification.
type SubTag uint8

const (
	SubTagBattery      SubTag = 0x00
	SubTagIMU          SubTag = 0x01
	SubTagDisplay5x5   SubTag = 0x02
	SubTagMotor        SubTag = 0x0A
	SubTagForce        SubTag = 0x0B
	SubTagColor        SubTag = 0x0C
	SubTagDistance     SubTag = 0x0D
	SubTagLightMatrix3x3 SubTag = 0x0E
)

// subRecordSize is the fixed byte count of each sub-record, including its
// own tag byte.
var subRecordSize = map[SubTag]int{
	SubTagBattery:        2,
	SubTagIMU:            21,
	SubTagDisplay5x5:     26,
	SubTagMotor:          12,
	SubTagForce:          4,
	SubTagColor:          9,
	SubTagDistance:       4,
	SubTagLightMatrix3x3: 11,
}

// InfoResponse is the fixed 17-byte tag-0x01 record (16 bytes of body
// after the tag), packing all ten fields spec.md §4.4 names into that
// body as follows (offsets relative to the body, little-endian):
//
//	0      RPCMajor      u8
//	1      RPCMinor      u8
//	2-3    RPCBuild      u16
//	4      FirmwareMajor u8
//	5      FirmwareMinor u8
//	6-7    FirmwareBuild u16
//	8-9    MaxPacketSize u16
//	10-11  MaxMessageSize u16
//	12-13  MaxChunkSize  u16
//	14-15  ProductGroupDeviceCode u16
//
// Major/minor version components fit in a byte each so every field gets
// its own bytes with nothing shared or dropped; see DESIGN.md's Open
// Question resolutions for why this packing was chosen over others.
type InfoResponse struct {
	RPCMajor, RPCMinor                          uint8
	RPCBuild                                    uint16
	FirmwareMajor, FirmwareMinor                uint8
	FirmwareBuild                               uint16
	MaxPacketSize, MaxMessageSize, MaxChunkSize uint16
	ProductGroupDeviceCode                      uint16
}

// ParseInfoResponse decodes a tag-0x01 InfoResponse payload (body must not
// include the leading tag byte).
func ParseInfoResponse(body []byte) (InfoResponse, error) {
	if len(body) < 16 {
		return InfoResponse{}, malformed("info-response payload too short: %d bytes", len(body))
	}
	read := func(off int) uint16 {
		v, _ := byteutil.U16LE(body, off)
		return v
	}
	return InfoResponse{
		RPCMajor: body[0], RPCMinor: body[1], RPCBuild: read(2),
		FirmwareMajor: body[4], FirmwareMinor: body[5], FirmwareBuild: read(6),
		MaxPacketSize: read(8), MaxMessageSize: read(10), MaxChunkSize: read(12),
		ProductGroupDeviceCode: read(14),
	}, nil
}

// MotorRecord is the decoded form of a tag-0x0A Motor sub-record.
type MotorRecord struct {
	Port             uint8
	DeviceType       uint8
	AbsolutePosition int16
	Power            int16
	Speed            int8
	Position         int32
}

// ForceRecord is the decoded form of a tag-0x0B Force sub-record.
type ForceRecord struct {
	Port    uint8
	Force   uint8
	Pressed bool
}

// ColorRecord is the decoded form of a tag-0x0C Color sub-record.
type ColorRecord struct {
	Port             uint8
	ColorID          int8
	Red, Green, Blue uint16
}

// DistanceRecord is the decoded form of a tag-0x0D Distance sub-record.
type DistanceRecord struct {
	Port uint8
	MM   int16
}

// BatteryRecord is the decoded form of a tag-0x00 Battery sub-record.
type BatteryRecord struct {
	Level uint8
}

// IMURecord is the decoded form of a tag-0x01 IMU sub-record. IMU and
// Display are hub-global singletons, not per-port readings, so unlike the
// other sub-records they carry no port field in the snapshot model; the
// wire record's 2 reserved bytes after the tag are skipped.
type IMURecord struct {
	AccelX, AccelY, AccelZ   int16
	GyroX, GyroY, GyroZ      int16
	OrientX, OrientY, OrientZ int16
}

// DisplayRecord is the decoded form of a tag-0x02 5x5 display sub-record.
type DisplayRecord struct {
	Brightness []uint8 // 25 bytes
}

// LightMatrixRecord is the decoded form of a tag-0x0E 3x3 light matrix
// sub-record.
type LightMatrixRecord struct {
	Port       uint8
	Brightness []uint8 // 9 bytes
}

// DeviceNotification is the fully decoded tag-0x3C notification: every
// sub-record found by the walker, grouped by kind. Each notification is a
// complete snapshot of the hub's current port state, so the runtime
// replaces rather than merges these into the model on every notification.
type DeviceNotification struct {
	Battery  *BatteryRecord
	IMU      *IMURecord
	Display  *DisplayRecord
	Motors   []MotorRecord
	Forces   []ForceRecord
	Colors   []ColorRecord
	Distances []DistanceRecord
	LightMatrices []LightMatrixRecord
}

// ParseDeviceNotification walks the sub-records inside a tag-0x3C
// notification body (not including the 3-byte tag+size header). It stops
// cleanly -- returning everything parsed so far, no error -- on the first
// unrecognised tag or when fewer bytes remain than the next sub-record
// demands.
func ParseDeviceNotification(body []byte) DeviceNotification {
	var n DeviceNotification
	pos := 0
	for pos < len(body) {
		tag := SubTag(body[pos])
		size, known := subRecordSize[tag]
		if !known || pos+size > len(body) {
			break
		}
		rec := body[pos : pos+size]
		pos += size

		switch tag {
		case SubTagBattery:
			n.Battery = &BatteryRecord{Level: rec[1]}
		case SubTagIMU:
			n.IMU = parseIMU(rec)
		case SubTagDisplay5x5:
			n.Display = &DisplayRecord{Brightness: append([]uint8(nil), rec[1:1+25]...)}
		case SubTagMotor:
			n.Motors = append(n.Motors, parseMotor(rec))
		case SubTagForce:
			n.Forces = append(n.Forces, ForceRecord{Port: rec[1], Force: rec[2], Pressed: rec[3] != 0})
		case SubTagColor:
			n.Colors = append(n.Colors, parseColor(rec))
		case SubTagDistance:
			mm, _ := byteutil.I16LE(rec, 2)
			n.Distances = append(n.Distances, DistanceRecord{Port: rec[1], MM: mm})
		case SubTagLightMatrix3x3:
			n.LightMatrices = append(n.LightMatrices, LightMatrixRecord{Port: rec[1], Brightness: append([]uint8(nil), rec[2:2+9]...)})
		}
	}
	return n
}

func parseMotor(rec []byte) MotorRecord {
	absPos, _ := byteutil.I16LE(rec, 3)
	power, _ := byteutil.I16LE(rec, 5)
	position, _ := byteutil.I32LE(rec, 8)
	return MotorRecord{
		Port:             rec[1],
		DeviceType:       rec[2],
		AbsolutePosition: absPos,
		Power:            power,
		Speed:            int8(rec[7]),
		Position:         position,
	}
}

func parseColor(rec []byte) ColorRecord {
	red, _ := byteutil.U16LE(rec, 3)
	green, _ := byteutil.U16LE(rec, 5)
	blue, _ := byteutil.U16LE(rec, 7)
	return ColorRecord{
		Port:    rec[1],
		ColorID: int8(rec[2]),
		Red:     red,
		Green:   green,
		Blue:    blue,
	}
}

func parseIMU(rec []byte) *IMURecord {
	// rec[1:3] are reserved/unused; the nine i16 readings start at 3.
	read := func(off int) int16 {
		v, _ := byteutil.I16LE(rec, off)
		return v
	}
	return &IMURecord{
		AccelX: read(3), AccelY: read(5), AccelZ: read(7),
		GyroX: read(9), GyroY: read(11), GyroZ: read(13),
		OrientX: read(15), OrientY: read(17), OrientZ: read(19),
	}
}

// Outbound command constructors. Each returns the payload to be COBS/XOR
// framed by Pack before transmission.

// InfoRequest asks the hub to describe itself.
func InfoRequest() []byte {
	return []byte{0x00}
}

// DeviceNotificationRequest subscribes to periodic device notifications at
// the given interval.
func DeviceNotificationRequest(intervalMS uint16) []byte {
	return []byte{0x28, byte(intervalMS), byte(intervalMS >> 8)}
}

// ProgramFlowRequest starts or stops a program slot.
func ProgramFlowRequest(stop bool, slot uint8) []byte {
	s := byte(0)
	if stop {
		s = 1
	}
	return []byte{0x1E, s, slot}
}

// SetHubName renames the hub. The name is NUL-terminated UTF-8.
func SetHubName(name string) []byte {
	out := append([]byte{0x16}, []byte(name)...)
	return append(out, 0)
}

// GetHubName requests the hub's current name.
func GetHubName() []byte {
	return []byte{0x18}
}

// ClearSlot erases a program slot.
func ClearSlot(slot uint8) []byte {
	return []byte{0x46, slot}
}
