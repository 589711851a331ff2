package model

// Motor is the typed value for a motor port.
type Motor struct {
	DeviceType     uint16
	Speed          int8  // -127..127
	Position       int32 // degrees
	AbsolutePosition int16
}

// Distance is the typed value for a distance sensor port. MM is -1 when
// nothing is detected.
type Distance struct {
	MM int16
}

// Color is the typed value for a color sensor port. ColorID is -1 when
// unknown.
type Color struct {
	ColorID    int8
	Red, Green, Blue uint16
}

// Force is the typed value for a force sensor port.
type Force struct {
	Force   uint8 // 0..100
	Pressed bool
}

// LightMatrix is a row-major 3x3 or 5x5 brightness grid (0..100 per cell).
type LightMatrix struct {
	Brightness []uint8
}

// IMU holds accelerometer, gyroscope, and orientation readings from a
// SPIKE hub-internal IMU sub-record.
type IMU struct {
	AccelX, AccelY, AccelZ int16
	GyroX, GyroY, GyroZ    int16
	OrientX, OrientY, OrientZ int16
}

// Display is a 5x5 brightness grid from a SPIKE hub-internal display
// sub-record.
type Display struct {
	Brightness []uint8 // 25 cells, row-major
}

// Snapshot is the immutable value returned by reading a hub's device state
// at a point in time. For any given port at most one typed map holds an
// entry, except that a JSON-telemetry color+distance combo sensor (device
// type 37) fills both Colors and Distances for its port; a detach event
// removes the port from every map simultaneously.
type Snapshot struct {
	Attached map[Port]AttachedDevice

	Motors        map[Port]Motor
	Distances     map[Port]Distance
	Colors        map[Port]Color
	Forces        map[Port]Force
	LightMatrices map[Port]LightMatrix

	IMU     *IMU
	Display *Display

	// Battery is the last-known charge percentage, 0..100, or nil if no
	// reading has arrived yet.
	Battery *uint8

	// RawValues holds the most recent raw value bytes for ports whose
	// device type is not recognised by any typed category.
	RawValues map[Port][]byte
}

// Empty returns a snapshot with every map initialised and no data.
func Empty() Snapshot {
	return Snapshot{
		Attached:      make(map[Port]AttachedDevice),
		Motors:        make(map[Port]Motor),
		Distances:     make(map[Port]Distance),
		Colors:        make(map[Port]Color),
		Forces:        make(map[Port]Force),
		LightMatrices: make(map[Port]LightMatrix),
		RawValues:     make(map[Port][]byte),
	}
}

// Clone returns a deep-enough copy for copy-on-read semantics: callers may
// freely read the returned value without racing a concurrent writer, since
// every map is reallocated and every scalar is copied by value.
func (s Snapshot) Clone() Snapshot {
	out := Empty()
	for k, v := range s.Attached {
		out.Attached[k] = v
	}
	for k, v := range s.Motors {
		out.Motors[k] = v
	}
	for k, v := range s.Distances {
		out.Distances[k] = v
	}
	for k, v := range s.Colors {
		out.Colors[k] = v
	}
	for k, v := range s.Forces {
		out.Forces[k] = v
	}
	for k, v := range s.LightMatrices {
		lm := v
		lm.Brightness = append([]uint8(nil), v.Brightness...)
		out.LightMatrices[k] = lm
	}
	for k, v := range s.RawValues {
		out.RawValues[k] = append([]byte(nil), v...)
	}
	if s.IMU != nil {
		imu := *s.IMU
		out.IMU = &imu
	}
	if s.Display != nil {
		d := Display{Brightness: append([]uint8(nil), s.Display.Brightness...)}
		out.Display = &d
	}
	if s.Battery != nil {
		b := *s.Battery
		out.Battery = &b
	}
	return out
}

// ClearPort removes port from every per-port map, implementing the
// detach invariant: after this call the port is absent from every typed
// map and from RawValues.
func (s Snapshot) ClearPort(p Port) {
	delete(s.Attached, p)
	delete(s.Motors, p)
	delete(s.Distances, p)
	delete(s.Colors, p)
	delete(s.Forces, p)
	delete(s.LightMatrices, p)
	delete(s.RawValues, p)
}
