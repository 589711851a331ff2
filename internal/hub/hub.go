package hub

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/muurk/legohub/internal/jsontelemetry"
	"github.com/muurk/legohub/internal/logging"
	"github.com/muurk/legohub/internal/lwp3"
	"github.com/muurk/legohub/internal/model"
	"github.com/muurk/legohub/internal/spike"
	"github.com/muurk/legohub/internal/transport"
	"go.uber.org/zap"
)

// Known GATT service identifiers. Opaque to transport.Adapter, meaningful
// only here where protocol selection happens.
const (
	ServiceLWP3       = "00001623-1212-EFDE-1623-785FEABCD123"
	ServiceLWP3Legacy = "0xFEED"
	ServiceSpikePrime = "0000FD02-0000-1000-8000-00805F9B34FB"

	defaultConnectTimeout      = 10 * time.Second
	defaultRSSIInterval        = 5 * time.Second
	defaultBatteryDampenWindow = 120 * time.Second
	defaultBootstrapRetries    = 3
	defaultSpikeChunkSize      = 20
	writeTimeout               = 3 * time.Second
)

// Hub runs one hub's logically single-threaded protocol runtime: a single
// goroutine owns protocol selection, frame decoding, snapshot mutation,
// and outbound command encoding, so none of that work ever races with
// itself. Connect/Disconnect/Send hand a closure to that goroutine over a
// channel and block on a per-call response channel, giving callers a
// synchronous-looking API without adding a second lock ordering to reason
// about.
type Hub struct {
	id      string
	adapter transport.Adapter

	connectTimeout      time.Duration
	rssiInterval        time.Duration
	batteryDampenWindow time.Duration
	bootstrapRetries    int

	actions  chan func()
	stopped  chan struct{}
	stopOnce sync.Once

	mu       sync.Mutex
	state    State
	protocol Protocol
	snapshot model.Snapshot
	name     string

	listenersMu sync.Mutex
	listeners   []Listener

	// Fields below are only ever touched from inside run(), so they need
	// no lock: the single run goroutine is their only reader and writer.
	adapterEvents      <-chan transport.Event
	connectTimer       *time.Timer
	rssiTicker         *time.Ticker
	writeTag           string
	notifyTag          string
	spikeMaxPacketSize uint16
	lastBatteryEmitted *uint8
	lastBatteryEmitAt  time.Time
}

// Option configures a Hub at construction time.
type Option func(*Hub)

// WithConnectTimeout overrides the default 10s connect deadline.
func WithConnectTimeout(d time.Duration) Option {
	return func(h *Hub) { h.connectTimeout = d }
}

// WithRSSIInterval overrides the default 5s RSSI poll interval.
func WithRSSIInterval(d time.Duration) Option {
	return func(h *Hub) { h.rssiInterval = d }
}

// WithBatteryDampenWindow overrides the default 120s battery-change
// dampening window (see updateBattery).
func WithBatteryDampenWindow(d time.Duration) Option {
	return func(h *Hub) { h.batteryDampenWindow = d }
}

// WithBootstrapRetries overrides the default number of retries (3) for a
// subscription-bootstrap write that fails outright.
func WithBootstrapRetries(n int) Option {
	return func(h *Hub) { h.bootstrapRetries = n }
}

// New creates a Hub bound to adapter and starts its run loop. id is an
// opaque identifier (e.g. a BLE address) used only for logging.
func New(id string, adapter transport.Adapter, opts ...Option) *Hub {
	h := &Hub{
		id:                  id,
		adapter:             adapter,
		connectTimeout:      defaultConnectTimeout,
		rssiInterval:        defaultRSSIInterval,
		batteryDampenWindow: defaultBatteryDampenWindow,
		bootstrapRetries:    defaultBootstrapRetries,
		snapshot:            model.Empty(),
		actions:             make(chan func(), 8),
		stopped:             make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	go h.run()
	return h
}

// Stop disconnects (if needed) and terminates the run loop permanently.
// A stopped Hub cannot be reused.
func (h *Hub) Stop() {
	_ = h.Disconnect()
	h.stopOnce.Do(func() { close(h.actions) })
	<-h.stopped
}

// State returns the hub's current connection state.
func (h *Hub) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Snapshot returns a copy-on-read value of the hub's current device
// model. Safe to read freely without racing the run loop.
func (h *Hub) Snapshot() model.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snapshot.Clone()
}

// Subscribe registers l to receive every future published Event.
func (h *Hub) Subscribe(l Listener) {
	h.listenersMu.Lock()
	h.listeners = append(h.listeners, l)
	h.listenersMu.Unlock()
}

// Connect transitions the hub from disconnected/disconnecting to
// connecting and starts the async open. It returns as soon as the state
// transition is accepted, not once the hub is fully connected -- watch
// for TopicStateChanged to learn when connected (or failed) completes.
func (h *Hub) Connect() error {
	resp := make(chan error, 1)
	h.actions <- func() { h.doConnect(resp) }
	return <-resp
}

// Disconnect asks the transport to close. Idempotent: disconnecting an
// already-disconnected hub succeeds immediately.
func (h *Hub) Disconnect() error {
	resp := make(chan error, 1)
	h.actions <- func() { h.doDisconnect(resp) }
	return <-resp
}

// Send enqueues a semantic command, encodes it for the hub's bound
// protocol, and writes it through the transport. Returns
// KindUnsupportedCommand if the bound protocol cannot express cmd, or
// KindTransportError if the underlying write fails.
func (h *Hub) Send(cmd Command) error {
	resp := make(chan error, 1)
	h.actions <- func() { h.doSend(cmd, resp) }
	err := <-resp
	if err == nil {
		return nil
	}
	return err
}

// OnTransportEvent feeds ev into the run loop out of band, for tests and
// for transports that prefer push delivery over Events().
func (h *Hub) OnTransportEvent(ev transport.Event) {
	h.actions <- func() { h.handleTransportEvent(ev) }
}

// run is the hub's single logical thread: every state read/write and
// every decode happens here, so nothing about a hub's runtime state is
// ever touched from two goroutines at once.
func (h *Hub) run() {
	defer close(h.stopped)
	for {
		var events <-chan transport.Event
		if h.adapterEvents != nil {
			events = h.adapterEvents
		}
		var connectC <-chan time.Time
		if h.connectTimer != nil {
			connectC = h.connectTimer.C
		}
		var rssiC <-chan time.Time
		if h.rssiTicker != nil {
			rssiC = h.rssiTicker.C
		}

		select {
		case action, ok := <-h.actions:
			if !ok {
				return
			}
			action()
		case ev, ok := <-events:
			if !ok {
				h.adapterEvents = nil
				continue
			}
			h.handleTransportEvent(ev)
		case <-connectC:
			h.handleConnectTimeout()
		case <-rssiC:
			h.pollRSSI()
		}
	}
}

func (h *Hub) doConnect(resp chan<- error) {
	state := h.State()
	if state != StateDisconnected && state != StateDisconnecting {
		resp <- fmt.Errorf("hub: connect invalid from state %v", state)
		return
	}
	h.setState(StateConnecting)
	h.connectTimer = time.NewTimer(h.connectTimeout)
	resp <- nil

	ctx, cancel := context.WithTimeout(context.Background(), h.connectTimeout)
	go func() {
		defer cancel()
		err := h.adapter.Open(ctx)
		h.actions <- func() { h.onOpenResult(err) }
	}()
}

func (h *Hub) onOpenResult(err error) {
	if h.State() != StateConnecting {
		return // deadline already fired and moved us on; ignore the late result
	}
	if err != nil {
		logging.Warn("transport open failed", zap.String("hub_id", h.id), zap.Error(err))
		h.transitionToDisconnecting()
		return
	}
	h.adapterEvents = h.adapter.Events()
}

func (h *Hub) doDisconnect(resp chan<- error) {
	if h.State() == StateDisconnected {
		resp <- nil
		return
	}
	h.setState(StateDisconnecting)
	resp <- nil
	go func() { _ = h.adapter.Close() }()
}

func (h *Hub) doSend(cmd Command, resp chan<- error) {
	if h.State() != StateConnected {
		resp <- transportError(fmt.Errorf("hub not connected"))
		return
	}

	var data []byte
	switch h.protocol {
	case ProtocolLwp3BLE:
		data = cmd.encodeLWP3()
		if data == nil {
			resp <- h.rejectUnsupported(fmt.Sprintf("command kind %d is not expressible in LWP3", cmd.Kind))
			return
		}
	case ProtocolSpikeJSON:
		out, ok := cmd.translateJSON()
		if !ok {
			resp <- h.rejectUnsupported(fmt.Sprintf("command kind %d has no translation on the JSON transport", cmd.Kind))
			return
		}
		data = out
	case ProtocolSpikeBinary:
		resp <- h.rejectUnsupported("motor/LED commands are not supported over the SPIKE binary protocol")
		return
	default:
		resp <- noUsableProtocol()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := h.adapter.Write(ctx, data, h.writeTag, transport.WithoutResponse); err != nil {
		resp <- transportError(err)
		return
	}
	resp <- nil
}

func (h *Hub) rejectUnsupported(msg string) error {
	err := unsupportedCommand(msg)
	h.publish(Event{Topic: TopicDiagnostic, Message: err.Message})
	return err
}

func (h *Hub) handleTransportEvent(ev transport.Event) {
	switch ev.Kind {
	case transport.EventConnected:
		// informational only -- the state machine transitions to
		// Connected once services are discovered and a protocol is bound.
	case transport.EventServicesDiscovered:
		h.handleServicesDiscovered(ev.Services)
	case transport.EventFrameReceived:
		h.dispatchFrame(ev.Frame)
	case transport.EventLineReceived:
		h.handleJSONLine(ev.Line)
	case transport.EventDisconnected:
		h.handleDisconnected(ev.DisconnectReason)
	case transport.EventRSSIUpdate:
		h.publish(Event{Topic: TopicRSSIChanged, RSSI: ev.RSSI})
	}
}

func (h *Hub) handleServicesDiscovered(services []transport.Characteristic) {
	proto, writeTag, notifyTag := selectProtocol(services)
	if proto == ProtocolNone {
		h.publish(Event{Topic: TopicNoUsableProtocol})
		h.transitionToDisconnecting()
		return
	}

	h.protocol = proto
	h.writeTag = writeTag
	h.notifyTag = notifyTag
	if h.connectTimer != nil {
		h.connectTimer.Stop()
		h.connectTimer = nil
	}

	logging.LogProtocolSelected(h.id, proto.String())
	h.setState(StateConnected)
	h.bootstrapSubscriptions()
	h.rssiTicker = time.NewTicker(h.rssiInterval)
}

func (h *Hub) handleConnectTimeout() {
	h.connectTimer = nil
	if h.State() != StateConnecting {
		return
	}
	logging.Warn("connect deadline elapsed", zap.String("hub_id", h.id))
	_ = connectTimeout()
	h.transitionToDisconnecting()
}

func (h *Hub) transitionToDisconnecting() {
	h.setState(StateDisconnecting)
	if h.connectTimer != nil {
		h.connectTimer.Stop()
		h.connectTimer = nil
	}
	if h.rssiTicker != nil {
		h.rssiTicker.Stop()
		h.rssiTicker = nil
	}
	go func() { _ = h.adapter.Close() }()
}

func (h *Hub) handleDisconnected(reason string) {
	if h.rssiTicker != nil {
		h.rssiTicker.Stop()
		h.rssiTicker = nil
	}
	if h.connectTimer != nil {
		h.connectTimer.Stop()
		h.connectTimer = nil
	}
	h.adapterEvents = nil
	h.protocol = ProtocolNone
	h.writeTag = ""
	h.notifyTag = ""
	h.lastBatteryEmitted = nil

	h.mu.Lock()
	h.snapshot = model.Empty()
	h.mu.Unlock()

	h.setState(StateDisconnected)
	if reason != "" {
		h.publish(Event{Topic: TopicDiagnostic, Message: reason})
	}
}

func (h *Hub) pollRSSI() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := h.adapter.ReadRSSI(ctx); err != nil {
			logging.Warn("rssi poll failed", zap.String("hub_id", h.id), zap.Error(err))
		}
	}()
}

func (h *Hub) bootstrapSubscriptions() {
	switch h.protocol {
	case ProtocolLwp3BLE:
		h.writeRawRetrying(lwp3.EncodeHubPropertyRequest(lwp3.PropertyBatteryVoltage))
		h.writeRawRetrying(lwp3.EncodeHubPropertyEnableUpdates(lwp3.PropertyBatteryVoltage))
	case ProtocolSpikeBinary:
		h.writeSpike(spike.InfoRequest())
	case ProtocolSpikeJSON:
		// accessory stream is unsolicited; nothing to subscribe to.
	}
}

func (h *Hub) writeRaw(data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := h.adapter.Write(ctx, data, h.writeTag, transport.WithoutResponse); err != nil {
		logging.Warn("bootstrap write failed", zap.String("hub_id", h.id), zap.Error(err))
	}
}

// writeRawRetrying behaves like writeRaw but retries up to
// h.bootstrapRetries times on failure: a dropped subscription-bootstrap
// write has no response to watch for, so without a retry the hub would
// silently stay unsubscribed for the rest of the connection.
func (h *Hub) writeRawRetrying(data []byte) {
	var err error
	for attempt := 0; attempt <= h.bootstrapRetries; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err = h.adapter.Write(ctx, data, h.writeTag, transport.WithoutResponse)
		cancel()
		if err == nil {
			return
		}
		logging.Warn("bootstrap write failed, retrying", zap.String("hub_id", h.id), zap.Int("attempt", attempt+1), zap.Error(err))
	}
	logging.Warn("bootstrap write exhausted retries", zap.String("hub_id", h.id), zap.Int("retries", h.bootstrapRetries), zap.Error(err))
}

func (h *Hub) writeSpike(payload []byte) {
	framed := spike.Pack(payload)
	size := int(h.spikeMaxPacketSize)
	if size == 0 {
		size = defaultSpikeChunkSize
	}
	for _, chunk := range spike.Chunk(framed, size) {
		h.writeRawRetrying(chunk)
	}
}

func (h *Hub) dispatchFrame(data []byte) {
	switch h.protocol {
	case ProtocolLwp3BLE:
		h.handleLWP3Frame(data)
	case ProtocolSpikeBinary:
		h.handleSpikeFrame(data)
	default:
		logging.LogDroppedFrame(h.id, h.protocol.String(), "frame received with no bound binary protocol")
	}
}

func (h *Hub) handleLWP3Frame(data []byte) {
	msg, err := lwp3.Decode(data)
	if err != nil {
		logging.LogDroppedFrame(h.id, "lwp3-ble", err.Error())
		return
	}
	logging.LogFrame(h.id, "inbound", "lwp3-ble", data)

	switch m := msg.(type) {
	case lwp3.AttachedIOMsg:
		h.handleAttachedIO(m)
	case lwp3.PortValueSingleMsg:
		h.handlePortValueSingle(m)
	case lwp3.HubPropertyMsg:
		h.handleHubProperty(m)
	}
}

func (h *Hub) handleAttachedIO(m lwp3.AttachedIOMsg) {
	port := model.Port(m.Port)

	h.mu.Lock()
	if m.Event == lwp3.IOEventDetached {
		h.snapshot.ClearPort(port)
	} else {
		category, label := lwp3.LookupDeviceType(m.DeviceType)
		h.snapshot.Attached[port] = model.AttachedDevice{
			Port: port, DeviceType: m.DeviceType, Category: category, Label: label,
		}
	}
	h.mu.Unlock()

	logging.LogDeviceEvent(h.id, port.String(), m.Event.String())
	h.publish(Event{Topic: TopicAttachedDevicesChanged, Snapshot: h.Snapshot()})

	if m.Event != lwp3.IOEventDetached && m.Port < 50 {
		h.writeRaw(lwp3.EncodePortInputFormatSingle(m.Port, 0, 1, true))
	}
}

func (h *Hub) handlePortValueSingle(m lwp3.PortValueSingleMsg) {
	port := model.Port(m.Port)
	h.mu.Lock()
	h.snapshot.RawValues[port] = append([]byte(nil), m.Value...)
	h.mu.Unlock()
	h.publish(Event{Topic: TopicDeviceDataChanged, Snapshot: h.Snapshot()})
}

func (h *Hub) handleHubProperty(m lwp3.HubPropertyMsg) {
	if m.Property == lwp3.PropertyBatteryVoltage && m.Operation == lwp3.OpUpdate && len(m.Payload) > 0 {
		h.updateBattery(m.Payload[0])
	}
}

func (h *Hub) handleSpikeFrame(framed []byte) {
	raw := spike.Unpack(framed)
	if len(raw) == 0 {
		logging.LogDroppedFrame(h.id, "spike-binary", "empty frame after unpack")
		return
	}
	logging.LogFrame(h.id, "inbound", "spike-binary", framed)

	switch spike.Tag(raw[0]) {
	case spike.TagInfoResponse:
		info, err := spike.ParseInfoResponse(raw[1:])
		if err != nil {
			logging.LogDroppedFrame(h.id, "spike-binary", err.Error())
			return
		}
		h.spikeMaxPacketSize = info.MaxPacketSize
		h.writeSpike(spike.DeviceNotificationRequest(5000))
	case spike.TagDeviceNotification:
		if len(raw) < 3 {
			logging.LogDroppedFrame(h.id, "spike-binary", "device notification shorter than header")
			return
		}
		h.applyDeviceNotification(spike.ParseDeviceNotification(raw[3:]))
	case spike.TagConsoleNotification:
		h.publish(Event{Topic: TopicDiagnostic, Message: string(raw[1:])})
	default:
		logging.LogDeviceEvent(h.id, "-", fmt.Sprintf("unknown spike tag 0x%02X", raw[0]))
	}
}

// applyDeviceNotification atomically replaces every typed per-port map
// with the records in n, since each notification is a complete snapshot
// of the hub's current port state rather than a delta.
func (h *Hub) applyDeviceNotification(n spike.DeviceNotification) {
	h.mu.Lock()
	h.snapshot.Motors = make(map[model.Port]model.Motor)
	h.snapshot.Colors = make(map[model.Port]model.Color)
	h.snapshot.Forces = make(map[model.Port]model.Force)
	h.snapshot.Distances = make(map[model.Port]model.Distance)
	h.snapshot.LightMatrices = make(map[model.Port]model.LightMatrix)

	for _, m := range n.Motors {
		h.snapshot.Motors[model.Port(m.Port)] = model.Motor{
			DeviceType: uint16(m.DeviceType), Speed: m.Speed,
			Position: m.Position, AbsolutePosition: m.AbsolutePosition,
		}
	}
	for _, c := range n.Colors {
		h.snapshot.Colors[model.Port(c.Port)] = model.Color{ColorID: c.ColorID, Red: c.Red, Green: c.Green, Blue: c.Blue}
	}
	for _, f := range n.Forces {
		h.snapshot.Forces[model.Port(f.Port)] = model.Force{Force: f.Force, Pressed: f.Pressed}
	}
	for _, d := range n.Distances {
		h.snapshot.Distances[model.Port(d.Port)] = model.Distance{MM: d.MM}
	}
	for _, lm := range n.LightMatrices {
		h.snapshot.LightMatrices[model.Port(lm.Port)] = model.LightMatrix{Brightness: append([]uint8(nil), lm.Brightness...)}
	}
	if n.IMU != nil {
		imu := model.IMU{
			AccelX: n.IMU.AccelX, AccelY: n.IMU.AccelY, AccelZ: n.IMU.AccelZ,
			GyroX: n.IMU.GyroX, GyroY: n.IMU.GyroY, GyroZ: n.IMU.GyroZ,
			OrientX: n.IMU.OrientX, OrientY: n.IMU.OrientY, OrientZ: n.IMU.OrientZ,
		}
		h.snapshot.IMU = &imu
	}
	if n.Display != nil {
		h.snapshot.Display = &model.Display{Brightness: append([]uint8(nil), n.Display.Brightness...)}
	}
	h.mu.Unlock()

	if n.Battery != nil {
		h.updateBattery(n.Battery.Level)
	}
	h.publish(Event{Topic: TopicDeviceDataChanged, Snapshot: h.Snapshot()})
}

func (h *Hub) handleJSONLine(line []byte) {
	l, err := jsontelemetry.Decode(line)
	if err != nil {
		logging.LogDroppedFrame(h.id, "spike-json", err.Error())
		return
	}
	switch l.Method {
	case jsontelemetry.MethodBattery:
		if l.Battery != nil {
			h.updateBattery(*l.Battery)
		}
	case jsontelemetry.MethodDeviceTelemetry:
		h.mergeJSONPorts(l.Ports)
	}
}

// mergeJSONPorts applies a per-port merge rather than DeviceNotification's
// full replace: a JSON telemetry line only ever reports the ports with a
// value this tick, so ports it is silent about must be left untouched.
// Each reported port is cleared and rebuilt from its own reading so a
// device-type change on that port can't leave a stale typed entry behind.
func (h *Hub) mergeJSONPorts(ports map[model.Port]jsontelemetry.PortReading) {
	h.mu.Lock()
	for port, r := range ports {
		h.snapshot.ClearPort(port)

		category := model.CategoryUnknown
		switch {
		case r.Motor != nil:
			h.snapshot.Motors[port] = *r.Motor
			category = model.CategoryMotor
		case r.LightMatrix != nil:
			h.snapshot.LightMatrices[port] = *r.LightMatrix
			category = model.CategoryLight
		}
		if r.Distance != nil {
			h.snapshot.Distances[port] = *r.Distance
			category = model.CategorySensor
		}
		if r.Color != nil {
			h.snapshot.Colors[port] = *r.Color
			category = model.CategorySensor
		}
		if r.Force != nil {
			h.snapshot.Forces[port] = *r.Force
			category = model.CategorySensor
		}

		h.snapshot.Attached[port] = model.AttachedDevice{
			Port: port, DeviceType: uint16(r.DeviceType), Category: category,
			Label: fmt.Sprintf("device-type-%d", r.DeviceType),
		}
	}
	h.mu.Unlock()
	h.publish(Event{Topic: TopicDeviceDataChanged, Snapshot: h.Snapshot()})
}

// updateBattery applies spec's dampening rule: emit on the first nonzero
// reading, then at most once per h.batteryDampenWindow or immediately on
// any change from the last emitted value, whichever comes first. The raw
// percentage is always stored even on ticks that don't emit.
func (h *Hub) updateBattery(pct uint8) {
	h.mu.Lock()
	h.snapshot.Battery = &pct
	h.mu.Unlock()

	emit := false
	switch {
	case h.lastBatteryEmitted == nil:
		emit = pct != 0
	case *h.lastBatteryEmitted != pct:
		emit = true
	case time.Since(h.lastBatteryEmitAt) >= h.batteryDampenWindow:
		emit = true
	}
	if !emit {
		return
	}
	h.lastBatteryEmitted = &pct
	h.lastBatteryEmitAt = time.Now()
	h.publish(Event{Topic: TopicBatteryChanged, Snapshot: h.Snapshot()})
}

func (h *Hub) setState(s State) {
	h.mu.Lock()
	from := h.state
	h.state = s
	h.mu.Unlock()
	logging.LogHubState(h.id, from.String(), s.String())
	h.publish(Event{Topic: TopicStateChanged, State: s})
}

func (h *Hub) publish(ev Event) {
	h.listenersMu.Lock()
	ls := append([]Listener(nil), h.listeners...)
	h.listenersMu.Unlock()
	for _, l := range ls {
		l(ev)
	}
}

// selectProtocol implements §4.6's selection order: the line/accessory
// transport always binds SpikeJSON; otherwise SPIKE Prime's GATT service
// wins over plain LWP3 if both are present, and the legacy 0xFEED service
// id is accepted as an LWP3 alias.
func selectProtocol(services []transport.Characteristic) (proto Protocol, writeTag, notifyTag string) {
	for _, c := range services {
		if c.Role == transport.RoleLine {
			return ProtocolSpikeJSON, c.Tag, c.Tag
		}
	}
	if w, n, ok := tagsForService(services, ServiceSpikePrime); ok {
		return ProtocolSpikeBinary, w, n
	}
	if w, n, ok := tagsForService(services, ServiceLWP3); ok {
		return ProtocolLwp3BLE, w, n
	}
	if w, n, ok := tagsForService(services, ServiceLWP3Legacy); ok {
		return ProtocolLwp3BLE, w, n
	}
	return ProtocolNone, "", ""
}

func tagsForService(services []transport.Characteristic, service string) (writeTag, notifyTag string, found bool) {
	for _, c := range services {
		if c.Service != service {
			continue
		}
		found = true
		switch c.Role {
		case transport.RoleWrite:
			writeTag = c.Tag
		case transport.RoleNotify:
			notifyTag = c.Tag
		}
	}
	return
}
