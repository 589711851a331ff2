// Package transport defines the Adapter contract the hub runtime consumes
// for byte-level connectivity and ships two reference implementations:
//
//   - WSTransport, a gorilla/websocket client standing in for a BLE GATT
//     link (binary frames <-> notify/write characteristics).
//   - LineTransport, a net.Conn client for the accessory stream, splitting
//     on '\r'/'\n' record delimiters.
//
// Neither adapter scans or discovers peers; both simply dial an address
// already known to the caller. Discovery lives in internal/manager and
// internal/discoveryobs.
package transport
