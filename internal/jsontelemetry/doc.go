// Package jsontelemetry decodes and constructs the line-delimited JSON
// protocol used by the accessory-stream transport, mapping its device
// categories onto the same model types the lwp3/spike decoders populate.
package jsontelemetry
