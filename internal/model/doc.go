// Package model defines the device snapshot value types shared by the
// lwp3, spike, and jsontelemetry decoders and published by hub.Hub. None of
// the types here know how to decode a wire frame; they are the common
// target both protocol codecs project into.
package model
