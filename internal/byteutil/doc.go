// Package byteutil collects the small, fiddly pieces both wire codecs need:
// little-endian field reads that never panic on short input, and a hex
// formatter for diagnostic logging.
package byteutil
