// Package dbf decodes the dBASE table files produced by RSTrendX trend
// snapshots.
//
// The format is the classic level-5 dBASE layout: a fixed 32-byte file
// header, a table of 32-byte field descriptors terminated by 0x0D, and a
// record area of fixed-width records whose first byte is the deletion flag.
// All multi-byte integers are little-endian.
//
// Structural problems (bad version byte, truncated header) abort the open;
// per-field problems (unparseable numerics, unknown type codes) decode to
// null values with attached warnings so one bad cell never loses the file.
package dbf
