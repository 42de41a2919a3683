// Package link carries reader commands to a tag over a byte stream, such as
// a serial line to a bench emulator.
//
// The protocol is line oriented ASCII, one command and one reply per line,
// words as four hex digits:
//
//	W B105                     single-word WRITE        -> K
//	B 0302 2000 1234 6B00      BLOCKWRITE frame         -> K
//	R                          READ                     -> E <hex EPC>
//
// After the tag has handed off, every command is answered with
// "H <target> <vector>". Errors come back as "X <message>".
//
// Serve runs the tag side in front of any programmer.Tag; Client is the
// reader side and is itself a programmer.Tag.
package link
