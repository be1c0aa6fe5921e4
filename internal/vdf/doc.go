// Package vdf decodes Valve's binary key/value format, the encoding used
// by the Steam client's appinfo cache.
//
// A value is a tag byte, a NUL-terminated key and a payload. Objects hold
// further values and close with an end tag; leaves carry an integer, a
// string or some other fixed or delimited payload. Nothing is
// length-prefixed, so the decoder works purely by recursive descent.
//
// The package also provides a Cursor that bounds every read by the
// declared stream length and a forward-only signature scanner used to
// find entry boundaries in a larger file.
package vdf
