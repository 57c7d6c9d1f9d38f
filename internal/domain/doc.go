// Package domain holds the core types and protocol constants shared by
// the cwkeyd components.
//
// Two wire protocols meet here. On the network side, clients send UDP
// datagrams that are either plain Morse text or an escape command: the
// byte 0x1B followed by a one-character command code and an optional
// decimal argument. On the serial side, the keyer module accepts short
// binary command sequences and reports back single status bytes.
//
// The domain package defines both vocabularies ([Escape], the Cmd*
// codes, the Op* keyer opcodes, the Status* masks) plus the [Unit] type
// that represents one keyer-bound transmission, so that the bridge,
// the adapters, and the tests all speak the same language.
package domain
