// Package ports defines the interfaces (ports) that connect the bridge
// core to infrastructure adapters.
//
// In Clean Architecture / Hexagonal Architecture, ports are the boundaries
// between the application core and the outside world. They define what the
// application needs from external systems without specifying how those needs
// are fulfilled.
//
// # Port Interfaces
//
//   - [KeyerPort]: Byte-level access to the serial-attached keyer module
//   - [Network]: Datagram receive/send over the UDP endpoint
//   - [Logger]: Structured logging abstraction
//
// # Usage
//
// The bridge core (internal/bridge) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them with
// concrete implementations (tarm/serial, net.UDPConn, zerolog).
//
// This separation enables:
//   - Testing the bridge with fake keyer and network implementations
//   - Swapping infrastructure without changing protocol logic
//   - Clear boundaries and dependency direction
package ports
