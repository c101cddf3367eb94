// Package core provides the foundational domain types and contracts shared by
// the flowatomic packages. It defines:
//
//   - Node (a host-runtime unit that owns modules and sessions)
//   - Session (an addressable, resumable, closable conversational unit)
//   - Message (an envelope that can be bound to one or more sessions)
//   - ModuleRegistry, NodeIndex and SessionController contracts
//
// Concrete implementations live in sibling packages (atomic, registry,
// session). Keeping the contracts here lets modules depend on small
// interfaces instead of each other.
package core
