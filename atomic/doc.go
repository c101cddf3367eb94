// Package atomic implements core.ModuleRegistry: the per-node registry of
// supported capabilities and installed modules. A node receives exactly one
// Registry; modules such as the session manager register themselves into it
// by name.
//
// The first registration under a name wins. Later registrations under the
// same name are ignored so a module cannot be silently replaced.
package atomic
