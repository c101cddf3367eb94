// Package session implements the per-node session manager. A Manager owns the
// sessions of exactly one node: it creates them with unique ids, looks them up,
// resumes and closes them by id, and reaps each session from its index the
// moment the session closes.
//
// Constructing a Manager binds it onto the node (core.Node.BindSessions), so
// any component holding the node can drive sessions purely by id through
// node.Next, node.Close and node.GetSession.
//
// Session ids have the form <nodeID>-<unixMillis>-<counter>. The counter is
// pre-incremented and never reset, so ids stay unique for the lifetime of a
// manager even when several sessions are created within one millisecond.
package session
