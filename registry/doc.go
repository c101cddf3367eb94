// Package registry contains the process-wide node/module index. The index
// records which nodes enabled which modules so that whoever tears a node down
// can release it without knowing which module instances the node holds.
//
// One Index is meant to exist per process. Construct it at the composition
// root (see flowatomic.New) and pass it to the modules that register nodes.
//
// ReleaseNode keeps the historical partial-release behavior: it removes a
// single entry from the first module list containing the node and stops. Use
// ReleaseNodeAll for a complete cleanup.
package registry
