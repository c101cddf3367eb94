// Package flowatomic equips host-runtime nodes with an Atomic module registry
// and session management. Most applications interact with this package by:
//  1. Creating a Runtime via New() (it owns the process-wide node index)
//  2. Enabling modules on nodes (EnableSessionManager, EnableChat)
//  3. Driving sessions by id through the node (node.Next, node.Close)
//  4. Calling ReleaseNode when a node is torn down
//
// The Runtime is the composition root: it is the one place that constructs
// the node index and hands it, together with the logger and clock, to every
// module it enables.
package flowatomic

import (
	"time"

	"github.com/hupe1980/flowatomic/atomic"
	"github.com/hupe1980/flowatomic/chat"
	"github.com/hupe1980/flowatomic/core"
	"github.com/hupe1980/flowatomic/logging"
	"github.com/hupe1980/flowatomic/model"
	"github.com/hupe1980/flowatomic/registry"
	"github.com/hupe1980/flowatomic/session"
)

// Options configures the Runtime instance.
type Options struct {
	// Index is the process-wide node index. Defaults to a fresh registry.Index.
	Index core.NodeIndex

	// Clock is passed to session managers for id timestamps. Defaults to time.Now.
	Clock func() time.Time

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger

	// Chat holds defaults applied to every chat module enabled by the runtime.
	Chat chat.Options
}

// Runtime wires modules onto nodes.
type Runtime struct {
	opts   Options
	logger logging.Logger
}

// New creates a Runtime with optional overrides.
func New(optFns ...func(o *Options)) *Runtime {
	opts := Options{
		Clock:  time.Now,
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Index == nil {
		opts.Index = registry.New()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Runtime{opts: opts, logger: logging.OrNoOp(opts.Logger)}
}

// Index returns the runtime's node index.
func (r *Runtime) Index() core.NodeIndex { return r.opts.Index }

// NodesByModule lists the nodes that enabled module.
func (r *Runtime) NodesByModule(module string) []*core.Node {
	return r.opts.Index.NodesByModule(module)
}

// RegisterAtomicComponent installs a fresh Atomic registry on n, replacing
// any previous one.
func (r *Runtime) RegisterAtomicComponent(n *core.Node) *atomic.Registry {
	reg := atomic.New()
	n.SetAtomic(reg)
	return reg
}

func (r *Runtime) ensureAtomic(n *core.Node) core.ModuleRegistry {
	if reg := n.Atomic(); reg != nil {
		return reg
	}
	return r.RegisterAtomicComponent(n)
}

// managerOf returns the session manager bound to n. The bound controller is
// authoritative; the Atomic registry is consulted when none is bound.
func managerOf(n *core.Node) (*session.Manager, bool) {
	if m, ok := n.Sessions().(*session.Manager); ok && m != nil {
		return m, true
	}
	return atomic.Module[*session.Manager](n.Atomic(), session.ModuleName)
}

// EnableSessionManager gives n a session manager. When n already has one,
// that manager is returned unchanged and re-registered in the current Atomic
// registry if that registry was replaced.
func (r *Runtime) EnableSessionManager(n *core.Node) *session.Manager {
	reg := r.ensureAtomic(n)
	if m, ok := managerOf(n); ok {
		if reg.RegisterModule(session.ModuleName, m) {
			reg.AddSupport("sessions")
		}
		return m
	}
	m := session.NewManager(n, func(o *session.Options) {
		o.Clock = r.opts.Clock
		o.Index = r.opts.Index
		o.Logger = r.logger
	})
	reg.AddSupport("sessions")
	r.logger.Info("Session manager enabled", "node_id", n.ID)
	return m
}

// EnableChat gives n a chat module answering with m, enabling the session
// manager first when needed. optFns are applied on top of Options.Chat.
func (r *Runtime) EnableChat(n *core.Node, m model.Model, optFns ...func(o *chat.Options)) *chat.Chat {
	sm := r.EnableSessionManager(n)
	if c, ok := atomic.Module[*chat.Chat](n.Atomic(), chat.ModuleName); ok {
		return c
	}
	c := chat.New(n, m, sm, func(o *chat.Options) {
		*o = r.opts.Chat
		o.Index = r.opts.Index
		o.Logger = r.logger
		for _, fn := range optFns {
			fn(o)
		}
	})
	r.logger.Info("Chat enabled", "node_id", n.ID, "provider", m.Info().Provider, "model", m.Info().Name)
	return c
}

// ReleaseNode tears down the runtime's bookkeeping for n: every live session
// of its session manager is closed and n is removed from every module of the
// index. It returns the number of sessions closed.
func (r *Runtime) ReleaseNode(n *core.Node) int {
	closed := 0
	if m, ok := managerOf(n); ok {
		closed = m.CloseAll()
	}
	removed := r.opts.Index.ReleaseNodeAll(n)
	r.logger.Info("Node released", "node_id", n.ID, "sessions_closed", closed, "index_entries", removed)
	return closed
}
