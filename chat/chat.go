package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/flowatomic/core"
	"github.com/hupe1980/flowatomic/internal/util"
	"github.com/hupe1980/flowatomic/logging"
	"github.com/hupe1980/flowatomic/model"
	"github.com/hupe1980/flowatomic/session"
)

// ModuleName is the name the chat module registers under.
const ModuleName = "Chat"

// historyKey is the session state key holding the transcript.
const historyKey = "chat.history"

// ErrEmptyMessage is returned by Handle for messages without text.
var ErrEmptyMessage = errors.New("chat: empty message")

// Options configures a Chat module.
type Options struct {
	// Instructions is the system prompt; rendered per turn as a text/template.
	Instructions string

	// MaxHistory caps the number of turns sent to the model. 0 sends all.
	MaxHistory int

	// Index, when set, records the node under ModuleName.
	Index core.NodeIndex

	// Logger defaults to NoOp logger if nil.
	Logger logging.Logger
}

// Chat answers messages inside sessions of one node.
type Chat struct {
	node     *core.Node
	model    model.Model
	sessions *session.Manager
	opts     Options
	logger   logging.Logger

	// serializes transcript read-modify-write
	mu sync.Mutex
}

// modelCallLogger is implemented by loggers with a dedicated model-call record.
type modelCallLogger interface {
	LogModelCall(provider, model string, dur time.Duration, err error)
}

// New creates a chat module for node using m for replies and sessions for
// conversation state. It registers itself in the node's Atomic registry and,
// when configured, in the node index.
func New(node *core.Node, m model.Model, sessions *session.Manager, optFns ...func(o *Options)) *Chat {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	c := &Chat{
		node:     node,
		model:    m,
		sessions: sessions,
		opts:     opts,
		logger:   logging.OrNoOp(opts.Logger),
	}

	if r := node.Atomic(); r != nil {
		r.AddSupport("chat")
		r.RegisterModule(ModuleName, c)
	}
	if opts.Index != nil {
		opts.Index.RegisterNodeOnModule(node, ModuleName)
	}
	return c
}

// Start opens a new conversation.
func (c *Chat) Start() *core.Session {
	return c.sessions.CreateSession()
}

// Handle records msg as a user turn in its conversation and returns the
// model's reply bound to the same session.
//
// The conversation is the first live session msg is bound to. When msg is not
// bound to any live session a new one is started and msg is bound to it.
func (c *Chat) Handle(ctx context.Context, msg *core.Message) (*core.Message, error) {
	text := strings.TrimSpace(msg.Text())
	if text == "" {
		return nil, ErrEmptyMessage
	}

	sess := c.sessionFor(msg)
	turns := c.appendTurn(sess, model.Turn{Role: model.RoleUser, Text: text})
	sess.Resume()

	instructions, err := util.RenderTemplate(c.opts.Instructions, map[string]any{
		"session_id": sess.ID(),
		"node_id":    c.node.ID,
		"turn":       sess.ResumeCount(),
	})
	if err != nil {
		return nil, fmt.Errorf("chat: %w", err)
	}

	if c.opts.MaxHistory > 0 && len(turns) > c.opts.MaxHistory {
		turns = turns[len(turns)-c.opts.MaxHistory:]
	}

	start := time.Now()
	resp, err := c.model.Generate(ctx, model.Request{Instructions: instructions, Turns: turns})
	c.logModelCall(sess, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("chat: generate reply for session %s: %w", sess.ID(), err)
	}

	c.appendTurn(sess, model.Turn{Role: model.RoleAssistant, Text: resp.Text})

	reply := core.NewMessage(resp.Text)
	reply.Metadata = map[string]string{
		"in_reply_to":   msg.ID,
		"finish_reason": resp.FinishReason,
	}
	return sess.BindMessage(reply), nil
}

// History returns a copy of the transcript of a live session.
func (c *Chat) History(sessionID string) ([]model.Turn, error) {
	sess, ok := c.sessions.GetSession(sessionID)
	if !ok {
		return nil, core.NewSessionNotFoundError(sessionID)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyTurns(transcript(sess)), nil
}

func (c *Chat) sessionFor(msg *core.Message) *core.Session {
	for _, id := range msg.Sessions {
		if s, ok := c.sessions.GetSession(id); ok {
			return s
		}
	}
	s := c.sessions.CreateSession()
	s.BindMessage(msg)
	c.logger.Debug("Conversation started", "node_id", c.node.ID, "session_id", s.ID())
	return s
}

// appendTurn adds t to the transcript and returns a copy of the result.
func (c *Chat) appendTurn(sess *core.Session, t model.Turn) []model.Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	turns := append(copyTurns(transcript(sess)), t)
	sess.SetState(historyKey, turns)
	return copyTurns(turns)
}

func (c *Chat) logModelCall(sess *core.Session, dur time.Duration, err error) {
	info := c.model.Info()
	if nl, ok := c.logger.(*logging.NodeLogger); ok && nl != nil {
		nl.WithComponent("chat").WithNode(c.node.ID).WithSession(sess.ID()).LogModelCall(info.Provider, info.Name, dur, err)
		return
	}
	if l, ok := c.logger.(modelCallLogger); ok {
		l.LogModelCall(info.Provider, info.Name, dur, err)
		return
	}
	if err != nil {
		c.logger.Error("Model call failed", "node_id", c.node.ID, "session_id", sess.ID(),
			"provider", info.Provider, "model", info.Name, "duration", dur, "error", err.Error())
		return
	}
	c.logger.Debug("Model call completed", "node_id", c.node.ID, "session_id", sess.ID(),
		"provider", info.Provider, "model", info.Name, "duration", dur)
}

func transcript(sess *core.Session) []model.Turn {
	v, ok := sess.GetState(historyKey)
	if !ok {
		return nil
	}
	turns, _ := v.([]model.Turn)
	return turns
}

func copyTurns(in []model.Turn) []model.Turn {
	out := make([]model.Turn, len(in))
	copy(out, in)
	return out
}
