// Package chat provides a conversational module for nodes. Each conversation
// lives in a session owned by the node's session manager: the transcript is
// kept in the session state, every handled message resumes the session, and
// replies are bound to the session they answer. Closing the session discards
// the transcript with it.
//
// Replies are produced by any model.Model (see model/openai and
// model/anthropic). Instructions may use text/template syntax with the
// variables session_id, node_id and turn.
package chat
