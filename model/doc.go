// Package model defines the provider-agnostic contract for generating
// conversational replies, plus a MockModel for tests and examples.
//
// A Request carries rendered instructions and the ordered turns of one
// session's transcript. Providers (see the openai and anthropic
// sub-packages) implement Model so higher layers (the chat module) stay
// decoupled from vendor SDKs.
package model
