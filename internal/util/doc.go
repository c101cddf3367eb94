// Package util holds small helpers shared by modules that are not part of the
// public API.
package util
