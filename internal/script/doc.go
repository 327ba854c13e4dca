// Package script runs hook bodies in an embedded interpreter.
//
// The first line of a hook file selects its dialect (see [Select]). Each
// dialect has one [Session] implementation: Lua sessions use gopher-lua,
// JavaScript sessions use goja. A session is built for exactly one hook,
// receives the capability bindings once, executes one body and is closed.
// Nothing defined by one session's script is visible to another session.
package script
