// Package prompt provides the interactive questions cly asks.
//
//   - [Confirm]: yes/no before destructive or remote-driven actions
//   - [TextInput]: single-line answer
//   - [Select]: pick one hook from a filterable list
//
// [NewAsker] chooses between a terminal UI and plain line reading, so the
// same code path works when cly is driven from a pipe.
package prompt
