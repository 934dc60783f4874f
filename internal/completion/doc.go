// Package completion provides context-sensitive autocompletion against a
// function library.
//
// The Completer moves between three phases:
//   - Idle: no popup
//   - Showing: a candidate list is visible with one highlighted row
//   - Accepting: transient, while the highlighted candidate is inserted
//
// The prefix is the last identifier left of the cursor. Candidates are the
// library nodes whose name starts with the prefix, in depth-first tree
// order. When the prefix is preceded by a qualifier chain such as "Mesh.",
// only children of the node that chain resolves to are offered.
//
// Accepting a candidate yields only the part of its name beyond the typed
// prefix, so the text the user already typed is kept verbatim.
package completion
