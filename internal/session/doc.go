// Package session ties a language's syntax definition and function
// library to a host text editor.
//
// A Session is built once from a syntax.Definition and a library.Tree and
// owns the matching highlighter and completer. The Editor holds the active
// Session and swaps it as a whole: replacing the syntax or the library
// builds a new Session first and only then publishes it, so callers never
// observe a half-built one. When a replacement fails to build, the
// previous Session stays active.
//
// The Editor talks to its surroundings through two small interfaces. Host
// is the text engine (line text, cursor, insertion). Popup is the list
// widget showing completion candidates.
//
// Input reaches the Editor as inserted characters (InsertChar) and special
// keys (HandleKey):
//
//   - Enter: accept the highlighted candidate when the popup is showing,
//     else insert a newline that repeats the line's leading tab run
//   - Tab: accept when showing, else pass through
//   - Escape: hide the popup
//   - Up, Down, PageUp, PageDown: move the highlighted row while showing
package session
