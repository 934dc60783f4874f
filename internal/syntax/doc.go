// Package syntax provides compiled lexical rules for a scripting language.
//
// A Definition bundles the matchers used by the highlighter and the
// completer:
//   - reserved words, matched whole-word
//   - identifiers
//   - symbol chains: identifiers joined by the path joiner that do not
//     start with a reserved word
//   - word delimiters, used to split lines and to decide whether a typed
//     character should open the completion popup
//   - parenthesis patterns and the path joiner used for qualified names
//
// Every matcher is a pure function of (text, offset). No match state is
// retained between calls, so a Definition can be shared freely once built.
package syntax
