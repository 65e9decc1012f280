// Package wire serializes token streams and document trees so that the
// scanner, tree builder and renderer can run as separate processes.
//
// Tokens encode as {"kind","value","line","column"}; nodes encode as
// {"kind","content","level","info","children"} where content and level are
// null for kinds that do not carry them. Both JSON and YAML are supported.
package wire
