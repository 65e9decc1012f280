// Package mdast provides the core Markdown data model for mdmir:
//   - Token: a classified, positioned lexical unit produced by the scanner
//   - Node: the typed document tree (MIR) produced by the parser
//
// The tree is build-once, read-many. A parent owns its children exclusively
// and no node refers back to its parent, so a tree can be handed between
// goroutines as a value once construction has finished.
package mdast
