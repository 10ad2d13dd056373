// Package splitter turns one block of text into an ordered list of tokens
// using a delimiter pattern built by package separator, per rune splitting, or
// no splitting at all.
package splitter
