// Package widgets adapts the separator, splitter and validation packages to
// concrete form widgets (string inputs, list boxes, value filters). Per-kind
// differences such as the default separator, whether empty values are
// omitted, or the error template are plain data registered on a Registry
// rather than behaviour spread across widget types.
package widgets
