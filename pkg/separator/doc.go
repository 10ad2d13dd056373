// Package separator converts the separator literal a user types into a widget
// configuration (for example ",;" or "\n") into a delimiter pattern suitable
// for regexp based splitting. Each rune of the literal becomes its own
// single character alternative. The escapes \n and \t are understood; any
// other escape disables splitting and is reported through Result.Warning
// rather than an error so callers can decide how to surface it.
package separator
