// Package config loads widget definitions from JSON or YAML files. A file
// holds a top level "widgets" list; names must be unique across every file in
// the walked filesystem. Definitions are validated on load.
package config
