// Package openapi bridges widgets and OpenAPI 3 documents using kin-openapi.
// It exports the schema of the values a widget produces and reads widget
// definitions embedded in component schemas under the x-formgen-widget
// extension.
package openapi
