// Package render turns widgets into HTML fragments. Templates run on pongo2
// with autoescaping, so entered values are shown exactly as typed. Widget
// descriptions may carry markup and pass through a bluemonday UGC policy.
// go-theme selections contribute CSS custom properties and template overrides.
package render
