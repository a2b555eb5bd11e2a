// Package plantuml builds the compact URL tokens the PlantUML server renders
// diagrams from.
//
// A token is the raw deflate stream of the diagram text, written with
// PlantUML's 64-symbol alphabet at six bits per character:
//
//	source -> Compress -> raw deflate -> Encode -> token
//
// Everything in the package is pure and safe for concurrent use.
package plantuml
