// Package render converts graphs to Graphviz DOT and renders them to
// SVG, optionally shading nodes by score.
package render
