// Package viz renders a live terminal view of a flash-boiling run: a
// braille-canvas droplet that shrinks as mass evaporates, strip charts of
// the superheat and radius histories, and replay controls.
package viz
