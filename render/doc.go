// Package render connects generated shader programs to a display.
//
// A [Bridge] owns at most one active [Program] and at most one compile in
// flight. It moves between the states Idle, Compiling, Active, and Error:
//
//	Idle ──submit──▶ Compiling ──ok──▶ Active
//	                     │
//	                     └──fail──▶ Error (previous program kept)
//
// A submit from any state supersedes whatever compile is outstanding.
// Compiles only start while a [Surface] is attached; a source submitted
// without one waits until [Bridge.Attach].
//
// Every transition to Active fires the bridge's [Pulse] exactly once. A
// pulse is a rising edge followed by a falling edge, delivered to every
// subscriber before the next pulse begins. Transitions to Error never
// fire it.
//
// Devices are pluggable. The cpu subpackage evaluates programs in
// software; the gpu subpackage compiles them with ebiten.
package render
