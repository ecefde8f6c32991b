// Package engine is the control surface of the live audio processor.
//
// An Engine is driven by two actors. The control plane calls Initialize,
// Start, Stop, Release and the setters; every setter publishes a complete,
// clamped stage config through the parameter store and returns at once.
// The audio thread calls ProcessBlock (or ProcessInPlace, ProcessFloat32)
// from its callback; it loads the published snapshot at the start of each
// block, reconfigures the chain only when the snapshot changed, and never
// allocates, locks or logs.
//
// Lifecycle:
//
//	Uninitialized → Stopped ⇄ Running → Released
//
// Processing in any state other than Running writes silence.
package engine
