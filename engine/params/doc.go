// Package params publishes stage configurations from the control plane to
// the audio thread.
//
// Every stage config lives behind an atomic pointer to an immutable,
// clamped value. Writers build a complete new value and swap the pointer;
// the audio thread loads the pointer once per block and compares it with
// the one it saw last. A reader therefore never observes a partially
// written config, never blocks and never allocates.
package params
