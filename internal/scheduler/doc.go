// Package scheduler repeats a job on a fixed interval with a shorter back-off
// after failures. Time is read through a Clock so tests can drive the loop
// without sleeping.
package scheduler
