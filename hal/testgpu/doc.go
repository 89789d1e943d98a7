// Package testgpu is an in-memory backend implementing the scheduler
// core's full hal capability set (spec §4.6): timeline events, command
// buffers, and the transient/persistent registries. It performs no actual
// GPU work — every resource is a bookkeeping struct and every command
// buffer "commits" by invoking its completion callback inline.
//
// Use it for testing core/ and for CI environments without GPU access; it
// is the render-graph scheduler's equivalent of the noop backend the rest
// of this repository's HAL surface used to carry before the rewrite.
package testgpu
