/*
Package domain holds the pure types of the riposte engine: the Operation
contract, the per-interaction mutable state, wait sources, and lifecycle
hooks.

It has no dependencies besides the boundary contracts in ports, so every
other package (builder, executor, codec, adapters) can import it freely.
*/
package domain
