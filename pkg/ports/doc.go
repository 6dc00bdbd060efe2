/*
Package ports defines the boundary contracts between the riposte engine and
its host (the game server).

The engine never constructs or validates these collaborators; it only
forwards them into operations. This keeps the core decoupled from the host's
entity-component store, network layer, and cooldown bookkeeping, so the
engine can be embedded in any server (or a test harness) without adapters
leaking inward.
*/
package ports
