package domain

import "errors"

// ErrRunawayLoop is returned when an interaction exhausts its per-tick step
// budget without suspending or completing (a non-terminating jump cycle in
// the script definition).
var ErrRunawayLoop = errors.New("runaway interaction loop")

// ErrScriptNotFound is returned when a script ID cannot be found in the
// configured source.
var ErrScriptNotFound = errors.New("script not found")

// ErrOnCooldown is returned by gate operations when a cooldown is still
// running and the script defines no fallback branch.
var ErrOnCooldown = errors.New("interaction on cooldown")
