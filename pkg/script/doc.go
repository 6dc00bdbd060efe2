/*
Package script assembles flat operation sequences with label-based control
flow, two-pass-assembler style.

A Builder accumulates operations and labels; forward jumps are legal because
a jump holds the Label itself, not its index. Build validates everything
once (unresolved labels, out-of-range targets, foreign labels) and returns
an immutable Program, so the executor never has to range-check a jump at
run time.
*/
package script
