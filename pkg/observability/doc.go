/*
Package observability provides tools for monitoring the interaction engine.

It translates lifecycle hooks into Prometheus metrics so operators can watch
step throughput, suspension rates, and abort reasons per script.
*/
package observability
