/*
Package ops provides the built-in operation set and registers its factories
with a registry.

The executor knows nothing about these types; they are ordinary Operation
implementations. New kinds can be added by registering another factory;
neither the builder nor the executor changes.
*/
package ops
