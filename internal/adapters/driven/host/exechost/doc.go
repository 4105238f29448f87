// Package exechost drives the host graphics application through external
// commands. Each capability is a user-configurable command template;
// placeholders like {source} and {target} are substituted per invocation.
// An empty template disables the capability, which the services surface
// as domain.ErrNotImplemented.
package exechost
