// Package types defines the application states, capture feedback model,
// session capability interfaces, entity types, and standard error types
// for the orbitcap capture coordinator.
package types
