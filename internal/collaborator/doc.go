// Package collaborator defines the ports enrollment handlers call into.
//
// Collaborators are external systems (request tracking, the cashier enrollment
// store, register and device provisioning, the produce training content system,
// scheduling, mentor matching). Handlers depend only on these interfaces; the
// concrete adapters live in internal/infrastructure and internal/mentor, and
// testify mocks live in the mocks subpackage.
//
// Every method takes a context so adapters can honour cancellation. Errors
// returned by a collaborator are surfaced to the enrolling caller unchanged.
package collaborator
