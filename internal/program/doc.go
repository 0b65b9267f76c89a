// Package program maps training program identifiers to enrollment handlers.
//
// Each program lives in its own package and registers a Factory from init():
//
//	func init() {
//	    program.Register(program.Cashier, New)
//	}
//
// Callers build an immutable Registry once at startup and enroll through it:
//
//	reg := program.NewRegistry(deps)
//	if err := reg.Enroll(ctx, "cashier", "alice"); err != nil {
//	    var unknown *program.UnknownProgramError
//	    if errors.As(err, &unknown) {
//	        // not a registered program
//	    }
//	}
//
// Adding a program means adding a package and a blank import in
// internal/program/builtin. No existing handler changes.
package program
