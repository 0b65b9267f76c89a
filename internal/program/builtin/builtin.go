// Package builtin registers the training programs shipped with enroll.
// Import it for side effects before building a program.Registry.
package builtin

import (
	_ "github.com/zjrosen/enroll/internal/program/cashier"
	_ "github.com/zjrosen/enroll/internal/program/inventory"
	_ "github.com/zjrosen/enroll/internal/program/produce"
)
