package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zjrosen/enroll/internal/presentation"
	"github.com/zjrosen/enroll/internal/program"
)

var outputFormat string

func runEnroll(cmd *cobra.Command, args []string) error {
	if err := presentation.ValidateFormat(outputFormat); err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	return enrollUser(cmd.Context(), a, cmd.OutOrStdout(), program.ID(args[0]), args[1], outputFormat)
}

func enrollUser(ctx context.Context, a *app, w io.Writer, id program.ID, user, format string) error {
	e, err := a.service.Enroll(ctx, id, user)
	if err != nil {
		var unknown *program.UnknownProgramError
		if errors.As(err, &unknown) {
			return fmt.Errorf("%w (available: %v)", err, a.service.Programs())
		}
		return err
	}
	return presentation.NewFormatterFor(w, format).FormatEnrollment(presentation.FromEnrollment(e))
}
