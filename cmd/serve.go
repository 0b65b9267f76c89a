package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zjrosen/enroll/internal/enrollment"
	"github.com/zjrosen/enroll/internal/httpapi"
	"github.com/zjrosen/enroll/internal/log"
	"github.com/zjrosen/enroll/internal/pubsub"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the enrollment HTTP API",
	Long: `Serve the enrollment HTTP API until interrupted.

Endpoints:
  GET  /healthz
  GET  /v1/programs[?label=...]
  GET  /v1/programs/{program}
  POST /v1/enrollments   {"program": "cashier", "user": "alice"}

Example:
  enroll serve --addr :8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "address to listen on (overrides http.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	go pubsub.Forward[enrollment.Outcome](ctx, a.service, logOutcome)

	addr := cfg.HTTP.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	handler := httpapi.NewRouter(httpapi.NewHandler(a.service, a.catalog))
	return httpapi.Serve(ctx, httpapi.ServerConfig{
		Addr:            addr,
		ReadTimeout:     cfg.HTTP.ReadTimeout,
		WriteTimeout:    cfg.HTTP.WriteTimeout,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}, handler, nil)
}

func logOutcome(ev pubsub.Event[enrollment.Outcome]) {
	e := ev.Payload.Enrollment
	switch ev.Type {
	case pubsub.EnrolledEvent:
		log.Info(log.CatHTTP, "enrollment recorded", "id", e.ID, "program", e.Program, "user", e.User)
	case pubsub.EnrollFailedEvent:
		log.Warn(log.CatHTTP, "enrollment rejected", "program", e.Program, "user", e.User, "error", ev.Payload.Err)
	}
}
