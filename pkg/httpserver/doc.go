// Package httpserver runs an HTTP handler with configured timeouts and graceful
// shutdown, and provides liveness/readiness handlers.
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server failed", logger.Error(err))
//	}
//
// Run returns once ctx is cancelled and in-flight requests have drained,
// or ShutdownTimeout has elapsed.
package httpserver
