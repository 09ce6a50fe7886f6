// Package app wires configuration, observability, services and HTTP routes
// into a runnable service and manages its lifecycle.
//
// # Initialization Flow
//
//	1. The caller loads configuration and the logger
//	2. OpenTelemetry providers and business metrics are created
//	3. The websocket hub, report service and health service are built
//	4. Handlers and middleware are mounted on a chi router
//	5. The HTTP server is created
//
// # Usage
//
//	app, err := app.NewApplication(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	return app.Run(ctx)
//
// # Graceful Shutdown
//
// Run returns after SIGINT, SIGTERM or cancellation of its context. Active
// requests are completed, websocket viewers are disconnected and telemetry
// is flushed. The package never calls os.Exit.
package app
