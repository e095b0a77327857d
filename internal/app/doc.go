// Package app wires the report service into an HTTP application: it loads
// configuration, initializes logging and OpenTelemetry, builds the chi router
// and manages the server lifecycle.
//
// # Initialization Flow
//
//	1. Load configuration from defaults, config file and environment
//	2. Initialize logging and observability
//	3. Create the report and health services
//	4. Set up middleware, handlers and the /metrics endpoint
//	5. Configure the HTTP server
//
// # Usage
//
//	app, err := app.NewApplication()
//	if err != nil {
//	    return err
//	}
//	return app.Run()
//
// # Graceful Shutdown
//
// Run blocks until SIGINT or SIGTERM, or until the server fails to listen,
// then drains in-flight requests within Server.ShutdownTimeout and flushes
// telemetry. The package never calls os.Exit.
package app
