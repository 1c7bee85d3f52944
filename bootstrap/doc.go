// Package bootstrap runs a service through a uniform lifecycle: validate
// config, initialise the logger, start registered components in order,
// run configure callbacks and hooks, print a startup summary, wait for
// SIGINT/SIGTERM and stop components in reverse order.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(storageComponent)
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error {
//	    return nil
//	})
//	err = app.Run(ctx)
package bootstrap
