// Package apiconfig resolves the environment-aware API configuration the
// dashboard's HTTP client works from.
//
// The configuration is computed once during bootstrap by Build and handed
// to its consumers by value. A Configuration cannot be modified after it is
// built: its tables are only reachable through accessors that return
// copies, so every reader observes the same snapshot.
//
//	env := environment.Resolve(settings.Mode)
//	origin, err := apiconfig.ParseOrigin(settings.Server.PublicOrigin)
//	if err != nil {
//		return err
//	}
//	cfg := apiconfig.Build(env, origin)
//	client, err := apiclient.New(cfg, origin, logger)
//
// Nothing in this package performs I/O or executes retries; the timeout
// and retry values are declarations for the client to honour.
package apiconfig
