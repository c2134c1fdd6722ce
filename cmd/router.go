package main

import (
	"net/http"

	"github.com/angeloszaimis/proxy-dashboard/internal/handler"
)

func setupRouter(app *application) http.Handler {
	return handler.NewDashboardHandler(handler.Dependencies{
		Config:       app.apiConfig,
		EnvInfo:      app.envInfo,
		Routes:       app.routes,
		ProxyPrefix:  app.upstream.Prefix(),
		Proxy:        app.upstream,
		SocketPrefix: app.socket.Prefix(),
		Socket:       app.socket,
		Metrics:      app.collector.Handler(),
		Health:       app.monitor,
		Breakers:     app.breakers,
		Logger:       app.log,
	})
}
