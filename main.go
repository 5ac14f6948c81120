package main

import (
	"net/http"
	"os"

	"golang.org/x/exp/slog"
)

var APP *SearchApp

func main() {
	slog.SetDefault(slog.New(NewLogHandler(os.Stdout, nil)))

	config, err := ReadConfig("./config.yaml")
	if err != nil {
		slog.Error("failed to read config: " + err.Error())
		os.Exit(1)
	}
	app, err := BuildSearchApp("./graphs/default", config)
	if err != nil {
		slog.Error("failed to build search app: " + err.Error())
		os.Exit(1)
	}
	APP = app

	mux := http.NewServeMux()
	MapPost(mux, "/v0/routing", HandleRoutingRequest)
	MapGet(mux, "/v0/graph/edge", HandleEdgeInfoRequest)
	MapGet(mux, "/v0/graph/node", HandleNodeInfoRequest)
	MapGet(mux, "/v0/graph/closest", HandleClosestNodeRequest)
	MapGet(mux, "/v0/models", HandleModelsRequest)

	addr := config.Server.Addr
	if addr == "" {
		addr = ":5002"
	}
	slog.Info("listening on " + addr)
	err = http.ListenAndServe(addr, mux)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
