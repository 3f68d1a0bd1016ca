package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/exp/slog"
)

var MANAGER *RoutingManager

func main() {
	config_file := flag.String("config", "./config.yaml", "path of the config file")
	out_file := flag.String("out", "", "write the all pairs matrix of -profile to this csv file and exit")
	profile := flag.String("profile", "", "profile used with -out")
	start_time := flag.Float64("start-time", 8*3600, "departure time in seconds since midnight used with -out")
	flag.Parse()

	config := ReadConfig(*config_file)
	level, err := ParseLogLevel(config.LogLevel)
	if err != nil {
		slog.Warn(err.Error())
	}
	slog.SetDefault(slog.New(NewLogHandler(os.Stdout, level)))

	MANAGER, err = NewRoutingManager(config)
	if err != nil {
		slog.Error("failed to build routing manager: " + err.Error())
		os.Exit(1)
	}

	if *out_file != "" {
		if err := WriteMatrixCSV(MANAGER, *profile, *out_file, *start_time); err != nil {
			slog.Error("failed to write matrix: " + err.Error())
			os.Exit(1)
		}
		slog.Info("matrix written to " + *out_file)
		return
	}

	app := NewRouter()
	addr := fmt.Sprintf(":%d", config.Server.Port)
	slog.Info("listening on " + addr)
	if err := http.ListenAndServe(addr, app); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func NewRouter() *mux.Router {
	app := mux.NewRouter()
	MapPost(app, "/v1/matrix", HandleMatrixRequest)
	MapPost(app, "/v1/route", HandleRoutingRequest)
	MapGet(app, "/v1/zones", HandleZonesRequest)
	app.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return app
}
