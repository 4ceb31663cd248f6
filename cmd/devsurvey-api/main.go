// @title         Developer Survey API
// @version       0.1.0
// @description   Filtered, ranked aggregates over the developer survey for the dashboard tabs

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"devsurvey/internal/core/survey"
	"devsurvey/internal/platform/config"
	"devsurvey/internal/platform/logger"
	phttp "devsurvey/internal/platform/net/http"

	"devsurvey/internal/services/api"
)

func main() {
	// service-scoped config for HTTP and the data file (DEVSURVEY_API_*)
	root := config.New()
	apiCfg := root.Prefix("DEVSURVEY_API_")

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// the table is loaded once and shared read only by every request
	path := apiCfg.MayString("DATA_PATH", "clean_survey_data.csv")
	tbl, err := survey.Open(path)
	if err != nil {
		l.Fatal().Err(err).Str("path", path).Msg("survey load failed")
	}

	// http server (reads DEVSURVEY_API_HOST / DEVSURVEY_API_PORT / DEVSURVEY_API_SHUTDOWN_TIMEOUT)
	srv := phttp.NewServer(apiCfg, phttp.JSONNotFound)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Survey:         tbl,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			EnableMetrics:  apiCfg.MayBool("METRICS", true),
			CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", []string{"*"}),
		},
	)

	// run until SIGINT/SIGTERM
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
