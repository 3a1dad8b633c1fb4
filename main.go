package main

import (
	"context"
	"io"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin"
	"github.com/estafette/estafette-ci-dashboard/pkg/api"
	"github.com/estafette/estafette-ci-dashboard/pkg/clients/dingapi"
	"github.com/estafette/estafette-ci-dashboard/pkg/clients/eventsource"
	"github.com/estafette/estafette-ci-dashboard/pkg/livestate"
	"github.com/estafette/estafette-ci-dashboard/pkg/services/dashboard"
	"github.com/estafette/estafette-ci-dashboard/pkg/services/queue"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	jaeger "github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	jprom "github.com/uber/jaeger-lib/metrics/prometheus"
)

const appName = "estafette-ci-dashboard"

var (
	version   string
	branch    string
	revision  string
	buildDate string
	goVersion = runtime.Version()
)

var (
	// flags
	prometheusMetricsAddress = kingpin.Flag("metrics-listen-address", "The address to listen on for Prometheus metrics requests.").Default(":9001").String()
	prometheusMetricsPath    = kingpin.Flag("metrics-path", "The path to listen for Prometheus metrics requests.").Default("/metrics").String()

	apiAddress = kingpin.Flag("api-listen-address", "The address to listen on for api HTTP requests.").Default(":5000").String()

	configFilePath = kingpin.Flag("config-file-path", "The path to yaml config file configuring this application.").Default("/configs/config.yaml").Envar("CONFIG_FILE_PATH").String()
	watchConfig    = kingpin.Flag("watch-config", "Apply changes to the log level in the config file without restarting.").Default("true").Envar("WATCH_CONFIG").Bool()
)

func main() {

	// parse command line parameters
	kingpin.Parse()

	// configure json logging
	initLogging()

	// configure tracing
	closer := initJaeger()
	defer closer.Close()

	// define channels and waitgroup to gracefully shutdown the application
	sigs := make(chan os.Signal, 1)                                    // Create channel to receive OS signals
	stop := make(chan struct{})                                        // Create channel to receive stop signal
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM, syscall.SIGINT) // Register the sigs channel to receieve SIGTERM
	wg := &sync.WaitGroup{}                                            // Goroutines can add themselves to this to be waited on so that they finish

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// read config
	configReader := api.NewConfigReader()
	config, err := configReader.ReadConfigFromFile(*configFilePath)
	if err != nil {
		log.Fatal().Err(err).Msgf("Failed reading config file %v", *configFilePath)
	}
	zerolog.SetGlobalLevel(config.Logging.ParsedLevel())

	if *watchConfig {
		err = api.WatchConfigFile(ctx, configReader, *configFilePath, func(changed *api.APIConfig) {
			zerolog.SetGlobalLevel(changed.Logging.ParsedLevel())
		})
		if err != nil {
			log.Warn().Err(err).Msg("Not watching config file for changes")
		}
	}

	// start prometheus
	go startPrometheus()

	dingapiClient, eventsourceClient, queueService := getClients(ctx, config)
	topic := livestate.NewEventTopic("events")
	sessionStore := dashboard.NewSessionStore(config, topic)
	dashboardService := getServices(config, dingapiClient)

	// feed events into the topic, either straight from the ci server or from another instance via the queue
	startFeed(ctx, config, eventsourceClient, queueService, topic, wg)

	// expire sessions of clients that went away
	go sessionStore.RunSweeper(ctx)

	// handle api requests
	srv := handleRequests(config, dingapiClient, dashboardService, sessionStore)

	// wait for graceful shutdown to finish
	<-sigs // Wait for signals (this hangs until a signal arrives)
	log.Debug().Msg("Shutting down...")

	// shut down gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// close sessions first, their event streams keep the server from shutting down
	sessionStore.CloseAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Graceful server shutdown failed")
	}

	log.Debug().Msg("Stopping goroutines...")
	cancel()
	close(stop) // Tell goroutines to stop themselves

	log.Debug().Msg("Awaiting waitgroup...")
	wg.Wait() // Wait for all to be stopped

	topic.Close()
	if queueService != nil {
		queueService.CloseConnection(shutdownCtx)
	}

	log.Info().Msg("Server gracefully stopped")
}

func startPrometheus() {
	log.Debug().
		Str("port", *prometheusMetricsAddress).
		Str("path", *prometheusMetricsPath).
		Msg("Serving Prometheus metrics...")

	http.Handle(*prometheusMetricsPath, promhttp.Handler())

	if err := http.ListenAndServe(*prometheusMetricsAddress, nil); err != nil {
		log.Fatal().Err(err).Msg("Starting Prometheus listener failed")
	}
}

func initLogging() {

	// log as severity for stackdriver logging to recognize the level
	zerolog.LevelFieldName = "severity"

	// set some default fields added to all logs
	log.Logger = zerolog.New(os.Stdout).With().
		Timestamp().
		Str("app", appName).
		Str("version", version).
		Logger()

	// use zerolog for any logs sent via standard log library
	stdlog.SetFlags(0)
	stdlog.SetOutput(log.Logger)

	// log startup message
	log.Info().
		Str("branch", branch).
		Str("revision", revision).
		Str("buildDate", buildDate).
		Str("goVersion", goVersion).
		Msgf("Starting %v...", appName)
}

// initJaeger configures the global tracer from JAEGER_* environment variables
func initJaeger() io.Closer {

	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("Generating Jaeger config from environment variables failed")
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = appName
	}

	closer, err := cfg.InitGlobalTracer(cfg.ServiceName, jaegercfg.Logger(jaeger.StdLogger), jaegercfg.Metrics(jprom.New()))
	if err != nil {
		log.Fatal().Err(err).Msg("Generating Jaeger tracer failed")
	}

	return closer
}

func getClients(ctx context.Context, config *api.APIConfig) (dingapiClient dingapi.Client, eventsourceClient eventsource.Client, queueService queue.Service) {

	log.Debug().Msg("Creating clients...")

	dingapiClient = dingapi.NewClient(config)
	dingapiClient = dingapi.NewTracingClient(dingapiClient)
	dingapiClient = dingapi.NewLoggingClient(dingapiClient)
	dingapiClient = dingapi.NewMetricsClient(dingapiClient, api.NewRequestCounter("dingapi_client"), api.NewRequestHistogram("dingapi_client"))

	eventsourceClient = eventsource.NewClient(config)
	eventsourceClient = eventsource.NewTracingClient(eventsourceClient)
	eventsourceClient = eventsource.NewLoggingClient(eventsourceClient)
	eventsourceClient = eventsource.NewMetricsClient(eventsourceClient, api.NewRequestCounter("eventsource_client"), api.NewRequestHistogram("eventsource_client"))

	if config.Queue.Enable {
		queueService = queue.NewService(config)
		err := queueService.CreateConnection(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed creating queue connection")
		}
	}

	return
}

func getServices(config *api.APIConfig, dingapiClient dingapi.Client) (dashboardService dashboard.Service) {

	log.Debug().Msg("Creating services...")

	dashboardService = dashboard.NewService(config, dingapiClient)
	dashboardService = dashboard.NewTracingService(dashboardService)
	dashboardService = dashboard.NewLoggingService(dashboardService)
	dashboardService = dashboard.NewMetricsService(dashboardService, api.NewRequestCounter("dashboard_service"), api.NewRequestHistogram("dashboard_service"))

	return
}

func startFeed(ctx context.Context, config *api.APIConfig, eventsourceClient eventsource.Client, queueService queue.Service, topic *livestate.EventTopic, wg *sync.WaitGroup) {

	if queueService != nil && config.Queue.Consume {
		// events consumed from the queue were relayed by another instance already
		feed := livestate.NewFeed(topic, api.NewEventCounter())

		err := queueService.InitSubscriptions(ctx, feed)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed initializing queue subscriptions")
		}
		feed.HandleStatus(ctx, true, nil)

		return
	}

	relays := []livestate.Relay{}
	if queueService != nil {
		relays = append(relays, queueService)
	}
	feed := livestate.NewFeed(topic, api.NewEventCounter(), relays...)

	wg.Add(1)
	go func() {
		defer wg.Done()
		eventsource.Run(ctx, eventsourceClient, feed, config.Events)
	}()
}

func createRouter() *gin.Engine {

	// run gin in release mode and other defaults
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = log.Logger
	gin.DisableConsoleColor()

	// Creates a router without any middleware by default
	router := gin.New()

	// Logging middleware
	router.Use(api.ZeroLogMiddleware())

	// Recovery middleware recovers from any panics and writes a 500 if there was one.
	router.Use(gin.Recovery())

	// Opentracing middleware
	router.Use(api.OpenTracingMiddleware())

	return router
}

func handleRequests(config *api.APIConfig, dingapiClient dingapi.Client, dashboardService dashboard.Service, sessionStore *dashboard.SessionStore) *http.Server {

	handler := dashboard.NewHandler(config, dashboardService, sessionStore)

	router := createRouter()

	// liveness and readiness
	router.GET("/liveness", func(c *gin.Context) {
		c.String(200, "I'm alive!")
	})
	router.GET("/readiness", func(c *gin.Context) {
		if err := dingapiClient.Status(c.Request.Context()); err != nil {
			c.String(http.StatusServiceUnavailable, "Ci server unavailable")
			return
		}
		c.String(200, "I'm ready!")
	})

	// event streams are not compressed, gzip buffers them
	router.GET("/api/sessions/:session/events", handler.StreamEvents)

	routes := router.Group("/api", gzip.Gzip(gzip.DefaultCompression))
	{
		routes.POST("/sessions", handler.CreateSession)
		routes.DELETE("/sessions/:session", handler.DeleteSession)
		routes.GET("/sessions/:session/status", handler.GetStatus)
		routes.DELETE("/sessions/:session/view", handler.CloseView)

		routes.GET("/sessions/:session/repos", handler.GetRepos)
		routes.POST("/sessions/:session/repos", handler.PostRepo)
		routes.GET("/sessions/:session/repos/:repo", handler.GetRepo)
		routes.PUT("/sessions/:session/repos/:repo", handler.PutRepo)
		routes.DELETE("/sessions/:session/repos/:repo", handler.DeleteRepo)

		routes.POST("/sessions/:session/repos/:repo/builds", handler.PostBuild)
		routes.GET("/sessions/:session/repos/:repo/builds/:id", handler.GetBuild)
		routes.DELETE("/sessions/:session/repos/:repo/builds/:id", handler.DeleteBuild)
		routes.POST("/sessions/:session/repos/:repo/builds/:id/release", handler.PostRelease)
		routes.POST("/sessions/:session/repos/:repo/builds/:id/cleanup", handler.PostCleanupBuilddir)
		routes.GET("/sessions/:session/repos/:repo/releases/:id", handler.GetRelease)
	}

	// instantiate servers instead of using router.Run in order to handle graceful shutdown
	srv := &http.Server{
		Addr:        *apiAddress,
		Handler:     router,
		ReadTimeout: 30 * time.Second,
		// no write timeout, event streams stay open for the lifetime of a session
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Starting gin router failed")
		}
	}()

	return srv
}
