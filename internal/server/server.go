package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/emrgen/linkdealer/internal/cache"
	"github.com/emrgen/linkdealer/internal/config"
	"github.com/emrgen/linkdealer/internal/jobs"
	"github.com/emrgen/linkdealer/internal/service"
	"github.com/emrgen/linkdealer/internal/shortener"
	"github.com/emrgen/linkdealer/internal/store"
	"github.com/sirupsen/logrus"
)

// Server represents the http server.
type Server struct {
	httpPort string
}

// NewServer creates a new server.
func NewServer(httpPort string) *Server {
	return &Server{
		httpPort: httpPort,
	}
}

// Start starts the server.
func (s *Server) Start() {
	if err := Start(s.httpPort); err != nil {
		logrus.Fatalf("error starting server: %v", err)
	}
}

// Start wires config, database, cache and services together, serves the
// api and shuts down gracefully on SIGINT/SIGTERM.
func Start(httpPort string) error {
	httpPort = ":" + httpPort

	cnf := config.LoadConfig()
	db := config.GetDb(cnf)

	rl, err := net.Listen("tcp", httpPort)
	if err != nil {
		return err
	}

	taxonomyStore := store.NewGormStore(db)
	if err := taxonomyStore.Migrate(); err != nil {
		return err
	}

	var snapshots service.SnapshotCache
	if cnf.RedisAddr != "" {
		snapshots = cache.NewSnapshot(cnf.RedisAddr, cnf.SnapshotTTL)
	}

	var short service.Shortener
	if cnf.BitlyToken != "" {
		short = shortener.NewBitly(cnf.BitlyToken)
	}

	infoService := service.NewInfoService(taxonomyStore, snapshots)
	linkService := service.NewLinkService(taxonomyStore, snapshots)
	utmService := service.NewUTMService(cnf, short)

	router := NewRouter(cnf, NewHandler(infoService, linkService, utmService))

	restServer := &http.Server{
		Addr:    httpPort,
		Handler: router,
	}

	runner := jobs.NewRunner()
	if snapshots != nil && cnf.WarmSchedule != "" {
		runner = jobs.NewRunner(jobs.NewSnapshotWarmTask(infoService, cnf.WarmSchedule))
	}
	runner.Start()

	serveErr := make(chan error, 1)
	go func() {
		logrus.Info("starting api server on: ", httpPort)
		if err := restServer.Serve(rl); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
				return
			}
		}
		serveErr <- nil
	}()

	// listen for interrupt signal to gracefully shut down the server
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		runner.Stop()
		return err
	case <-sigs:
		// clean Ctrl+C output
		fmt.Println()
	}

	runner.Stop()

	if err := restServer.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error stopping api server: %v", err)
		return err
	}

	logrus.Info("api server stopped")

	return <-serveErr
}
