package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/nuur-client/internal/config"
	"github.com/jrsteele09/nuur-client/internal/fakebackend"
	"github.com/jrsteele09/nuur-client/internal/logging"
	"github.com/rs/zerolog/log"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatal().Err(err).Msg("error running dev server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("dev server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	logging.Setup(c.GetEnv(), c.GetLogLevel())
	displayAppname(c.GetAppName() + " dev")

	server := &http.Server{Addr: c.GetPort(), Handler: fakebackend.New(c)}
	errs := make(chan error, 1)
	go func() {
		errs <- listenAndServe(server)
	}()

	select {
	case err := <-errs:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(server)
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Str("prefix", fakebackend.APIPrefix).Msg("dev server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
