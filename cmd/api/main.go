package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"github.com/saulo-duarte/odontomind-api/internal/config"
	"github.com/saulo-duarte/odontomind-api/internal/container"
	"github.com/saulo-duarte/odontomind-api/internal/router"
)

func main() {
	c := container.New()
	handler := router.New(c.RouterConfig())

	if c.Settings.RunningOnLambda {
		config.Logger.Info("Iniciando no AWS Lambda")
		adapter := httpadapter.NewV2(handler)
		lambda.Start(adapter.ProxyWithContext)
		return
	}

	if err := serve(handler, c.Settings.Port); err != nil {
		config.Logger.WithError(err).Fatal("server failed")
	}
}

func serve(handler http.Handler, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		config.Logger.WithField("addr", srv.Addr).Info("HTTP server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case sig := <-signals:
		config.Logger.WithField("signal", sig.String()).Info("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
