// launching the server, font provisioning, render cache
package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ds124wfegd/pill-overlay/config"
	"github.com/ds124wfegd/pill-overlay/internal/database"
	"github.com/ds124wfegd/pill-overlay/internal/pkg/compositor"
	"github.com/ds124wfegd/pill-overlay/internal/pkg/fonts"
	"github.com/ds124wfegd/pill-overlay/internal/pkg/storage"
	"github.com/ds124wfegd/pill-overlay/internal/service"
	"github.com/ds124wfegd/pill-overlay/internal/transport"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ProvisionFont runs the one-time startup download, or only inspects the
// target path when downloading is disabled.
func ProvisionFont(cfg config.FontConfig) fonts.ProvisionStatus {
	fontStorage := storage.NewFileStorage(filepath.Dir(cfg.Path))
	name := filepath.Base(cfg.Path)

	if !cfg.Download {
		return fonts.ExistingFont(cfg.URL, fontStorage, name)
	}

	timeout := cfg.DownloadTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return fonts.EnsureFontAvailable(ctx, &http.Client{Timeout: timeout}, cfg.URL, fontStorage, name)
}

func newRenderCache(cfg config.CacheConfig) (database.RenderCache, func()) {
	if !cfg.Enabled {
		return database.NewNoopRenderCache(), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithField("addr", cfg.Addr).WithError(err).Warn("Redis unavailable, render cache will miss until it recovers")
	} else {
		logrus.WithField("addr", cfg.Addr).Info("Render cache connected")
	}

	return database.NewRedisRenderCache(client, cfg.TTL), func() {
		if err := client.Close(); err != nil {
			logrus.Errorf("error occured on redis close: %s", err.Error())
		}
	}
}

// NewHandler builds the HTTP handler from an already provisioned font.
func NewHandler(cfg *config.Config, fontStatus fonts.ProvisionStatus, cache database.RenderCache) http.Handler {
	resolver := fonts.NewResolver(cfg.Font.Path, cfg.Font.FallbackPath)
	imgCompositor := compositor.NewImageCompositor(resolver, cfg.Server.MaxImagePixels)
	overlayService := service.NewOverlayService(imgCompositor, cache, resolver.Fingerprint())
	overlayHandler := transport.NewOverlayHandler(overlayService, fontStatus)

	return transport.InitRoutes(overlayHandler, cfg.Server.MaxBodyBytes)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(new(logrus.JSONFormatter))
	if level, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		logrus.Warnf("unknown log level %q, using info", cfg.Log.Level)
	} else {
		logrus.SetLevel(level)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	fontStatus := ProvisionFont(cfg.Font)
	renderCache, closeCache := newRenderCache(cfg.Cache)
	defer closeCache()

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, NewHandler(cfg, fontStatus, renderCache)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.WithFields(logrus.Fields{
		"addr":             net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		"version":          cfg.Server.AppVersion,
		"environment":      cfg.Server.Env,
		"font_provisioned": fontStatus.Available,
	}).Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}

}
