package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"riceguard/internal/app/classifier"
	"riceguard/internal/app/config"
	"riceguard/internal/app/content"
	"riceguard/internal/app/ds"
	"riceguard/internal/app/dsn"
	"riceguard/internal/app/handler"
	"riceguard/internal/app/localfirst"
	"riceguard/internal/app/middleware"
	"riceguard/internal/app/network"
	"riceguard/internal/app/pkg/storage"
	"riceguard/internal/app/repository"
	"riceguard/internal/app/translator"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	docs, err := content.Load(ctx, cfg.DataDir)
	if err != nil {
		log.Fatalf("%v (run cmd/seed to create the data directory)", err)
	}

	local, closeLocal, err := openLocalStorage(cfg)
	if err != nil {
		log.Fatalf("local storage: %v", err)
	}
	defer closeLocal()

	monitor := network.NewMonitor(network.Options{
		ProbeURL:      cfg.Network.ProbeURL,
		ProbeInterval: cfg.Network.ProbeInterval,
		ProbeTimeout:  cfg.Network.ProbeTimeout,
		StartOffline:  cfg.Network.StartOffline,
	})
	monitorDone := make(chan struct{})
	go func() {
		defer close(monitorDone)
		monitor.Run(ctx)
	}()

	store := localfirst.NewStore(local, monitor, localfirst.LogSender{})
	if err := store.Load(ctx, docs.Diseases); err != nil {
		log.Fatalf("load diseases: %v", err)
	}
	unsubscribe := monitor.Subscribe(func(st ds.NetworkStatus) {
		if st.IsOnline && st.WasOffline {
			log.Warn("back online: changes saved while offline stay on this device and are not re-sent")
		}
	})
	defer unsubscribe()

	var photos handler.PhotoArchive
	if cfg.MinIOEnabled() {
		hostPort := fmt.Sprintf("%s:%s", cfg.MinIOHost, cfg.MinIOPort)
		scheme := "http"
		if cfg.MinIOUseSSL {
			scheme = "https"
		}
		m, err := storage.NewMinIO(ctx, hostPort, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, scheme+"://"+hostPort)
		if err != nil {
			log.Warnf("photo archive disabled: %v", err)
		} else {
			photos = m
		}
	}

	h := handler.NewHandler(
		cfg,
		monitor,
		classifier.NewSimulated(classifier.Options{MinDelay: cfg.Classifier.MinDelay, MaxDelay: cfg.Classifier.MaxDelay}),
		store,
		translator.New(docs.Translations, local),
		docs,
		photos,
	)

	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())
	h.RegisterHandler(router)
	h.RegisterStatic(router)

	addr := fmt.Sprintf("%s:%d", cfg.ServiceHost, cfg.ServicePort)
	srv := &http.Server{Addr: addr, Handler: router}

	go func() {
		log.Infof("riceguard listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
	<-monitorDone
}

// openLocalStorage picks the device storage backend from config.
func openLocalStorage(cfg *config.Config) (localfirst.LocalStorage, func(), error) {
	switch cfg.Storage.Driver {
	case "redis":
		r, err := storage.NewRedis(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return r, func() { _ = r.Close() }, nil
	default:
		repo, err := repository.New(cfg.Storage.Driver, dsn.ForStorage(cfg.Storage.Driver, cfg.Storage.Path))
		if err != nil {
			return nil, nil, err
		}
		log.Infof("local storage: %s", cfg.Storage.Driver)
		return repo, func() { _ = repo.Close() }, nil
	}
}
