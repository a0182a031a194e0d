package main

import (
	"context"
	"flag"
	"fmt"

	"riceguard/internal/app/config"
	"riceguard/internal/app/content"
	"riceguard/internal/app/dsn"
	"riceguard/internal/app/localfirst"
	"riceguard/internal/app/pkg/storage"
	"riceguard/internal/app/repository"

	log "github.com/sirupsen/logrus"
)

// Writes the bundled static documents into the data directory and, with
// -reset-local, clears locally saved editor changes and recent translations.
func main() {
	overwrite := flag.Bool("overwrite", false, "replace existing documents")
	resetLocal := flag.Bool("reset-local", false, "clear localDiseases and recentTranslations")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	written, err := content.WriteDefaults(cfg.DataDir, *overwrite)
	if err != nil {
		log.Fatalf("seed documents: %v", err)
	}
	for _, p := range written {
		fmt.Printf("Created %s\n", p)
	}

	docs, err := content.Load(context.Background(), cfg.DataDir)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\n%d diseases, %d vendors, %d phrases ready\n", len(docs.Diseases), len(docs.Vendors), len(docs.Translations))

	if *resetLocal {
		local, err := openLocal(cfg)
		if err != nil {
			log.Fatalf("local storage: %v", err)
		}
		ctx := context.Background()
		for _, key := range []string{localfirst.KeyLocalDiseases, localfirst.KeyRecentTranslations} {
			if err := local.Delete(ctx, key); err != nil {
				log.Fatalf("clear %s: %v", key, err)
			}
			fmt.Printf("Cleared %s\n", key)
		}
	}

	fmt.Printf("App data: http://localhost:%d/data/%s\n", cfg.ServicePort, content.DiseasesFile)
}

func openLocal(cfg *config.Config) (localfirst.LocalStorage, error) {
	if cfg.Storage.Driver == "redis" {
		return storage.NewRedis(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB)
	}
	return repository.New(cfg.Storage.Driver, dsn.ForStorage(cfg.Storage.Driver, cfg.Storage.Path))
}
