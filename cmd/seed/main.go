// Command seed loads sample venues, artists and shows into the
// configured database.  Pass -file to load a fixture file other than
// the built-in one.
package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/logger"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/seed"
)

func main() {
	file := flag.String("file", "", "fixture YAML file (defaults to the built-in fixtures)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", true)
		boot.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.New(cfg.Log.Level, cfg.IsLocal())

	fx, err := loadFixtures(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("could not read fixtures")
	}

	db, err := database.Open(database.Options{
		Driver:       cfg.DB.Driver,
		User:         cfg.DB.User,
		Pass:         cfg.DB.Password,
		Host:         cfg.DB.Host,
		Port:         cfg.DB.Port,
		Name:         cfg.DB.Name,
		Path:         cfg.DB.Path,
		MaxOpenConns: cfg.DB.MaxOpenConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("could not open database")
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.Migrate(ctx, db); err != nil {
		log.Error().Err(err).Msg("could not apply schema")
		return
	}

	loader := seed.NewLoader(repository.NewVenueRepo(db), repository.NewArtistRepo(db), repository.NewShowRepo(db))
	res, err := loader.Load(ctx, fx)
	switch {
	case errors.Is(err, seed.ErrAlreadySeeded):
		log.Info().Msg("database already seeded, nothing to do")
	case err != nil:
		log.Error().Err(err).Int("venues", res.Venues).Int("artists", res.Artists).Int("shows", res.Shows).Msg("seeding stopped")
	default:
		log.Info().Int("venues", res.Venues).Int("artists", res.Artists).Int("shows", res.Shows).Msg("seeded")
	}
}

func loadFixtures(path string) (seed.Fixtures, error) {
	if path == "" {
		return seed.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return seed.Fixtures{}, err
	}
	return seed.Parse(data)
}
