package app

import (
	"context"
	"log"
	"os"
	"time"

	"skill-radar/internal/aggregate"
	"skill-radar/internal/config"
	"skill-radar/internal/database"
	dbpostgres "skill-radar/internal/database/postgres"
	"skill-radar/internal/domain/extraction"
	"skill-radar/internal/domain/taxonomy"
	"skill-radar/internal/infrastructure/cache"
	"skill-radar/internal/ingestion"
	"skill-radar/internal/repository"
	"skill-radar/internal/usecase"
	"skill-radar/internal/ws"
)

type Container struct {
	Config    config.Config
	Logger    *log.Logger
	Taxonomy  *taxonomy.Index
	Extractor *extraction.Extractor
	Store     *aggregate.Store
	DB        database.DB
	Archive   repository.AggregateArchive
	Cache     *cache.Redis
	Analysis  usecase.AnalysisUsecase
	Ingestion usecase.IngestionUsecase
	Runner    *ingestion.Runner
	Hub       *ws.Hub
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	idx, err := buildTaxonomy(cfg.Engine, logger)
	if err != nil {
		return nil, err
	}
	extractor := extraction.NewExtractor(idx)
	store := aggregate.NewStore()

	c := &Container{
		Config:    cfg,
		Logger:    logger,
		Taxonomy:  idx,
		Extractor: extractor,
		Store:     store,
		Cache:     cache.NewRedis(logger),
	}

	if cfg.Database.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		db, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		c.DB = db

		archive := repository.NewPostgresAggregateArchive(db)
		if err := archive.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		c.Archive = archive

		if err := c.warmStart(ctx); err != nil {
			logger.Printf("archive warm start failed | err=%v", err)
		}
	} else {
		// No archive database: fall back to the cached snapshot mirror.
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		snaps, ok, err := c.Cache.LoadSnapshot(ctx)
		cancel()
		if err == nil && ok {
			store.Restore(snaps)
			logger.Printf("store restored from cache snapshot | records=%d", len(snaps))
		}
	}

	var archive usecase.Archive
	if c.Archive != nil {
		archive = c.Archive
	}
	c.Analysis = usecase.NewAnalysisUsecase(extractor, store, cfg.Engine.TopN, cfg.Engine.TrendThreshold, cfg.Engine.MaxDescriptionLen)
	c.Ingestion = usecase.NewIngestionUsecase(extractor, store, archive, cfg.Engine.MaxDescriptionLen, cfg.Engine.MaxBatchLen, logger)
	c.Runner = ingestion.NewRunner(c.Ingestion, store, c.Cache, logger)
	c.Hub = ws.NewHub(logger)

	return c, nil
}

func buildTaxonomy(cfg config.EngineConfig, logger *log.Logger) (*taxonomy.Index, error) {
	if cfg.TaxonomyFile == "" {
		return taxonomy.Default(), nil
	}
	entries, err := taxonomy.LoadFile(cfg.TaxonomyFile)
	if err != nil {
		return nil, err
	}
	logger.Printf("taxonomy loaded | file=%s skills=%d", cfg.TaxonomyFile, len(entries))
	return taxonomy.NewIndex(entries), nil
}

// warmStart seeds the in-memory store from the archive so analysis
// survives restarts.
func (c *Container) warmStart(ctx context.Context) error {
	snaps, err := c.Archive.LoadAll(ctx)
	if err != nil {
		return err
	}
	c.Store.Restore(snaps)
	c.Logger.Printf("store restored from archive | records=%d", len(snaps))
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
