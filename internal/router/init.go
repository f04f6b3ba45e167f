package router

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/careerconnect-api/config"
	app "github.com/oksasatya/careerconnect-api/internal/application"
	"github.com/oksasatya/careerconnect-api/internal/container"
	"github.com/oksasatya/careerconnect-api/internal/infrastructure/postgres"
	"github.com/oksasatya/careerconnect-api/internal/infrastructure/search"
	handlers "github.com/oksasatya/careerconnect-api/internal/interface/http"
	"github.com/oksasatya/careerconnect-api/internal/interface/middleware"
	"github.com/oksasatya/careerconnect-api/internal/router/modules"
	"github.com/oksasatya/careerconnect-api/pkg/helpers"
)

// Deps is everything the HTTP modules need. Optional collaborators
// (Index, Storage, Notifier, Redis) may be nil.
type Deps struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Repos    container.Repositories
	Verifier middleware.TokenVerifier
	Index    app.InternshipIndex
	Storage  app.FileStorage
	Notifier app.StatusNotifier
	Redis    *redis.Client
	Health   map[string]handlers.Pinger
}

// DepsFromContainer assembles Deps from the container singletons set up in main.
func DepsFromContainer() Deps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	d := Deps{
		Config: cfg,
		Logger: logger,
		Repos:  container.GetRepositories(),
		Redis:  container.GetRedis(),
		Health: map[string]handlers.Pinger{},
	}
	if v := container.GetVerifier(); v != nil {
		d.Verifier = v
	}
	if pool := container.GetPGPool(); pool != nil {
		d.Health["postgres"] = func(ctx context.Context) error { return postgres.Ping(ctx, pool) }
	}
	if es := container.GetES(); es != nil {
		d.Index = search.NewInternshipIndex(es, cfg.ESInternshipsIndex)
	}
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		d.Storage = &helpers.GCSUploader{Client: gcs, Bucket: cfg.GCSBucket, CacheControl: "private, max-age=0"}
	}
	if pub := container.GetRabbitPub(); pub != nil && cfg.MailSendEnabled {
		d.Notifier = app.NewMailNotifier(pub, cfg, logger)
	}
	return d
}

// InitModules builds services and handlers from d and registers every module.
// This function should be called once during application startup.
func InitModules(r *Registry, d Deps) {
	limit := 0
	if d.Config != nil {
		limit = d.Config.NotificationsLimit
	}

	internships := app.NewInternshipService(d.Repos.Internships, d.Repos.Profiles, d.Index, d.Logger)
	profiles := app.NewProfileService(d.Repos.Profiles, d.Repos.Internships, d.Storage, d.Logger)
	applications := app.NewApplicationService(d.Repos.Applications, d.Repos.Internships, d.Repos.Profiles, d.Notifier, d.Logger, limit)
	dashboard := app.NewDashboardService(d.Repos.Applications, d.Repos.Internships, d.Repos.Profiles, d.Logger)
	catalog := app.NewCatalogService(d.Repos.Internships, d.Logger)

	internshipH := handlers.NewInternshipHandler(internships, d.Logger)
	profileH := handlers.NewProfileHandler(profiles, d.Logger)
	applicationH := handlers.NewApplicationHandler(applications, d.Logger)
	dashboardH := handlers.NewDashboardHandler(dashboard, d.Logger)
	catalogH := handlers.NewCatalogHandler(catalog, d.Logger)

	lim := modules.Limiter{RDB: d.Redis, Enabled: d.Config == nil || d.Config.RateLimitEnabled}
	auth := middleware.Auth(d.Verifier, profiles, d.Logger)

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(d.Health)))
	r.Add(modules.NewAuthModule(profileH, d.Verifier, lim))
	r.Add(modules.NewInternshipModule(internshipH, auth, lim))
	r.Add(modules.NewProfileModule(profileH, auth, lim))
	r.Add(modules.NewCandidateModule(applicationH, profileH, auth, lim))
	r.Add(modules.NewRecruiterModule(applicationH, internshipH, dashboardH, auth, lim))
	r.Add(modules.NewDataModule(catalogH, lim))
	if d.Config == nil || d.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(lim))
	}
}
