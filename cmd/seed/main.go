package main

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/oksasatya/careerconnect-api/config"
	app "github.com/oksasatya/careerconnect-api/internal/application"
	"github.com/oksasatya/careerconnect-api/internal/domain/entity"
	pginfra "github.com/oksasatya/careerconnect-api/internal/infrastructure/postgres"
	"github.com/oksasatya/careerconnect-api/pkg/apperror"
	"github.com/oksasatya/careerconnect-api/pkg/helpers"
)

const (
	demoRecruiterID = "demo-recruiter"
	demoCandidateID = "demo-candidate"
)

var demoEmails = map[string]string{
	demoRecruiterID: "recruiter@example.com",
	demoCandidateID: "candidate@example.com",
}

func ptr[T any](v T) *T { return &v }

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()
	if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}

	profilesRepo := pginfra.NewProfileRepository(pool)
	internshipsRepo := pginfra.NewInternshipRepository(pool)
	profiles := app.NewProfileService(profilesRepo, internshipsRepo, nil, logger)
	internships := app.NewInternshipService(internshipsRepo, profilesRepo, nil, logger)

	register(ctx, profiles, demoRecruiterID, app.RegisterInput{
		Email: demoEmails[demoRecruiterID], Name: "Riya Recruiter", Role: entity.RoleRecruiter,
		Company: "Acme Labs", Position: "Talent Lead",
	})
	register(ctx, profiles, demoCandidateID, app.RegisterInput{
		Email: demoEmails[demoCandidateID], Name: "Arjun Candidate", Role: entity.RoleCandidate,
	})

	mine, err := internships.ListMine(ctx, demoRecruiterID)
	if err != nil {
		logger.WithError(err).Fatal("failed to list demo postings")
	}
	if len(mine) == 0 {
		for _, in := range demoPostings() {
			i, err := internships.Create(ctx, demoRecruiterID, in)
			if err != nil {
				logger.WithError(err).Fatal("failed to seed posting")
			}
			fmt.Printf("seeded internship: id=%s title=%q\n", i.ID, i.Title)
		}
	} else {
		fmt.Printf("recruiter already has %d postings, skipping\n", len(mine))
	}

	if cfg.IdPJWTSecret == "" {
		fmt.Println("IDP_JWT_SECRET not set; no dev tokens issued")
		return
	}
	for _, sub := range []string{demoRecruiterID, demoCandidateID} {
		tok, err := helpers.IssueDevToken(cfg.IdPJWTSecret, sub, demoEmails[sub], cfg.IdPIssuer, cfg.IdPAudience, 24*time.Hour)
		if err != nil {
			logger.WithError(err).Fatal("failed to issue dev token")
		}
		fmt.Printf("dev token for %s:\n%s\n", sub, tok)
	}
}

func register(ctx context.Context, svc *app.ProfileService, id string, in app.RegisterInput) {
	p, err := svc.Register(ctx, id, in.Email, in)
	switch {
	case err == nil:
		fmt.Printf("seeded %s: id=%s email=%s\n", p.Role, p.ID, p.Email())
	case apperror.Is(err, apperror.KindConflict):
		fmt.Printf("%s %s already exists\n", in.Role, id)
	default:
		panic(err)
	}
}

func demoPostings() []app.InternshipInput {
	return []app.InternshipInput{
		{
			Title:    ptr("Backend Engineering Intern"),
			Location: ptr("Bengaluru"),
			Duration: ptr("6 Months"),
			Stipend: &app.StipendInput{
				Min: ptr(decimal.NewFromInt(15000)),
				Max: ptr(decimal.NewFromInt(25000)),
			},
			SkillsAndQualifications: []string{"Go", "PostgreSQL", "REST"},
			Openings:                ptr(2),
		},
		{
			Title:    ptr("Product Design Intern"),
			Location: ptr("Remote"),
			Duration: ptr("3 Months"),
			InternshipType: &app.InternshipTypeInput{
				Type:   ptr("Remote"),
				Timing: ptr("Full Time"),
			},
			SkillsAndQualifications: []string{"Figma", "User Research"},
		},
	}
}
