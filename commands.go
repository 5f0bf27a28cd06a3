package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ekaya-inc/ekaya-l10n/pkg/handlers"
	"github.com/ekaya-inc/ekaya-l10n/pkg/models"
	"github.com/ekaya-inc/ekaya-l10n/pkg/services"
)

// errDrift makes verify exit non-zero without printing a second message.
var errDrift = errors.New("aggregate drift detected")

func newServeCmd() *cobra.Command {
	var skipMigrations bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and serve health, ping and metrics endpoints",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if !skipMigrations {
				if err := migrate(cfg, logger); err != nil {
					logger.Error("Failed to run migrations", zap.Error(err))
					return err
				}
			}

			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				logger.Error("Startup failed", zap.Error(err))
				return err
			}
			defer a.Close()

			checks := map[string]handlers.Pinger{"postgres": a.db}
			if a.redis != nil {
				checks["redis"] = handlers.PingFunc(func(ctx context.Context) error {
					return a.redis.Ping(ctx).Err()
				})
			}
			health := handlers.NewHealthHandler(cfg, checks, logger)

			srv := &http.Server{
				Addr:              net.JoinHostPort(cfg.BindAddr, cfg.Port),
				Handler:           handlers.NewRouter(health, logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Starting ekaya-l10n",
					zap.String("addr", srv.Addr),
					zap.String("env", cfg.Env))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case <-ctx.Done():
				logger.Info("Shutting down")
			case err := <-errCh:
				if err != nil {
					logger.Error("Server failed", zap.Error(err))
					return err
				}
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply pending migrations on startup")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			if err := migrate(cfg, logger); err != nil {
				logger.Error("Failed to run migrations", zap.Error(err))
				return err
			}
			logger.Info("Migrations applied")
			return nil
		},
	}
}

func newRecalculateCmd() *cobra.Command {
	var projectFlag string
	cmd := &cobra.Command{
		Use:   "recalculate",
		Short: "Rebuild every aggregate scope a project feeds from its live translations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectID, err := uuid.Parse(projectFlag)
			if err != nil {
				return fmt.Errorf("invalid --project: %w", err)
			}
			return withApp(cmd.Context(), func(a *app) error {
				summary, err := a.recalculation.RecalculateProject(cmd.Context(), projectID)
				if err != nil {
					a.logger.Error("Recalculation failed", zap.String("project_id", projectID.String()), zap.Error(err))
					return err
				}
				return writeYAML(cmd.OutOrStdout(), summary)
			})
		},
	}
	cmd.Flags().StringVar(&projectFlag, "project", "", "project id")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newVerifyCmd() *cobra.Command {
	var projectFlag string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Compare stored aggregates with a recomputation and report drift as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectID, err := uuid.Parse(projectFlag)
			if err != nil {
				return fmt.Errorf("invalid --project: %w", err)
			}
			return withApp(cmd.Context(), func(a *app) error {
				report, err := a.recalculation.Verify(cmd.Context(), projectID)
				if err != nil {
					a.logger.Error("Verification failed", zap.String("project_id", projectID.String()), zap.Error(err))
					return err
				}
				if err := writeYAML(cmd.OutOrStdout(), report); err != nil {
					return err
				}
				if !report.OK() {
					return errDrift
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&projectFlag, "project", "", "project id")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

// newTranslationCmd exposes the review transitions for operators fixing data
// by hand.
func newTranslationCmd() *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "translation",
		Short: "Inspect or review a single translation",
	}
	cmd.PersistentFlags().StringVar(&user, "user", "", "user recorded in the action log")

	type transitionFunc func(ctx context.Context, t services.TranslationService, id uuid.UUID, user string) (*models.Translation, error)
	transitions := []struct {
		use   string
		short string
		run   transitionFunc
	}{
		{"approve", "Approve a translation", func(ctx context.Context, t services.TranslationService, id uuid.UUID, u string) (*models.Translation, error) {
			return t.Approve(ctx, id, u)
		}},
		{"unapprove", "Withdraw an approval", func(ctx context.Context, t services.TranslationService, id uuid.UUID, u string) (*models.Translation, error) {
			return t.Unapprove(ctx, id, u)
		}},
		{"reject", "Reject a translation", func(ctx context.Context, t services.TranslationService, id uuid.UUID, u string) (*models.Translation, error) {
			return t.Reject(ctx, id, u)
		}},
		{"unreject", "Withdraw a rejection", func(ctx context.Context, t services.TranslationService, id uuid.UUID, u string) (*models.Translation, error) {
			return t.Unreject(ctx, id, u)
		}},
		{"delete", "Delete a rejected translation", func(ctx context.Context, t services.TranslationService, id uuid.UUID, u string) (*models.Translation, error) {
			return nil, t.Delete(ctx, id, u)
		}},
		{"show", "Print a translation", func(ctx context.Context, t services.TranslationService, id uuid.UUID, _ string) (*models.Translation, error) {
			return t.Get(ctx, id)
		}},
	}

	for _, tr := range transitions {
		tr := tr
		cmd.AddCommand(&cobra.Command{
			Use:   tr.use + " <translation-id>",
			Short: tr.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(sub *cobra.Command, args []string) error {
				id, err := uuid.Parse(args[0])
				if err != nil {
					return fmt.Errorf("invalid translation id: %w", err)
				}
				if tr.use != "show" && user == "" {
					return errors.New("--user is required")
				}
				return withApp(sub.Context(), func(a *app) error {
					t, err := tr.run(sub.Context(), a.translations, id, user)
					if err != nil {
						return err
					}
					if t == nil {
						_, err := fmt.Fprintf(sub.OutOrStdout(), "deleted %s\n", id)
						return err
					}
					return writeYAML(sub.OutOrStdout(), newTranslationView(t))
				})
			},
		})
	}
	return cmd
}

// withApp runs fn with a connected app and closes it afterwards.
func withApp(ctx context.Context, fn func(a *app) error) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("Startup failed", zap.Error(err))
		return err
	}
	defer a.Close()

	return fn(a)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

// translationView is the YAML shape printed by the translation commands.
type translationView struct {
	ID           uuid.UUID  `yaml:"id"`
	EntityID     uuid.UUID  `yaml:"entity_id"`
	LocaleID     uuid.UUID  `yaml:"locale_id"`
	PluralForm   *int       `yaml:"plural_form,omitempty"`
	String       string     `yaml:"string"`
	User         string     `yaml:"user,omitempty"`
	Date         time.Time  `yaml:"date"`
	State        string     `yaml:"state"`
	Active       bool       `yaml:"active"`
	ApprovedUser *string    `yaml:"approved_user,omitempty"`
	ApprovedDate *time.Time `yaml:"approved_date,omitempty"`
	RejectedUser *string    `yaml:"rejected_user,omitempty"`
	RejectedDate *time.Time `yaml:"rejected_date,omitempty"`
	Errors       int        `yaml:"errors"`
	Warnings     int        `yaml:"warnings"`
}

func newTranslationView(t *models.Translation) translationView {
	return translationView{
		ID:           t.ID,
		EntityID:     t.EntityID,
		LocaleID:     t.LocaleID,
		PluralForm:   t.PluralForm,
		String:       t.String,
		User:         t.User,
		Date:         t.Date,
		State:        t.State(),
		Active:       t.Active,
		ApprovedUser: t.ApprovedUser,
		ApprovedDate: t.ApprovedDate,
		RejectedUser: t.RejectedUser,
		RejectedDate: t.RejectedDate,
		Errors:       t.ErrorCount,
		Warnings:     t.WarningCount,
	}
}
