package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/campus-event-manager/navigation-service/internal/adapters/identity"
	"github.com/campus-event-manager/navigation-service/internal/adapters/repository"
	"github.com/campus-event-manager/navigation-service/internal/adapters/termhost"
	"github.com/campus-event-manager/navigation-service/internal/config"
	"github.com/campus-event-manager/navigation-service/internal/core/domain"
	"github.com/campus-event-manager/navigation-service/internal/core/services"
	"github.com/campus-event-manager/navigation-service/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	roleFlag := flag.String("role", "", "override the configured user role")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "navigator: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	role := resolveRole(cfg, *roleFlag, logger)
	logger.Info().Str("role", role.String()).Str("state_file", cfg.State.Path).Msg("starting navigator")

	breaker := config.NewCircuitBreaker("state-file")
	repo := repository.NewJSONStateRepository(cfg.State.Path, breaker, logger)

	store := services.NewRouteStore(role, repo, logger)
	store.Load()

	host := termhost.New(os.Stdout, logger)
	router := services.NewNavigationService(store.Role(), store, host, host, host, logger)

	runTour(router, store, host)
}

// resolveRole prefers the command-line override, then the SSO token when one
// is configured, then the configured literal. Anything that fails resolves to
// student, the role that can do the least harm.
func resolveRole(cfg *config.Config, override string, logger zerolog.Logger) domain.Role {
	if override != "" {
		role, err := domain.ParseRole(override)
		if err != nil {
			logger.Warn().Err(err).Msg("bad -role flag, falling back to student")
			return domain.RoleStudent
		}
		return role
	}

	if cfg.User.SSOTokenPath != "" {
		key, err := identity.LoadPublicKey(cfg.User.SSOPublicKey)
		if err != nil {
			logger.Warn().Err(err).Msg("sso public key unavailable, falling back to student")
			return domain.RoleStudent
		}
		role, err := identity.RoleFromTokenFile(cfg.User.SSOTokenPath, key)
		if err != nil {
			logger.Warn().Err(err).Msg("sso token rejected, falling back to student")
			return domain.RoleStudent
		}
		return role
	}

	role, err := domain.ParseRole(cfg.User.Role)
	if err != nil {
		logger.Warn().Err(err).Msg("bad configured role, falling back to student")
		return domain.RoleStudent
	}
	return role
}

// runTour walks the router through a typical session so the persistence and
// permission behavior is visible end to end. Run it twice to watch the second
// run restore where the first one left off.
func runTour(router *services.NavigationService, store *services.RouteStore, host *termhost.Host) {
	if cur, ok := router.CurrentRoute(); ok {
		fmt.Printf("-- resuming at %s as %s --\n", cur.View, router.Role())
	}

	router.ToCalendar()
	host.SetCalendarFilter("Academic")

	router.ToDayView(domain.NewDate(2026, 9, 18))
	router.ToActivities()
	host.SetActivityFilters("All Events", "This Week")

	// Students get bounced back to the calendar here; everyone sees the
	// warning path exercised at least once per tour.
	router.ToAddEvent()

	router.ToSearch("midterm")
	router.GoBack()

	history := store.History()
	fmt.Printf("-- back stack holds %d entries --\n", len(history))
	if cur, ok := router.CurrentRoute(); ok {
		fmt.Printf("-- session saved at %s --\n", cur.View)
	}
}
