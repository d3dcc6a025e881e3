// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	collaborationsfeature "github.com/civicworks/civicbridge/internal/app/features/collaborations"
	donationsfeature "github.com/civicworks/civicbridge/internal/app/features/donations"
	eventsfeature "github.com/civicworks/civicbridge/internal/app/features/events"
	healthfeature "github.com/civicworks/civicbridge/internal/app/features/health"
	issuesfeature "github.com/civicworks/civicbridge/internal/app/features/issues"
	notificationsfeature "github.com/civicworks/civicbridge/internal/app/features/notifications"
	organizationsfeature "github.com/civicworks/civicbridge/internal/app/features/organizations"
	collabstore "github.com/civicworks/civicbridge/internal/app/store/collabs"
	donationstore "github.com/civicworks/civicbridge/internal/app/store/donations"
	eventstore "github.com/civicworks/civicbridge/internal/app/store/events"
	issuestore "github.com/civicworks/civicbridge/internal/app/store/issues"
	notificationstore "github.com/civicworks/civicbridge/internal/app/store/notifications"
	organizationstore "github.com/civicworks/civicbridge/internal/app/store/organizations"
	"github.com/civicworks/civicbridge/internal/app/workflow/collaboration"
	"github.com/civicworks/civicbridge/internal/app/workflow/registration"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and the Startup hook have completed, so the notification bus is
// already running. Stores are built once here, the two workflow
// engines on top of them, and each feature router mounted under its
// path prefix.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	orgs := organizationstore.New(db)
	issues := issuestore.New(db)
	events := eventstore.New(db)
	collabs := collabstore.New(db)
	notifications := notificationstore.New(db)
	donations := donationstore.New(db)

	regEngine := registration.New(events, notifyBus, logger)
	collabEngine := collaboration.New(collabs, issues, notifyBus, logger)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	orgsHandler := organizationsfeature.NewHandler(orgs, logger)
	r.Mount("/organizations", organizationsfeature.Routes(orgsHandler))

	issuesHandler := issuesfeature.NewHandler(issues, collabEngine, db, logger)
	r.Mount("/issues", issuesfeature.Routes(issuesHandler))

	eventsHandler := eventsfeature.NewHandler(events, regEngine, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler))

	collabsHandler := collaborationsfeature.NewHandler(collabs, collabEngine, logger)
	r.Mount("/collaborations", collaborationsfeature.Routes(collabsHandler))

	notificationsHandler := notificationsfeature.NewHandler(notifications, logger)
	r.Mount("/notifications", notificationsfeature.Routes(notificationsHandler))

	donationsHandler := donationsfeature.NewHandler(donations, orgs, db, logger)
	r.Mount("/donations", donationsfeature.Routes(donationsHandler))

	return r, nil
}
