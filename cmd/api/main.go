package main

import (
	"fmt"
	"net/http"

	"github.com/tracklite/timeclock-backend-go/internal/config"
	appHTTP "github.com/tracklite/timeclock-backend-go/internal/handler/http"
	"github.com/tracklite/timeclock-backend-go/internal/pkg/authz"
	"github.com/tracklite/timeclock-backend-go/internal/pkg/database"
	"github.com/tracklite/timeclock-backend-go/internal/pkg/jwt"
	"github.com/tracklite/timeclock-backend-go/internal/pkg/oauth"
	"github.com/tracklite/timeclock-backend-go/internal/pkg/slack"
	"github.com/tracklite/timeclock-backend-go/internal/pkg/sse"
	"github.com/tracklite/timeclock-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/tracklite/timeclock-backend-go/internal/service/auth"
	serviceReport "github.com/tracklite/timeclock-backend-go/internal/service/report"
	serviceTimeEntry "github.com/tracklite/timeclock-backend-go/internal/service/timeentry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	entryRepo := postgresql.NewEntryRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	adminPolicy := authz.NewAllowListPolicy(cfg.Admin.UserIDs)
	hub := sse.NewHub()
	slackWebhook := slack.NewWebhookClient(cfg.Slack.WebhookURL)

	authService := serviceAuth.NewAuthService(userRepo, JWTService, JWTRepository, adminPolicy)
	entryService := serviceTimeEntry.NewEntryService(db, entryRepo, adminPolicy, hub)
	reportService := serviceReport.NewReportService(entryRepo, adminPolicy)

	authHandler := appHTTP.NewAuthHandler(JWTService, authService, GoogleService, cfg.App.FrontendURL)
	timeEntryHandler := appHTTP.NewTimeEntryHandler(entryService, JWTService, hub)
	reportHandler := appHTTP.NewReportHandler(reportService)
	notifyHandler := appHTTP.NewNotifyHandler(slackWebhook, cfg.Slack.AllowedOrigins)

	router := appHTTP.NewRouter(
		JWTService,
		cfg.App.FrontendURL,
		authHandler,
		timeEntryHandler,
		reportHandler,
		notifyHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
