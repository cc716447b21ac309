package main

import (
	"context"
	"os"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-xray-sdk-go/xray"

	adaptermiddleware "dashboard-rbac/internal/adapters/http/middleware"
	adapterlogger "dashboard-rbac/internal/adapters/logger"
	"dashboard-rbac/internal/application"
	"dashboard-rbac/internal/infrastructure/auth"
	"dashboard-rbac/internal/infrastructure/config"
	"dashboard-rbac/internal/infrastructure/dynamodb"
	"dashboard-rbac/internal/infrastructure/email"
	"dashboard-rbac/internal/infrastructure/navigation"
	httpiface "dashboard-rbac/internal/interfaces/http"
	platformlambda "dashboard-rbac/internal/platform/lambda"
	"dashboard-rbac/internal/ports"
)

func main() {
	logger := adapterlogger.New()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Error(ctx, "configuration error", "error", err)
		os.Exit(1)
	}
	xray.Configure(xray.Config{LogLevel: "error"})

	ddbClient, err := dynamodb.NewClient(ctx, cfg.Region, cfg.TableName)
	if err != nil {
		logger.Error(ctx, "failed to initialize dynamodb client", "error", err)
		os.Exit(1)
	}
	roleRepo := dynamodb.NewRoleRepository(ddbClient)
	resourceRepo := dynamodb.NewResourceRepository(ddbClient)
	verificationRepo := dynamodb.NewVerificationRepository(ddbClient)

	navProvider := navigation.NewStaticProvider(nil)
	if cfg.NavSchemaFile != "" {
		navProvider, err = navigation.NewProviderFromFile(cfg.NavSchemaFile)
		if err != nil {
			logger.Error(ctx, "failed to load navigation schema", "error", err)
			os.Exit(1)
		}
	}

	var mailer ports.EmailSender
	if cfg.EmailBackend == "sendgrid" {
		mailer = email.NewSendgridSender(cfg.SendgridAPIKey, cfg.DefaultFromName, cfg.DefaultFromEmail, cfg.AppName)
	} else {
		mailer = email.NewConsoleSender(logger)
	}

	tokens, err := auth.NewJWTIssuer(cfg.SecretKey, cfg.TokenTTL)
	if err != nil {
		logger.Error(ctx, "failed to initialize token issuer", "error", err)
		os.Exit(1)
	}

	roleSvc := application.NewRoleService(roleRepo, navProvider)
	resourceSvc := application.NewResourceService(resourceRepo)
	verificationSvc := application.NewVerificationService(verificationRepo, mailer, tokens, cfg.CodeTTL)

	authMode, err := adaptermiddleware.ParseAuthMode(cfg.AuthMode)
	if err != nil {
		logger.Error(ctx, "invalid auth mode", "error", err)
		os.Exit(1)
	}
	authMiddleware, err := adaptermiddleware.AuthMiddleware(authMode, cfg.APIKey, tokens)
	if err != nil {
		logger.Error(ctx, "failed to initialize auth middleware", "error", err)
		os.Exit(1)
	}
	mw := httpiface.Middleware{
		Auth:          authMiddleware,
		XRay:          adaptermiddleware.XRayMiddleware("dashboard-rbac-http"),
		RequestLogger: adaptermiddleware.RequestLogger(logger),
	}

	e := httpiface.NewRouter(
		httpiface.NewRolesHandler(roleSvc),
		httpiface.NewResourcesHandler(resourceSvc),
		httpiface.NewNavigationHandler(navProvider),
		httpiface.NewVerificationHandler(verificationSvc),
		mw,
	)
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		logger.Info(ctx, "starting lambda handler")
		awslambda.Start(platformlambda.NewLambdaHandler(e))
		return
	}
	logger.Info(ctx, "starting http server", "port", cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
