// Command api runs the ECG portal backend. Inside AWS Lambda it serves API Gateway
// events through pkg/lambdaproxy; anywhere else it runs a plain HTTP server.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/cardmia/ecgportal/handler"
	"github.com/cardmia/ecgportal/pkg/config"
	"github.com/cardmia/ecgportal/pkg/email"
	"github.com/cardmia/ecgportal/pkg/httpserver"
	"github.com/cardmia/ecgportal/pkg/lambdaproxy"
	"github.com/cardmia/ecgportal/pkg/logger"
	"github.com/cardmia/ecgportal/pkg/requestid"
	"github.com/cardmia/ecgportal/pkg/storage"
	"github.com/cardmia/ecgportal/svc/reports"
)

type appConfig struct {
	Logger  logger.Config
	Storage storage.Config
	Email   email.Config
	HTTP    httpserver.Config
	CORS    handler.CORSConfig

	MaxUploadBytes int64         `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`
	HealthTimeout  time.Duration `env:"HEALTH_CHECK_TIMEOUT" envDefault:"3s"`
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.NewFromConfig(cfg.Logger, logger.WithContextExtractors(requestid.LogExtractor()))
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("api stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	mailer, err := email.New(cfg.Email)
	if err != nil {
		return err
	}

	svc := reports.NewService(store, mailer,
		reports.WithLogger(log),
		reports.WithInvitationLinks(cfg.Email.PortalURL, cfg.Email.SupportEmail),
	)
	router := newRouter(cfg, log, store, svc)

	if config.InLambda() {
		log.InfoContext(ctx, "starting lambda handler",
			slog.String("storage", cfg.Storage.Driver),
			slog.String("email", cfg.Email.Driver),
		)
		lambda.StartWithOptions(lambdaproxy.New(router, lambdaproxy.WithLogger(log)).Handle,
			lambda.WithContext(ctx))
		return nil
	}

	return httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, router)
}
