package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"docgate"
	"docgate/config"
	"docgate/internal/application/usecase"
	brokerRepository "docgate/internal/domain/repository/broker"
	dbRepository "docgate/internal/domain/repository/database"
	minioRepository "docgate/internal/domain/repository/minio"
	"docgate/internal/infrastructure/broker"
	"docgate/internal/infrastructure/database"
	"docgate/internal/infrastructure/engine"
	"docgate/internal/infrastructure/grpcserver"
	"docgate/internal/infrastructure/imaging"
	"docgate/internal/infrastructure/metrics"
	"docgate/internal/infrastructure/minio"
	"docgate/internal/infrastructure/ocr"
	"docgate/internal/infrastructure/pdf"
	"docgate/internal/infrastructure/workspace"
	"docgate/internal/presentation"
	"docgate/internal/presentation/handler"
	"docgate/internal/presentation/middleware"
	"docgate/pkg/logger"
)

const converterService = "docgate.Converter"

func HandleRun(args []string) {
	if len(args) < 3 {
		ExitOnError(errors.New("at least 1 arguments expected\nuse help command for more information"))
	}

	cfg, err := config.Load(args[2])
	if err != nil {
		ExitOnError(err)
	}

	logger.InitGlobalLogger(&cfg.Logger)

	logger.Info("running docgate", "version", docgate.StringVersion())

	recorder := metrics.New()
	office := engine.NewOffice(cfg.Engine)
	if err := office.Available(); err != nil {
		logger.Warn("conversion engine not found, conversions will fail", "binary", cfg.Engine.Binary, "err", err)
	}

	var (
		history       dbRepository.Writer
		historyLister dbRepository.Lister
		archiver      minioRepository.Archiver
		publisher     brokerRepository.Publisher
	)

	if cfg.DBConfig.Enabled {
		db, err := database.Connect(cfg.DBConfig)
		if err != nil {
			ExitOnError(err)
		}
		defer func() {
			if err := db.Stop(); err != nil {
				logger.Error("couldn't stop db instance", "err", err)
			}
		}()

		history = database.NewAuditWriter(db)
		historyLister = database.NewAuditLister(db)
	}

	if cfg.MinIOArchiver.Enabled {
		minIOClient, err := minio.New(&cfg.MinIOClient)
		if err != nil {
			ExitOnError(err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.MinIOArchiver.Timeout)*time.Millisecond)
		err = minIOClient.EnsureBucket(ctx, cfg.MinIOArchiver.Bucket)
		cancel()
		if err != nil {
			ExitOnError(err)
		}

		archiver = minio.NewArchiver(minIOClient.MinioClient, &cfg.MinIOArchiver)
	}

	if cfg.BrokerConfig.Enabled {
		brokerClient, err := broker.NewClient(cfg.BrokerConfig)
		if err != nil {
			ExitOnError(err)
		}
		defer brokerClient.Close()

		publisher = broker.NewPublisher(brokerClient, cfg.PublisherConfig)
	}

	validator := usecase.NewValidator(imaging.NewReader(cfg.Validator.MaxPixels), cfg.Validator, recorder, history)
	converter := usecase.NewConverter(cfg.Converter, workspace.NewManager(cfg.Workspace), office,
		pdf.NewInspector(), archiver, publisher, history, recorder)
	extractor := usecase.NewExtractor(ocr.NewTesseract(cfg.OCR), recorder, history)
	lister := usecase.NewLister(historyLister, cfg.HTTPServer.HistoryPageLimit)

	verifyHandler := handler.NewVerifyHandler(validator)
	convertHandler := handler.NewConvertHandler(converter)
	extractHandler := handler.NewExtractHandler(extractor)
	listHandler := handler.NewListHandler(lister)
	healthHandler := handler.NewHealthHandler(office.Available)

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: cfg.HTTPServer.AllowOrigins,
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderContentLength},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		ExposeHeaders: []string{
			echo.HeaderContentDisposition, presentation.PageCountHeader, presentation.ReasonTag,
		},
		MaxAge: 86400,
	}))
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Secure())
	e.Use(echoMiddleware.BodyLimit(cfg.HTTPServer.BodyLimit))
	e.Use(echoMiddleware.RateLimiter(echoMiddleware.NewRateLimiterMemoryStore(rate.Limit(cfg.HTTPServer.RateLimit))))

	e.GET("/health", healthHandler.HandleHealth)
	if cfg.HTTPServer.EnableMetrics {
		e.GET("/metrics", echo.WrapHandler(recorder.Handler()))
	}

	e.POST("/verificar-dpi", verifyHandler.HandleVerify)
	e.POST("/converter-pdf", convertHandler.HandleConvert, middleware.BearerToken())
	e.POST("/extrair-dados", extractHandler.HandleExtract)
	e.GET("/historico", listHandler.HandleList)

	var grpcServer *grpcserver.Server
	if cfg.GRPCServer.Enabled {
		grpcServer = grpcserver.New(cfg.GRPCServer)
		if err := grpcServer.Start(); err != nil {
			ExitOnError(err)
		}
		grpcServer.SetServing(converterService, office.Available() == nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(cfg.HTTPServer.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ExitOnError(fmt.Errorf("shutting down server: %w", err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTPServer.ShutdownTimeout)*time.Millisecond)
	defer cancel()

	var g errgroup.Group
	g.Go(func() error {
		return e.Shutdown(ctx)
	})
	if grpcServer != nil {
		g.Go(func() error {
			grpcServer.Stop(ctx)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("http server shutdown failed", "err", err)
	}
}
