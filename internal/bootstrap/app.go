package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Tharakax/FarmNex-sub002/internal/config"
	"github.com/Tharakax/FarmNex-sub002/internal/database"
	"github.com/Tharakax/FarmNex-sub002/internal/handler"
	"github.com/Tharakax/FarmNex-sub002/internal/logger"
	"github.com/Tharakax/FarmNex-sub002/internal/repository"
	"github.com/Tharakax/FarmNex-sub002/internal/search"
	"github.com/Tharakax/FarmNex-sub002/internal/service"
	"github.com/Tharakax/FarmNex-sub002/pkg/googlecloud"
	"github.com/Tharakax/FarmNex-sub002/pkg/reportexport"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type App struct {
	Echo *echo.Echo
	DB   *sql.DB
	GCP  *googlecloud.Client
}

func NewApp() *App {
	return &App{
		Echo: echo.New(),
	}
}

func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}
	cfg := config.DefaultEnvConfig

	logger.InitLogging(cfg.LOG_FILE_PATH, cfg.LOG_LEVEL)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	deps := service.ReportServiceDeps{Currency: cfg.CURRENCY_PREFIX}

	// Data sources are optional; without them only POST /export works.
	if cfg.DB_HOST != "" {
		db, err := database.NewPostgresDB(ctx, database.Config{
			Host:            cfg.DB_HOST,
			Port:            cfg.DB_PORT,
			User:            cfg.DB_USER,
			Password:        cfg.DB_PASSWORD,
			DBName:          cfg.DB_NAME,
			SSLMode:         cfg.DB_SSL_MODE,
			MaxOpenConns:    cfg.DB_MAX_OPEN_CONNS,
			MaxIdleConns:    cfg.DB_MAX_IDLE_CONNS,
			ConnMaxLifetime: cfg.DB_CONN_MAX_LIFETIME,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		a.DB = db
		deps.Repo = repository.NewReportRepository(db)
	} else {
		logger.WarnLog(ctx, "DB_HOST not set, preset reports are disabled")
	}

	if cfg.ES_URL != "" {
		es, err := search.NewElasticClient(cfg.ES_URL)
		if err != nil {
			return err
		}
		deps.Searcher = search.NewProductSearcher(es, cfg.ES_PRODUCT_INDEX)
	}

	if cfg.GCP_PROJECT_ID != "" {
		gcpClient, err := googlecloud.NewClient(ctx, cfg.GCP_PROJECT_ID)
		if err != nil {
			// Export history is not worth failing startup over.
			logger.ErrorLog(ctx, "failed to initialize GCP client: %v", err)
		} else {
			a.GCP = gcpClient
			deps.Audit = gcpClient
		}
	}

	catalog := reportexport.NewCatalog()
	if cfg.REPORT_CONFIG_PATH != "" {
		if err := catalog.LoadFile(cfg.REPORT_CONFIG_PATH); err != nil {
			return fmt.Errorf("failed to load report presets: %w", err)
		}
	}
	deps.Catalog = catalog

	deps.Exporter = reportexport.NewExporter(
		reportexport.WithLogger(logger.Get()),
		reportexport.WithLayout(cfg.PDF_LAYOUT),
		reportexport.WithImageWorkers(cfg.IMAGE_WORKERS),
	)

	exportHandler := handler.NewExportHandler(service.NewReportService(deps), cfg.CURRENCY_PREFIX)

	a.RegisterMiddlewares()
	a.RegisterRoutes(exportHandler)

	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.RequestID())
	a.Echo.Use(requestLogContext)
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

// requestLogContext copies the request id into the request context so
// logger calls made downstream carry it.
func requestLogContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Response().Header().Get(echo.HeaderXRequestID)
		if id != "" {
			req := c.Request()
			c.SetRequest(req.WithContext(logger.WithRequestID(req.Context(), id)))
		}
		return next(c)
	}
}

func (a *App) RegisterRoutes(exportHandler *handler.ExportHandler) {
	exportGroup := a.Echo.Group("/export")
	exportGroup.GET("/presets", exportHandler.ListPresetsHandler)
	exportGroup.GET("/history", exportHandler.HistoryHandler)
	exportGroup.POST("/:format", exportHandler.ExportRowsHandler)

	reportGroup := a.Echo.Group("/reports")
	reportGroup.GET("/search/:format", exportHandler.ExportSearchHandler)
	reportGroup.GET("/:preset/:format", exportHandler.ExportPresetHandler)
}

func (a *App) Run() error {
	if a.DB != nil {
		defer a.DB.Close()
	}
	if a.GCP != nil {
		defer a.GCP.Close()
	}
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}
