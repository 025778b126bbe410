package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sautiai-dashboard/internal/audit"
	"sautiai-dashboard/internal/auth"
	"sautiai-dashboard/internal/campaign"
	"sautiai-dashboard/internal/config"
	"sautiai-dashboard/internal/credits"
	"sautiai-dashboard/internal/httpapi"
	"sautiai-dashboard/internal/livecall"
	"sautiai-dashboard/internal/playground"
	"sautiai-dashboard/internal/prefs"
	"sautiai-dashboard/internal/pricing"
	"sautiai-dashboard/internal/reporting"
	"sautiai-dashboard/internal/scheduler"
	"sautiai-dashboard/internal/upstream"
	"sautiai-dashboard/pkg/logger"
	"sautiai-dashboard/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	core, err := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.RequestTimeout)
	if err != nil {
		log.Error("upstream client init failed", "err", err)
		os.Exit(1)
	}

	// Services over local storage.
	creditsSvc := credits.NewService(db)
	pricingSvc := pricing.NewService(pricing.NewPostgresRepository(db))
	schedulerSvc := scheduler.NewService(scheduler.NewPostgresRepository(db))
	prefsSvc := prefs.NewService(prefs.NewRedisStore(rdb))
	auditSvc := audit.NewService(audit.NewPostgresRepository(db))
	reportingSvc := reporting.NewService(&reporting.LiveRepo{Calls: core, DB: db})

	// Campaign orchestration. One dispatcher per channel; message channels
	// debit one credit per item before handing off to the core API.
	registry := campaign.NewRegistry()
	registry.Register(campaign.ChannelVoice, campaign.VoiceDispatcher{
		Gateway:     core,
		StatusPoll:  cfg.Campaign.VoiceStatusPoll,
		CallTimeout: cfg.Campaign.VoiceCallTimeout,
	})
	for _, ch := range []campaign.Channel{campaign.ChannelSMS, campaign.ChannelEmail, campaign.ChannelWhatsApp} {
		registry.Register(ch, campaign.MessageDispatcher{
			Channel: ch,
			Gateway: core,
			Credits: creditsSvc,
		})
	}
	campaignMgr := campaign.NewManager(
		registry,
		core,
		campaign.NewRedisGate(rdb, 0),
		pricingSvc,
		log,
	)

	// Live transcript monitoring and the voice playground bridge.
	monitor := livecall.NewMonitor(core, cfg.Campaign.LiveTranscriptPoll, log)
	liveWS := &livecall.WSHandler{Monitor: monitor, Log: log}
	playWS := &playground.WSHandler{
		Backend: playground.NewWSBackend(cfg.Upstream.PlaygroundURL, log),
		Log:     log,
	}

	sessions := auth.NewSessionService(core, authManager)

	handlers := httpapi.Handlers{
		Sessions:   sessions,
		Upstream:   core,
		Campaigns:  campaignMgr,
		Credits:    creditsSvc,
		Pricing:    pricingSvc,
		Scheduler:  schedulerSvc,
		Prefs:      prefsSvc,
		Reporting:  reportingSvc,
		Audit:      auditSvc,
		LiveCalls:  liveWS,
		Playground: playWS,
	}

	webhook := upstream.CallStatusWebhookHandler{
		Secret: cfg.Upstream.WebhookSecret,
		Sink:   monitor,
	}

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	registerRoutes(r, handlers, auth.RequireAccessToken(authManager), webhook)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}

	_ = logger.ShutdownFlush(shutdownCtx, 2*time.Second)
}
