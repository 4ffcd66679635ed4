package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpadp "vivim-backend/internal/adapter/http"
	ownmw "vivim-backend/internal/adapter/middleware"
	"vivim-backend/internal/adapter/notify"
	"vivim-backend/internal/adapter/repository/mysql"
	"vivim-backend/internal/config"
	"vivim-backend/internal/infrastructure/cache"
	"vivim-backend/internal/infrastructure/db"
	ucAttachment "vivim-backend/internal/usecase/attachment"
	ucDecision "vivim-backend/internal/usecase/decision"
	ucProposal "vivim-backend/internal/usecase/proposal"
	ucStage "vivim-backend/internal/usecase/stage"
)

func main() {
	_ = godotenv.Load()
	zlog := zerolog.New(os.Stderr).With().Timestamp().Logger()
	log.Logger = zlog

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		zlog.Fatal().Err(err).Msg("config")
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		zlog.Fatal().Err(err).Msg("mysql")
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		zlog.Fatal().Err(err).Msg("redis")
	}

	repos := mysql.NewRepos(gdb)
	tx := mysql.NewGormUoW(gdb)
	pub := notify.NewRedisPublisher(rdb, cfg.NotifyChannel, zlog)

	proposalUC := ucProposal.NewUsecase(repos, tx, pub)
	decisionUC := ucDecision.NewUsecase(repos, tx, pub)
	stageUC := ucStage.NewUsecase(repos, tx, pub)
	attachmentUC := ucAttachment.NewUsecase(repos, tx)

	h := httpadp.NewHandler()
	ph := httpadp.NewProposalHandler(proposalUC)
	dh := httpadp.NewDecisionHandler(decisionUC)
	sh := httpadp.NewStageHandler(stageUC)
	ah := httpadp.NewAttachmentHandler(attachmentUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	e.GET("/health", h.Health)

	// mutating routes go through the redis idempotency middleware
	idem := ownmw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	e.POST("/projects", sh.CreateProject, idem)
	e.GET("/projects/:project_id/progress", sh.ProjectProgress)
	e.GET("/projects/:project_id/current-stage", sh.CurrentStage)
	e.POST("/projects/:project_id/promote", sh.Promote, idem)
	e.POST("/projects/:project_id/stages", sh.CreateStage, idem)
	e.PATCH("/projects/:project_id/stages/:stage_id/position", sh.ReorderStage, idem)
	e.GET("/stages/:stage_id/progress", sh.StageProgress)
	e.DELETE("/stages/:stage_id", sh.DeleteStage, idem)

	e.POST("/stages/:stage_id/proposals", ph.CreateProposal, idem)
	e.GET("/proposals/:proposal_id", ph.GetProposal)
	e.PATCH("/proposals/:proposal_id", ph.EditProposal, idem)
	e.DELETE("/proposals/:proposal_id", ph.DeleteProposal, idem)
	e.POST("/proposals/:proposal_id/send", ph.SendProposal, idem)
	e.POST("/proposals/:proposal_id/resend", ph.ResendProposal, idem)
	e.PUT("/proposals/:proposal_id/approvers", ph.ReplaceApprovers, idem)
	e.GET("/proposals/:proposal_id/approvers", ph.ListApprovers)
	e.GET("/proposals/:proposal_id/summary", ph.StatusSummary)

	e.POST("/approvers/:approver_id/decisions", dh.RecordDecision, idem)
	e.GET("/approvers/:approver_id/status", dh.ApproverStatus)
	e.DELETE("/decisions/:decision_id", dh.DeleteDecision, idem)

	e.POST("/proposals/:proposal_id/attachments", ah.AddProposalAttachment, idem)
	e.GET("/proposals/:proposal_id/attachments", ah.ListProposalAttachments)
	e.POST("/decisions/:decision_id/attachments", ah.AddDecisionAttachment, idem)
	e.DELETE("/attachments/:attachment_id", ah.RemoveAttachment, idem)

	addr := ":" + cfg.AppPort
	go func() {
		zlog.Info().Str("addr", addr).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		zlog.Error().Err(err).Msg("shutdown")
	}
	zlog.Info().Msg("stopped")
}
