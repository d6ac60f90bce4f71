package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	awsbedrock "github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	awslogs "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"workshop-sidekick/internal/content"
	"workshop-sidekick/internal/integrations/bedrock"
	"workshop-sidekick/internal/integrations/notify"
	"workshop-sidekick/internal/integrations/paramstore"
	"workshop-sidekick/internal/repository"
	"workshop-sidekick/internal/server"
	"workshop-sidekick/internal/usecase"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "err", err)
	}
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// ---- Configuration (read only here) ----
	port := envStr("PORT", "8000")
	activityTable := envStr("ACTIVITY_TABLE", "workshop-sidekick-engagement")
	logGroup := envStr("ENGAGEMENT_LOG_GROUP", "/aws/workshop-sidekick/engagement")
	modelID := envStr("BEDROCK_MODEL_ID", bedrock.DefaultModelID)
	paramPrefix := os.Getenv("PARAM_PREFIX")
	maxTokens := envInt("MAX_TOKENS", 1000)
	healthCheckBedrock := envBool("HEALTH_CHECK_BEDROCK", false)

	// ---- AWS SDK config ----
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		slog.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}

	// ---- Stores ----
	primary, err := repository.NewDynamoStore(awsdynamodb.NewFromConfig(cfg), activityTable)
	if err != nil {
		slog.Error("failed to create activity store", "err", err)
		os.Exit(1)
	}
	fallback, err := repository.NewLogStore(awslogs.NewFromConfig(cfg), logGroup)
	if err != nil {
		slog.Error("failed to create fallback store", "err", err)
		os.Exit(1)
	}

	// ---- Integrations ----
	llm, err := bedrock.New(awsbedrock.NewFromConfig(cfg), modelID)
	if err != nil {
		slog.Error("failed to create bedrock client", "err", err)
		os.Exit(1)
	}
	notifier, err := notify.New(awssns.NewFromConfig(cfg))
	if err != nil {
		slog.Error("failed to create notifier", "err", err)
		os.Exit(1)
	}

	var params usecase.ParamGetter
	if paramPrefix != "" {
		ps, err := paramstore.New(awsssm.NewFromConfig(cfg))
		if err != nil {
			slog.Error("failed to create paramstore client", "err", err)
			os.Exit(1)
		}
		params = ps
	}

	// ---- Services ----
	tracker, err := usecase.NewTracker(primary, fallback)
	if err != nil {
		slog.Error("failed to create tracker", "err", err)
		os.Exit(1)
	}
	roster, err := usecase.NewRoster(primary)
	if err != nil {
		slog.Error("failed to create roster", "err", err)
		os.Exit(1)
	}
	analytics, err := usecase.NewAnalytics(primary)
	if err != nil {
		slog.Error("failed to create analytics", "err", err)
		os.Exit(1)
	}
	stats, err := usecase.NewStats(roster, analytics, primary.Name())
	if err != nil {
		slog.Error("failed to create stats service", "err", err)
		os.Exit(1)
	}

	catalog := content.NewDefaultCatalog()
	chat, err := usecase.NewChatService(llm, tracker, catalog, params, paramPrefix, maxTokens)
	if err != nil {
		slog.Error("failed to create chat service", "err", err)
		os.Exit(1)
	}

	var pinger server.Pinger
	if healthCheckBedrock {
		pinger = llm
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: server.New(chat, roster, analytics, stats, notifier, pinger).Router(),
	}

	go func() {
		slog.Info("workshop sidekick listening", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "err", err)
		os.Exit(1)
	}
}

func envStr(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
