// cmd/concierge/main.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"loan-concierge/internal/common/aws"
	"loan-concierge/internal/common/config"
	"loan-concierge/internal/common/database"
	"loan-concierge/internal/common/logger"
	"loan-concierge/internal/common/observability"
	"loan-concierge/internal/conversation"
	"loan-concierge/internal/crm"
	"loan-concierge/internal/intent"
	"loan-concierge/internal/models"
	"loan-concierge/internal/negotiation"
	"loan-concierge/internal/notify"
	"loan-concierge/internal/pipeline"
	"loan-concierge/internal/sanction"
	"loan-concierge/internal/session"
)

var speakerLabels = map[models.Speaker]string{
	models.SpeakerMaster:       "🤖 Master Agent",
	models.SpeakerSales:        "💼 Sales Agent",
	models.SpeakerVerification: "🪪 Verification Agent",
	models.SpeakerUnderwriting: "📊 Underwriting Agent",
	models.SpeakerSanction:     "📄 Sanction Desk",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()
	log := logger.NewZapAdapter(zapLogger)

	log.Info("starting loan concierge", map[string]interface{}{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Metrics.Address, mux); err != nil {
				zapLogger.Warn("metrics server stopped", zap.Error(err))
			}
		}()
	}

	store, cleanup, err := buildStore(cfg, log)
	if err != nil {
		zapLogger.Fatal("failed to initialize customer store", zap.Error(err))
	}
	defer cleanup()

	sessions, sessCleanup, err := buildSessionStore(ctx, cfg)
	if err != nil {
		zapLogger.Fatal("failed to initialize session store", zap.Error(err))
	}
	defer sessCleanup()

	var notifier pipeline.Notifier
	if cfg.Notifications.SMS.Enabled {
		snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLogger.Fatal("failed to initialize SNS client", zap.Error(err))
		}
		notifier = notify.NewSMSNotifier(snsClient, cfg.Notifications.SMS, log)
	}

	writer := sanction.NewWriter(cfg.Outputs.Dir)
	runner := pipeline.NewRunner(store, writer, notifier, obs, log)
	classifier := intent.NewKeywords()
	resolver := negotiation.NewResolver(classifier, log)
	engine := conversation.NewEngine(cfg.Policy, store, runner, resolver, classifier, obs, log)

	printPreview(store)
	runChatLoop(ctx, cfg, engine, sessions, log)

	log.Info("loan concierge stopped", nil)
}

func buildStore(cfg *config.Config, log logger.Logger) (crm.Store, func(), error) {
	switch cfg.Data.Backend {
	case "postgres":
		client, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, nil, err
		}
		return crm.NewPostgresStore(client.DB, log), func() { client.Close() }, nil
	default:
		store, err := crm.NewFileStore(cfg.Data.CustomersPath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}

func buildSessionStore(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	if cfg.Session.Backend == "redis" {
		client, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return nil, nil, err
		}
		if err := client.Ping(ctx); err != nil {
			client.Close()
			return nil, nil, err
		}
		return session.NewRedisStore(client.Client, cfg.SessionTTL()), func() { client.Close() }, nil
	}
	return session.NewMemoryStore(), func() {}, nil
}

// printPreview lists the customers the file-backed store knows about, so a
// demo user knows which phone numbers will verify.
func printPreview(store crm.Store) {
	fs, ok := store.(*crm.FileStore)
	if !ok {
		return
	}
	customers := fs.All()
	if len(customers) == 0 {
		return
	}
	fmt.Println("Known customers for this demo:")
	for _, c := range customers {
		fmt.Printf("  %s  %s (score %d, pre-approved ₹%d)\n", c.Phone, c.Name, c.CreditScore, c.PreApprovedLimit)
	}
	fmt.Println()
}

func runChatLoop(ctx context.Context, cfg *config.Config, engine *conversation.Engine, sessions session.Store, log logger.Logger) {
	sess := models.NewSession(uuid.NewString(), cfg.Policy.DefaultRate())
	if err := sessions.Put(ctx, sess); err != nil {
		log.Warn("failed to persist session", map[string]interface{}{"error": err.Error()})
	}

	printReply(engine.Greeting())
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		fmt.Print("You: ")
		if !scanner.Scan() {
			return
		}
		utterance := strings.TrimSpace(scanner.Text())
		if utterance == "" {
			continue
		}
		if strings.EqualFold(utterance, "quit") || strings.EqualFold(utterance, "exit") {
			printReply(models.Master("Thanks for stopping by. Take care!"))
			return
		}

		turnCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		outcomeBefore := sess.LatestOutcome
		replies := engine.HandleTurn(turnCtx, sess, utterance)
		cancel()

		sanctionSpoke := false
		for _, reply := range replies {
			printReply(reply)
			if reply.Speaker == models.SpeakerSanction {
				sanctionSpoke = true
			}
		}
		if outcome := sess.LatestOutcome; sanctionSpoke && outcome != nil && outcome.ArtifactPath != "" {
			if _, err := os.Stat(outcome.ArtifactPath); err == nil {
				fmt.Printf("    (sanction letter saved to %s)\n", outcome.ArtifactPath)
			}
		}
		if outcome := sess.LatestOutcome; outcome != nil && outcome != outcomeBefore && outcome.Status == models.StatusReject {
			fmt.Printf("    ⚠ Application declined: %s\n", outcome.Reason)
		}
		fmt.Println()

		if err := sessions.Put(ctx, sess); err != nil {
			log.Warn("failed to persist session", map[string]interface{}{"error": err.Error()})
		}
	}
}

func printReply(reply models.Reply) {
	label, ok := speakerLabels[reply.Speaker]
	if !ok {
		label = string(reply.Speaker)
	}
	fmt.Printf("%s: %s\n", label, reply.Text)
}
