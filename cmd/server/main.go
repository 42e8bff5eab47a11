package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/blob"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/handler"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/httpserver"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/mqhandler"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/repository"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/access"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/alert"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/auth"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/invite"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/lifecycle"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/notify"
	"github.com/DiegoSucharczuk/renovation-sub000/pkg/config"
	"github.com/DiegoSucharczuk/renovation-sub000/pkg/db"
	"github.com/DiegoSucharczuk/renovation-sub000/pkg/logger"
	"github.com/DiegoSucharczuk/renovation-sub000/pkg/mq"
	"github.com/DiegoSucharczuk/renovation-sub000/pkg/outbox"
	"github.com/DiegoSucharczuk/renovation-sub000/pkg/redis"
	"github.com/DiegoSucharczuk/renovation-sub000/pkg/util"
)

func main() {
	cfg, err := config.Load(config.GetConfigEnv(), config.GetEnv("CONFIG_DIR", "config"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog := logger.NewLogger()
	defer zlog.Sync()

	if err := db.Migrate(cfg.DB, config.GetEnv("MIGRATIONS_DIR", "migrations"), zlog); err != nil {
		zlog.Fatal("Migration failed", zap.Error(err))
	}

	pool, err := db.NewConnection(cfg.DB, zlog)
	if err != nil {
		zlog.Fatal("DB initialization failed", zap.Error(err))
	}
	defer pool.Close()

	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		zlog.Fatal("MQ publisher initialization failed", zap.Error(err))
	}
	defer publisher.Close()

	rdb := redis.NewRedisClient(cfg.Redis)
	defer rdb.Close()

	// Repositories
	userRepo := repository.NewUserRepository(pool, zlog)
	projectRepo := repository.NewProjectRepository(pool, zlog)
	roomRepo := repository.NewRoomRepository(pool, zlog)
	taskRepo := repository.NewTaskRepository(pool, zlog)
	vendorRepo := repository.NewVendorRepository(pool, zlog)
	paymentRepo := repository.NewPaymentRepository(pool, zlog)
	meetingRepo := repository.NewMeetingRepository(pool, zlog)
	memberRepo := repository.NewMemberRepository(pool, zlog)
	invitationRepo := repository.NewInvitationRepository(pool, zlog)
	contactRepo := repository.NewContactRepository(pool, zlog)

	outboxRepo := outbox.NewRepository(pool)
	recorder := outbox.NewRecorder(pool, outboxRepo)

	// Services
	resolver := access.NewResolver(projectRepo, memberRepo, userRepo, cfg.App.SuperAdminEmails, zlog)
	lifecycleMgr := lifecycle.NewManager(lifecycle.Stores{
		Tasks:    taskRepo,
		Payments: paymentRepo,
		Rooms:    roomRepo,
		Vendors:  vendorRepo,
		Projects: projectRepo,
		Members:  memberRepo,
		Users:    userRepo,

		RoomPurger:       roomRepo,
		TaskPurger:       taskRepo,
		VendorPurger:     vendorRepo,
		PaymentPurger:    paymentRepo,
		MeetingPurger:    meetingRepo,
		ContactPurger:    contactRepo,
		MemberPurger:     memberRepo,
		InvitationPurger: invitationRepo,
	}, recorder, zlog)
	inviteSvc := invite.NewService(invitationRepo, memberRepo, userRepo, projectRepo, recorder, cfg.Server.BaseURL, zlog)
	authSvc := auth.NewService(userRepo, inviteSvc, cfg.JWT.Secret, zlog)

	blobStore := blob.NewPostgresStore(pool, cfg.Server.BaseURL, zlog)

	// Outbox dispatcher
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	dispatcher := outbox.NewDispatcher(outboxRepo, publisher, zlog)
	go dispatcher.Start(ctx)

	// Notification consumers
	emailSender := notify.SenderFor(notify.ChannelEmail, cfg.Notify.EmailWebhookURL, cfg.Notify.FromName, zlog)
	whatsappSender := notify.SenderFor(notify.ChannelWhatsApp, cfg.Notify.WhatsAppWebhookURL, cfg.Notify.FromName, zlog)
	deduper := util.NewDeduper(rdb, 24*time.Hour, zlog)

	notificationConsumer := startConsumer(cfg.MQ.URL, "notification_created_queue", "notification.created",
		mqhandler.NewNotificationCreatedHandler(emailSender, whatsappSender, zlog).Handle, zlog)
	defer notificationConsumer.Close()

	invitationConsumer := startConsumer(cfg.MQ.URL, "invitation_created_queue", "invitation.created",
		mqhandler.NewInvitationCreatedHandler(emailSender, zlog).Handle, zlog)
	defer invitationConsumer.Close()

	alertConsumer := startConsumer(cfg.MQ.URL, "alert_raised_queue", "alert.raised",
		mqhandler.NewAlertRaisedHandler(emailSender, deduper, zlog).Handle, zlog)
	defer alertConsumer.Close()

	// Periodic alert scan
	scanner := alert.NewScanner(projectRepo, taskRepo, paymentRepo, userRepo, publisher, zlog)
	if err := scanner.Start(cfg.App.AlertCronSpec); err != nil {
		zlog.Fatal("Alert scan scheduling failed", zap.Error(err))
	}
	defer scanner.Stop()

	// Handlers and router
	handlers := httpserver.Handlers{
		Auth:      handler.NewAuthHandler(authSvc, zlog),
		Projects:  handler.NewProjectHandler(projectRepo, resolver, lifecycleMgr, zlog),
		Rooms:     handler.NewRoomHandler(roomRepo, taskRepo, resolver, lifecycleMgr, zlog),
		Tasks:     handler.NewTaskHandler(taskRepo, resolver, lifecycleMgr, zlog),
		Vendors:   handler.NewVendorHandler(vendorRepo, paymentRepo, resolver, lifecycleMgr, zlog),
		Payments:  handler.NewPaymentHandler(paymentRepo, resolver, lifecycleMgr, zlog),
		Meetings:  handler.NewMeetingHandler(meetingRepo, resolver, zlog),
		Members:   handler.NewMemberHandler(memberRepo, userRepo, invitationRepo, resolver, inviteSvc, lifecycleMgr, zlog),
		Contacts:  handler.NewContactHandler(contactRepo, resolver, zlog),
		Dashboard: handler.NewDashboardHandler(projectRepo, roomRepo, taskRepo, vendorRepo, paymentRepo, resolver, zlog),
		Files:     handler.NewFileHandler(blobStore, zlog),
	}
	router := httpserver.NewRouter(handlers, cfg.JWT.Secret, zlog, pool, notificationConsumer)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		zlog.Info("HTTP server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server start failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("Shutting down")

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Graceful shutdown failed", zap.Error(err))
	}
}

func startConsumer(url, queue, routingKey string, h mq.MessageHandler, zlog *zap.Logger) *mq.Consumer {
	consumer, err := mq.NewConsumer(url, queue, routingKey, zlog)
	if err != nil {
		zlog.Fatal("MQ consumer initialization failed",
			zap.String("queue", queue),
			zap.Error(err),
		)
	}
	consumer.SetHandler(h)
	go func() {
		if err := consumer.StartConsuming(); err != nil {
			zlog.Fatal("consumer start failed",
				zap.String("queue", queue),
				zap.Error(err),
			)
		}
	}()
	return consumer
}
