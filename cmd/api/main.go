package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"canteen/internal/config"
	"canteen/internal/handler"
	"canteen/internal/infra/db"
	infraRepo "canteen/internal/infra/repository"
	"canteen/internal/server"
	"canteen/internal/usecase"
	auth "canteen/internal/usecase/auth_usecase"
	"canteen/internal/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(gormDB); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	menuRepo := infraRepo.NewMenuItemGormRepository(gormDB)
	cartRepo := infraRepo.NewCartLineGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	feedbackRepo := infraRepo.NewFeedbackGormRepository(gormDB)
	salesRepo := infraRepo.NewSalesGormRepository(gormDB)
	noticeRepo := infraRepo.NewNoticeGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	clock := auth.SystemClock{}
	credValidator := validator.NewAuthValidator()

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := auth.NewJWTIssuer(cfg.JWTSecret, cfg.JWTTTL)

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, credValidator, hasher, clock)
	loginUC := auth.NewLoginUsecase(userRepo, credValidator, verifier, issuer, clock)
	profileUC := auth.NewProfileUsecase(userRepo, credValidator, hasher, verifier)
	userAdminUC := auth.NewUserAdminUsecase(userRepo, auditRepo)

	catalogUC := usecase.NewCatalogUsecase(txm, menuRepo, feedbackRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, menuRepo)
	checkoutUC := usecase.NewCheckoutUsecase(txm)
	orderUC := usecase.NewOrderUsecase(txm, orderRepo)
	adminOrderUC := usecase.NewAdminOrderUsecase(txm, orderRepo)
	feedbackUC := usecase.NewFeedbackUsecase(feedbackRepo, menuRepo)
	salesUC := usecase.NewSalesUsecase(salesRepo, menuRepo, userRepo, feedbackRepo)
	noticeUC := usecase.NewNoticeUsecase(noticeRepo)
	auditUC := usecase.NewAuditLogUsecase(auditRepo)

	//Handler生成
	e := server.New(cfg, userRepo, server.Handlers{
		Auth:       handler.NewAuthHandler(registerUC, loginUC),
		Menu:       handler.NewMenuHandler(catalogUC, feedbackUC),
		Cart:       handler.NewCartHandler(cartUC, checkoutUC),
		Order:      handler.NewOrderHandler(orderUC),
		Feedback:   handler.NewFeedbackHandler(feedbackUC),
		Profile:    handler.NewProfileHandler(profileUC, salesUC),
		Notice:     handler.NewNoticeHandler(noticeUC),
		AdminOrder: handler.NewAdminOrderHandler(adminOrderUC),
		AdminStats: handler.NewAdminStatsHandler(salesUC),
		AdminUser:  handler.NewAdminUserHandler(userAdminUC, auditUC),
	})

	//Server起動
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("listening on %s (env=%s)", cfg.Addr(), cfg.GoEnv)
	if err := server.Start(ctx, e, cfg.Addr()); err != nil {
		log.Fatalf("server: %v", err)
	}
}
