// seed は管理者アカウントとサンプルデータを作る。何度実行しても重複しない。
package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"canteen/internal/config"
	"canteen/internal/domain/model"
	"canteen/internal/infra/db"
	infraRepo "canteen/internal/infra/repository"
	"canteen/internal/repository"
	"canteen/internal/usecase"
	auth "canteen/internal/usecase/auth_usecase"
	"canteen/internal/validator"

	"github.com/shopspring/decimal"
)

type sampleItem struct {
	name        string
	description string
	price       string
	shift       model.Shift
}

var sampleMenu = []sampleItem{
	{"Pancakes", "Fluffy breakfast pancakes", "5.99", model.ShiftBreakfast},
	{"Scrambled Eggs", "Fresh scrambled eggs", "4.50", model.ShiftBreakfast},
	{"Chicken Curry", "Spicy chicken curry with rice", "12.99", model.ShiftLunch},
	{"Grilled Fish", "Fresh grilled fish with vegetables", "15.99", model.ShiftLunch},
	{"Beef Steak", "Premium beef steak", "18.99", model.ShiftDinner},
	{"Pasta Carbonara", "Creamy pasta with bacon", "11.99", model.ShiftDinner},
}

var sampleUsers = []string{"john_doe", "jane_smith"}

const samplePassword = "password123"

func main() {
	adminUser := flag.String("admin-user", "admin", "admin username")
	adminPass := flag.String("admin-password", "admin123", "admin password")
	withSample := flag.Bool("sample", true, "also create sample users, menu and orders")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()

	userRepo := infraRepo.NewUserGormRepository(gormDB)
	menuRepo := infraRepo.NewMenuItemGormRepository(gormDB)
	cartRepo := infraRepo.NewCartLineGormRepository(gormDB)
	salesRepo := infraRepo.NewSalesGormRepository(gormDB)
	feedbackRepo := infraRepo.NewFeedbackGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	clock := auth.SystemClock{}
	credValidator := validator.NewAuthValidator()
	hasher := auth.NewBcryptPasswordHasher(12)

	s := seeder{
		createAdmin: auth.NewCreateAdminUsecase(userRepo, credValidator, hasher, clock),
		register:    auth.NewRegisterUserUsecase(userRepo, credValidator, hasher, clock),
		users:       userRepo,
		menuItems:   menuRepo,
		sales:       salesRepo,
		catalog:     usecase.NewCatalogUsecase(txm, menuRepo, feedbackRepo),
		cart:        usecase.NewCartUsecase(cartRepo, menuRepo),
		checkout:    usecase.NewCheckoutUsecase(txm),
		adminOrders: usecase.NewAdminOrderUsecase(txm, orderRepo),
	}

	admin, created, err := s.createAdmin.Execute(ctx, *adminUser, *adminPass)
	if err != nil {
		log.Fatalf("create admin: %v", err)
	}
	if created {
		log.Printf("admin %q created", admin.Username)
	} else {
		log.Printf("admin %q already exists", admin.Username)
	}

	if !*withSample {
		return
	}
	if err := s.sampleData(ctx, admin.ID); err != nil {
		log.Fatalf("sample data: %v", err)
	}
	log.Printf("sample data ready (users: %v / %s)", sampleUsers, samplePassword)
}

type seeder struct {
	createAdmin *auth.CreateAdminUsecase
	register    *auth.RegisterUserUsecase
	users       repository.UserRepository
	menuItems   repository.MenuItemRepository
	sales       repository.SalesRepository
	catalog     *usecase.CatalogUsecase
	cart        *usecase.CartUsecase
	checkout    *usecase.CheckoutUsecase
	adminOrders *usecase.AdminOrderUsecase
}

// 注文は実際のカート→チェックアウトを通して作る
func (s seeder) sampleData(ctx context.Context, adminID int64) error {
	userIDs := make([]int64, 0, len(sampleUsers))
	for _, name := range sampleUsers {
		u, err := s.register.Execute(ctx, auth.RegisterUserInput{
			Username:        name,
			Password:        samplePassword,
			ConfirmPassword: samplePassword,
		})
		if errors.Is(err, usecase.ErrConflict) {
			u, err = s.users.FindByUsername(ctx, name)
		}
		if err != nil {
			return err
		}
		userIDs = append(userIDs, u.ID)
	}

	n, err := s.menuItems.Count(ctx)
	if err != nil {
		return err
	}
	byName := make(map[string]int64, len(sampleMenu))
	if n == 0 {
		for _, it := range sampleMenu {
			m, err := s.catalog.CreateItem(ctx, adminID, usecase.MenuItemInput{
				Name:        it.name,
				Description: it.description,
				Price:       decimal.RequireFromString(it.price),
				Shift:       string(it.shift),
				Available:   true,
			})
			if err != nil {
				return err
			}
			byName[m.Name] = m.ID
		}
		log.Printf("%d menu items created", len(sampleMenu))
	}

	counts, err := s.sales.CountOrdersByStatus(ctx, nil)
	if err != nil {
		return err
	}
	var orders int64
	for _, c := range counts {
		orders += c
	}
	// 既存メニューに手を入れた環境では注文を作らない
	if orders > 0 || len(byName) == 0 {
		return nil
	}

	// john: 朝食+夕食 → 完了 / jane: 昼食 → 受付中
	john, jane := userIDs[0], userIDs[1]
	if err := s.order(ctx, adminID, john, model.OrderStatusCompleted, byName, "Pancakes", "Scrambled Eggs", "Beef Steak", "Pasta Carbonara"); err != nil {
		return err
	}
	if err := s.order(ctx, adminID, jane, model.OrderStatusPending, byName, "Chicken Curry"); err != nil {
		return err
	}
	log.Printf("sample orders created")
	return nil
}

func (s seeder) order(ctx context.Context, adminID, userID int64, status model.OrderStatus, byName map[string]int64, names ...string) error {
	for _, name := range names {
		if _, err := s.cart.AddToCart(ctx, userID, usecase.AddToCartInput{MenuItemID: byName[name], Quantity: 1}); err != nil {
			return err
		}
	}
	out, err := s.checkout.Checkout(ctx, userID)
	if err != nil {
		return err
	}
	if status == model.OrderStatusPending {
		return nil
	}
	for _, id := range out.OrderIDs {
		if err := s.adminOrders.SetStatus(ctx, adminID, id, string(status)); err != nil {
			return err
		}
	}
	return nil
}
