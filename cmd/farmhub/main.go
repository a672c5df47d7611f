package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"farmhub/internal/config"
	"farmhub/internal/database"
	"farmhub/internal/handler"
	"farmhub/internal/metrics"
	"farmhub/internal/model"
	"farmhub/internal/mw"
	"farmhub/internal/service"
	"farmhub/internal/worker"
)

func main() {
	cfg := config.New()

	db, err := database.NewDB(cfg.DatabaseURI)
	if err != nil {
		slog.Error("failed to connect to DB", "error", err)
		os.Exit(1)
	}
	defer database.CloseDB(db)

	if err := database.InitSchema(db); err != nil {
		slog.Error("failed to init DB schema", "error", err)
		os.Exit(1)
	}

	// Services
	authSvc := service.NewAuthService(db)
	orderSvc := service.NewOrderService(db)
	tokenSvc := service.NewTokenService(db)
	subSvc := service.NewSubscriptionService(db)
	animalSvc := service.NewAnimalService(db)
	appointmentSvc := service.NewAppointmentService(db)
	vaccineSvc := service.NewVaccineService(db)
	taskSvc := service.NewTaskService(db)
	messageSvc := service.NewMessageService(db)

	// Worker
	reminderWorker := worker.NewReminderWorker(vaccineSvc, taskSvc, cfg.ReminderInterval)

	// Metrics
	srvMetrics := metrics.NewServerMetrics()

	// Router
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(srvMetrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public routes
	r.Post("/api/user/register", handler.RegisterHandler(authSvc, cfg.JWTSecret))
	r.Post("/api/user/login", handler.LoginHandler(authSvc, cfg.JWTSecret))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.JWTSecret))

		r.Post("/api/messages", handler.SendMessageHandler(messageSvc))
		r.Get("/api/messages", handler.InboxHandler(messageSvc))
		r.Post("/api/messages/read", handler.MarkInboxReadHandler(messageSvc))

		// Customers
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(model.RoleCustomer))

			r.Post("/api/orders", handler.CreateOrderHandler(orderSvc))
			r.Get("/api/orders", handler.ListCustomerOrdersHandler(orderSvc))
			r.Post("/api/orders/{id}/receive", handler.ReceiveOrderHandler(orderSvc))
			r.Post("/api/orders/{id}/cancel", handler.CustomerCancelOrderHandler(orderSvc))
			r.Post("/api/orders/{id}/pay", handler.PayOrderHandler(orderSvc))
		})

		// Farmers
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(model.RoleFarmer))

			r.Get("/api/farmer/orders", handler.ListFarmerOrdersHandler(orderSvc))
			r.Post("/api/farmer/orders/{id}/confirm", handler.ConfirmOrderHandler(orderSvc))
			r.Post("/api/farmer/orders/{id}/deliver", handler.DeliverOrderHandler(orderSvc))
			r.Post("/api/farmer/orders/{id}/cancel", handler.FarmerCancelOrderHandler(orderSvc))

			r.Get("/api/tokens/balance", handler.GetTokenBalanceHandler(tokenSvc))
			r.Post("/api/tokens/spend", handler.SpendTokensHandler(tokenSvc))
			r.Get("/api/tokens/spends", handler.ListTokenSpendsHandler(tokenSvc))

			r.Post("/api/subscriptions", handler.RequestSubscriptionHandler(subSvc))
			r.Get("/api/subscriptions", handler.ListSubscriptionsHandler(subSvc))

			r.Post("/api/animals", handler.RegisterAnimalHandler(animalSvc))
			r.Get("/api/animals", handler.ListAnimalsHandler(animalSvc))
			r.Get("/api/animals/{id}/vaccines", handler.ListVaccinesHandler(vaccineSvc, animalSvc))

			r.Post("/api/appointments", handler.BookAppointmentHandler(appointmentSvc, animalSvc))
			r.Get("/api/appointments", handler.ListFarmerAppointmentsHandler(appointmentSvc))
			r.Post("/api/appointments/{id}/cancel", handler.CancelAppointmentHandler(appointmentSvc))

			r.Post("/api/tasks", handler.CreateTaskHandler(taskSvc))
			r.Get("/api/tasks", handler.ListTasksHandler(taskSvc))
			r.Post("/api/tasks/{id}/complete", handler.CompleteTaskHandler(taskSvc))
		})

		// Vets
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(model.RoleVet))

			r.Get("/api/vet/appointments", handler.ListVetAppointmentsHandler(appointmentSvc))
			r.Post("/api/vet/appointments/{id}/complete", handler.CompleteAppointmentHandler(appointmentSvc))
			r.Post("/api/vet/vaccines", handler.RecordVaccineHandler(vaccineSvc))
		})

		// Admins
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(model.RoleAdmin))

			r.Get("/api/admin/subscriptions/pending", handler.ListPendingSubscriptionsHandler(subSvc))
			r.Post("/api/admin/subscriptions/{id}/approve", handler.ApproveSubscriptionHandler(subSvc))
			r.Post("/api/admin/subscriptions/{id}/reject", handler.RejectSubscriptionHandler(subSvc))
		})
	})

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go reminderWorker.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	slog.Info("starting server", "addr", cfg.RunAddress)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-quit
	slog.Info("shutting down...")

	cancel() // stop worker
	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}
