package main

import (
	"net/http"

	"github.com/finmate/finmate-server/internal/config"
	"github.com/finmate/finmate-server/internal/database"
	"github.com/finmate/finmate-server/internal/handlers"
	"github.com/finmate/finmate-server/internal/jobs"
	"github.com/finmate/finmate-server/internal/models"
	"github.com/finmate/finmate-server/internal/repository"
	"github.com/finmate/finmate-server/internal/scheduler"
	"github.com/finmate/finmate-server/internal/services"
	"github.com/finmate/finmate-server/pkg/ai"
	"github.com/finmate/finmate-server/pkg/logger"
	"github.com/finmate/finmate-server/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	logger.InitLogger()
	cfg := config.LoadConfig()

	db, err := database.ConnectDB(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Could not connect to the database")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	contributionRepo := repository.NewContributionRepository(db)
	incomeRepo := repository.NewIncomeRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	aiClient := ai.NewClient(ai.Config{
		BaseURL: cfg.AIBaseURL,
		APIKey:  cfg.AIAPIKey,
		Model:   cfg.AIModel,
	})
	notificationService := services.NewNotificationService(notificationRepo)
	userService := services.NewUserService(userRepo)
	goalService := services.NewGoalService(goalRepo, contributionRepo, notificationService)
	incomeService := services.NewIncomeService(incomeRepo)
	transactionService := services.NewTransactionService(transactionRepo)
	budgetService := services.NewBudgetService(incomeRepo, transactionRepo)
	departmentService := services.NewDepartmentService(departmentRepo)
	analysisService := services.NewAnalysisService(departmentRepo, goalRepo, budgetService, aiClient)

	// Handlers
	userHandler := handlers.NewUserHandler(userService, cfg.JWTSecret, cfg.TokenExpiry)
	goalHandler := handlers.NewGoalHandler(goalService)
	incomeHandler := handlers.NewIncomeHandler(incomeService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	departmentHandler := handlers.NewDepartmentHandler(departmentService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	analysisHandler := handlers.NewAnalysisHandler(analysisService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware)

	// Public routes
	router.HandleFunc("/users/register", userHandler.RegisterUser).Methods("POST")
	router.HandleFunc("/users/login", userHandler.LoginUser).Methods("POST")
	router.HandleFunc("/users/verify", userHandler.VerifyEmail).Methods("GET")

	// Authenticated routes
	auth := router.NewRoute().Subrouter()
	auth.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	auth.HandleFunc("/users/{id}", userHandler.GetUser).Methods("GET")
	auth.HandleFunc("/users/{id}", userHandler.UpdateUser).Methods("PUT")

	auth.HandleFunc("/goals", goalHandler.CreateGoal).Methods("POST")
	auth.HandleFunc("/goals", goalHandler.GetGoals).Methods("GET")
	auth.HandleFunc("/goals/preview", goalHandler.Preview).Methods("POST")
	auth.HandleFunc("/goals/{id}", goalHandler.GetGoal).Methods("GET")
	auth.HandleFunc("/goals/{id}", goalHandler.UpdateGoal).Methods("PUT")
	auth.HandleFunc("/goals/{id}", goalHandler.DeleteGoal).Methods("DELETE")
	auth.HandleFunc("/goals/{id}/contribute", goalHandler.Contribute).Methods("POST")
	auth.HandleFunc("/goals/{id}/contributions", goalHandler.GetContributions).Methods("GET")
	auth.HandleFunc("/goals/{id}/analyze", analysisHandler.AnalyzeGoal).Methods("POST")

	auth.HandleFunc("/income", incomeHandler.CreateIncome).Methods("POST")
	auth.HandleFunc("/income", incomeHandler.GetIncomes).Methods("GET")
	auth.HandleFunc("/income/{id}", incomeHandler.DeactivateIncome).Methods("DELETE")

	auth.HandleFunc("/transactions", transactionHandler.CreateTransaction).Methods("POST")
	auth.HandleFunc("/transactions", transactionHandler.GetTransactions).Methods("GET")
	auth.HandleFunc("/transactions/{id}", transactionHandler.DeleteTransaction).Methods("DELETE")

	auth.HandleFunc("/budget/summary", budgetHandler.GetSummary).Methods("GET")

	auth.HandleFunc("/notifications", notificationHandler.GetNotifications).Methods("GET")
	auth.HandleFunc("/notifications/{id}/read", notificationHandler.MarkAsRead).Methods("PUT")

	// Business-account routes
	business := router.NewRoute().Subrouter()
	business.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	business.Use(middleware.RequireRole(models.RoleCompany))

	business.HandleFunc("/departments", departmentHandler.CreateDepartment).Methods("POST")
	business.HandleFunc("/departments", departmentHandler.GetDepartments).Methods("GET")
	business.HandleFunc("/departments/{id}", departmentHandler.UpdateDepartment).Methods("PUT")
	business.HandleFunc("/departments/{id}", departmentHandler.DeleteDepartment).Methods("DELETE")
	business.HandleFunc("/analyze", analysisHandler.AnalyzeBusiness).Methods("POST")

	// Background jobs
	notifier := jobs.NewDeadlineNotifier(goalRepo, notificationRepo, notificationService)
	cronRunner := scheduler.StartNotificationCron(notifier)
	defer cronRunner.Stop()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	logger.Log.Infof("Server running on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, corsHandler); err != nil {
		logger.Log.WithError(err).Fatal("Server failed")
	}
}
