package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"hotelier/internal/config"
	"hotelier/internal/database"
	"hotelier/internal/middleware"
	"hotelier/internal/modules/auth"
	"hotelier/internal/modules/catalog"
	"hotelier/internal/modules/event"
	"hotelier/internal/modules/invoice"
	"hotelier/internal/modules/reservation"
	jwtsvc "hotelier/internal/pkg/jwt"
	"hotelier/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadRuntimeConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	hotelRepo := repository.NewHotelRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	eventRepo := repository.NewEventRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(hotelRepo, roomRepo, serviceRepo, reservationRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	reservationService := reservation.NewService(reservationRepo, roomRepo, userRepo, serviceRepo)
	reservationHandler := reservation.NewHandler(reservationService)

	invoiceService := invoice.NewService(invoiceRepo, reservationRepo, roomRepo, serviceRepo)
	invoiceHandler := invoice.NewHandler(invoiceService)

	eventService := event.NewService(eventRepo, hotelRepo, roomRepo)
	eventHandler := event.NewHandler(eventService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			catalogHandler.RegisterRoutes(protected)
			reservationHandler.RegisterRoutes(protected)
			invoiceHandler.RegisterRoutes(protected)
			eventHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
