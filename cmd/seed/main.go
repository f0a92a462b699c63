package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"hotelier/internal/database"
	"hotelier/internal/domain"
	"hotelier/internal/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	ctx := context.Background()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "hotelier.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (child tables first)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM invoice_services")
	db.Exec("DELETE FROM invoices")
	db.Exec("DELETE FROM reservation_services")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM events")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM hotels")
	db.Exec("DELETE FROM services")
	db.Exec("DELETE FROM users")

	userRepo := repository.NewUserRepository(db)
	hotelRepo := repository.NewHotelRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	log.Println("Creating users...")
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@hotelier.kz",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Administrator",
		Active:       true,
	}
	if err := userRepo.Create(ctx, &admin); err != nil {
		log.Fatal(err)
	}

	guests := make([]domain.User, 0, 3)
	for i, email := range []string{"asel@mail.kz", "bekzat@gmail.com", "dina@yandex.kz"} {
		hash, _ := bcrypt.GenerateFromPassword([]byte("guest123"), bcrypt.DefaultCost)
		guest := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleUser,
			Name:         fmt.Sprintf("Guest %d", i+1),
			Active:       true,
		}
		if err := userRepo.Create(ctx, &guest); err != nil {
			log.Fatal(err)
		}
		guests = append(guests, guest)
	}

	log.Println("Creating hotels and rooms...")
	hotelNames := []string{"Grand Almaty", "Astana Plaza", "Caspian View"}
	rooms := make([]domain.Room, 0, 9)
	for i, name := range hotelNames {
		hotel := domain.Hotel{
			Name:      name,
			Address:   fmt.Sprintf("Abay Ave %d", i+10),
			Category:  fmt.Sprintf("%d-star", 3+i),
			Amenities: []string{"wifi", "parking"},
			Active:    true,
		}
		if err := hotelRepo.Create(ctx, &hotel); err != nil {
			log.Fatal(err)
		}

		for j := 1; j <= 3; j++ {
			room := domain.Room{
				HotelID:  hotel.ID,
				Number:   fmt.Sprintf("%d0%d", i+1, j),
				Capacity: 1 + j,
				Price:    decimal.NewFromInt(int64(15000 + 5000*j)),
				Status:   domain.RoomAvailable,
				Active:   true,
			}
			if err := roomRepo.Create(ctx, &room); err != nil {
				log.Fatal(err)
			}
			rooms = append(rooms, room)
		}
	}

	log.Println("Creating services...")
	services := make([]domain.Service, 0, 3)
	for _, s := range []struct {
		name  string
		price int64
	}{
		{"Breakfast", 3000},
		{"Airport transfer", 8000},
		{"Late checkout", 5000},
	} {
		svc := domain.Service{
			Name:   s.name,
			Price:  decimal.NewFromInt(s.price),
			Active: true,
		}
		if err := serviceRepo.Create(ctx, &svc); err != nil {
			log.Fatal(err)
		}
		services = append(services, svc)
	}

	log.Println("Creating reservations...")
	base := time.Now().UTC().Truncate(24 * time.Hour)
	for i := 0; i < 6; i++ {
		start := base.AddDate(0, 0, 2+i*4)
		res := domain.Reservation{
			RoomID:     rooms[i%len(rooms)].ID,
			UserID:     guests[i%len(guests)].ID,
			ServiceIDs: []int64{services[i%len(services)].ID},
			StartDate:  start,
			EndDate:    start.AddDate(0, 0, 2),
			Active:     true,
		}
		if err := reservationRepo.Create(ctx, &res); err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Seed completed")
	log.Println("Admin: admin@hotelier.kz / admin123")
	log.Println("Guests: asel@mail.kz, bekzat@gmail.com, dina@yandex.kz / guest123")
}
