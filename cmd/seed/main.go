package main

import (
	"context"
	"log"
	"os"
	"time"

	"motofix/internal/database"
	"motofix/internal/domain"
	"motofix/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Seeds a local database with an admin, two customers with motorcycles
// and three mechanics (two available). Intended for development only.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "motofix.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed: ", err)
	}

	log.Println("Cleaning old data...")
	for _, table := range []string{
		"messages", "chat_rooms", "notifications", "work_offers",
		"bookings", "motorcycles", "mechanic_profiles", "users",
	} {
		db.Exec("DELETE FROM " + table)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	mechanics := repository.NewMechanicRepository(db)
	motorcycles := repository.NewMotorcycleRepository(db)

	log.Println("Creating users...")
	mustCreate(ctx, users, &domain.User{
		Email: "admin@motofix.local", PasswordHash: hash("admin123"),
		Role: domain.RoleAdmin, Name: "Admin",
	})

	alice := mustCreate(ctx, users, &domain.User{
		Email: "alice@motofix.local", PasswordHash: hash("customer123"),
		Role: domain.RoleCustomer, Name: "Alice", Phone: "+77001110001",
	})
	bob := mustCreate(ctx, users, &domain.User{
		Email: "bob@motofix.local", PasswordHash: hash("customer123"),
		Role: domain.RoleCustomer, Name: "Bob", Phone: "+77001110002",
	})

	type mech struct {
		email     string
		name      string
		spec      domain.Specialization
		years     int
		available bool
	}
	for _, m := range []mech{
		{"marat@motofix.local", "Marat", domain.SpecEngine, 8, true},
		{"dana@motofix.local", "Dana", domain.SpecElectrical, 5, true},
		{"timur@motofix.local", "Timur", domain.SpecAll, 12, false},
	} {
		u := mustCreate(ctx, users, &domain.User{
			Email: m.email, PasswordHash: hash("mechanic123"),
			Role: domain.RoleMechanic, Name: m.name,
		})
		if err := mechanics.CreateProfile(ctx, &domain.MechanicProfile{
			UserID:            u.ID,
			Specialization:    m.spec,
			YearsOfExperience: m.years,
			IsAvailable:       m.available,
		}); err != nil {
			log.Fatal("profile: ", err)
		}
	}

	log.Println("Creating motorcycles...")
	for _, m := range []domain.Motorcycle{
		{OwnerID: alice.ID, Brand: "Honda", Model: "CB500F", Year: 2021, CC: 471, BikeType: domain.BikeStandard, LicensePlate: "A123BC", Mileage: 14000},
		{OwnerID: alice.ID, Brand: "Yamaha", Model: "MT-07", Year: 2019, CC: 689, BikeType: domain.BikeStandard, LicensePlate: "A456DE", Mileage: 32000},
		{OwnerID: bob.ID, Brand: "Kawasaki", Model: "Ninja 650", Year: 2022, CC: 649, BikeType: domain.BikeSport, LicensePlate: "B789FG", Mileage: 6000},
	} {
		moto := m
		if err := motorcycles.Create(ctx, &moto); err != nil {
			log.Fatal("motorcycle: ", err)
		}
	}

	log.Printf("Seed complete at %s", time.Now().Format(time.RFC3339))
}

func mustCreate(ctx context.Context, users *repository.UserRepository, u *domain.User) *domain.User {
	if err := users.Create(ctx, u); err != nil {
		log.Fatal("user: ", err)
	}
	return u
}

func hash(pw string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	return string(h)
}
