package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"carehome/internal/config"
	"carehome/internal/database"
	"carehome/internal/domain"
	"carehome/internal/repository"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.Server.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	// Cleanup old data (children first)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM vitals")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM caregiver_profiles")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	caregivers := repository.NewCaregiverRepository(db)
	vitals := repository.NewVitalRepository(db)

	// Admin
	log.Println("Creating users...")
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := &domain.User{
		Email:        "admin@carehome.local",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "On-call Administrator",
		Phone:        "+1-555-0001",
		Active:       true,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal("Admin create failed:", err)
	}
	log.Println("Admin created: admin@carehome.local / admin123")

	// Customers
	customerNames := []string{"Jane Smith", "Robert Lee", "Maria Gonzalez"}
	customers := make([]*domain.User, 0, len(customerNames))
	for i, name := range customerNames {
		hash, _ := bcrypt.GenerateFromPassword([]byte("customer123"), bcrypt.DefaultCost)
		u := &domain.User{
			Email:        fmt.Sprintf("customer%d@example.com", i+1),
			PasswordHash: string(hash),
			Role:         domain.RoleCustomer,
			Name:         name,
			Phone:        fmt.Sprintf("+1-555-01%02d", i+10),
			Active:       true,
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatal("Customer create failed:", err)
		}
		customers = append(customers, u)
	}

	// Caregivers, first two verified
	log.Println("Creating caregivers...")
	caregiverSeeds := []struct {
		name      string
		specialty string
		rate      int64
		verified  bool
	}{
		{"Alice Nguyen", "dementia care", 4500, true},
		{"Ben Carter", "post-surgery recovery", 4000, true},
		{"Chloe Adams", "general elder care", 3500, false},
	}
	for i, s := range caregiverSeeds {
		hash, _ := bcrypt.GenerateFromPassword([]byte("caregiver123"), bcrypt.DefaultCost)
		u := &domain.User{
			Email:        fmt.Sprintf("caregiver%d@example.com", i+1),
			PasswordHash: string(hash),
			Role:         domain.RoleCaregiver,
			Name:         s.name,
			Phone:        fmt.Sprintf("+1-555-02%02d", i+10),
			Active:       true,
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatal("Caregiver create failed:", err)
		}

		profile := &domain.CaregiverProfile{
			UserID:          u.ID,
			Bio:             fmt.Sprintf("%s, experienced in %s.", s.name, s.specialty),
			Specialty:       s.specialty,
			HourlyRateCents: s.rate,
			Verified:        s.verified,
		}
		if s.verified {
			now := time.Now()
			profile.VerifiedAt = &now
		}
		if err := caregivers.Create(ctx, profile); err != nil {
			log.Fatal("Profile create failed:", err)
		}
	}

	// Sample vitals for the first customer
	log.Println("Creating sample vitals...")
	readings := []struct {
		t    domain.VitalType
		v    string
		unit string
		ago  time.Duration
	}{
		{domain.VitalBloodPressure, "128/82", "mmHg", 48 * time.Hour},
		{domain.VitalBloodPressure, "124/80", "mmHg", 24 * time.Hour},
		{domain.VitalHeartRate, "72", "bpm", 24 * time.Hour},
		{domain.VitalBloodSugar, "5.6", "mmol/L", 12 * time.Hour},
		{domain.VitalTemperature, "36.7", "C", 6 * time.Hour},
	}
	for _, r := range readings {
		v := &domain.Vital{
			UserID:     customers[0].ID,
			Type:       r.t,
			Value:      r.v,
			Unit:       r.unit,
			RecordedAt: time.Now().Add(-r.ago),
		}
		if err := vitals.Create(ctx, v); err != nil {
			log.Fatal("Vital create failed:", err)
		}
	}

	log.Println("Seed complete.")
	log.Println("Customers: customer1..3@example.com / customer123")
	log.Println("Caregivers: caregiver1..3@example.com / caregiver123")
}
