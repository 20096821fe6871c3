package main

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"staffhub/internal/config"
	"staffhub/internal/db"
	"staffhub/internal/model"
	"staffhub/internal/repository"
)

const adminEmail = "admin@staffhub.local"

func intPtr(v int) *int { return &v }

// sampleEmployees is the development fixture set. Seeding skips records whose
// email already exists, so the script is safe to re-run.
var sampleEmployees = []model.Employee{
	{
		Name:        "Alice Henderson",
		Email:       "alice.henderson@staffhub.local",
		Phone:       "+1-555-0101",
		Age:         intPtr(34),
		Class:       model.ClassSenior,
		Attendance:  97,
		Subjects:    []string{"Platform", "Security"},
		Department:  "Engineering",
		Position:    "Staff Engineer",
		JoinDate:    time.Date(2019, 3, 11, 0, 0, 0, 0, time.UTC),
		Education:   []string{"BSc Computer Science"},
		Skills:      []string{"Go", "Kubernetes", "MySQL"},
		Performance: 9,
	},
	{
		Name:        "Bruno Keller",
		Email:       "bruno.keller@staffhub.local",
		Phone:       "+1-555-0102",
		Age:         intPtr(28),
		Class:       model.ClassMidLevel,
		Attendance:  92,
		Subjects:    []string{"Billing Systems"},
		Department:  "Engineering",
		Position:    "Backend Engineer",
		JoinDate:    time.Date(2022, 7, 1, 0, 0, 0, 0, time.UTC),
		Education:   []string{"MSc Software Engineering"},
		Skills:      []string{"Go", "Redis"},
		Performance: 7,
	},
	{
		Name:        "Carla Mendes",
		Email:       "carla.mendes@staffhub.local",
		Phone:       "+1-555-0103",
		Age:         intPtr(41),
		Class:       model.ClassSenior,
		Attendance:  99,
		Department:  "People",
		Position:    "HR Manager",
		JoinDate:    time.Date(2017, 1, 9, 0, 0, 0, 0, time.UTC),
		Skills:      []string{"Recruiting", "Mediation"},
		Performance: 8,
	},
	{
		Name:        "Diego Fuentes",
		Email:       "diego.fuentes@staffhub.local",
		Age:         intPtr(23),
		Class:       model.ClassJunior,
		Attendance:  88,
		Department:  "Engineering",
		Position:    "Frontend Engineer",
		JoinDate:    time.Date(2024, 2, 19, 0, 0, 0, 0, time.UTC),
		Skills:      []string{"React", "TypeScript"},
		Performance: 6,
	},
	{
		Name:        "Emma Novak",
		Email:       "emma.novak@staffhub.local",
		Age:         intPtr(21),
		Class:       model.ClassIntern,
		Attendance:  95,
		Department:  "Design",
		Position:    "Design Intern",
		JoinDate:    time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Skills:      []string{"Figma"},
		Performance: 7,
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Employee{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)
	employees := repository.NewEmployeeRepository(gormDB)

	if err := seedAdmin(ctx, users); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	created, skipped := 0, 0
	for i := range sampleEmployees {
		emp := sampleEmployees[i]
		if _, err := employees.FindByEmail(ctx, emp.Email); err == nil {
			skipped++
			continue
		} else if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to check employee %s: %v", emp.Email, err)
		}
		if err := employees.Create(ctx, &emp); err != nil {
			log.Fatalf("Failed to create employee %s: %v", emp.Email, err)
		}
		created++
	}

	log.Printf("Seed complete: %d employees created, %d skipped", created, skipped)
}

// seedAdmin creates the initial ADMIN login if it does not exist yet.
func seedAdmin(ctx context.Context, users repository.UserRepository) error {
	if _, err := users.FindByEmail(ctx, adminEmail); err == nil {
		log.Println("Admin user already exists, skipping")
		return nil
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("changeme-admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Name:         "Administrator",
		Email:        adminEmail,
		PasswordHash: string(hashed),
		Role:         model.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Admin user created: %s", adminEmail)
	return nil
}
