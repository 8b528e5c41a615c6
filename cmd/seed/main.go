package main

import (
	"log"
	"time"

	"agency-tracker-api/internal/auth"
	"agency-tracker-api/internal/config"
	"agency-tracker-api/internal/database"
	"agency-tracker-api/internal/models"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Development seeder: wipes every table and loads a small demo data set.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	database.InitDB(cfg.Database)
	db := database.GetDB()

	log.Println("Clearing existing data...")
	for _, model := range []interface{}{
		&models.TaskComment{}, &models.Task{}, &models.Project{}, &models.Client{}, &models.User{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error; err != nil {
			log.Fatal("Failed to clear table: ", err)
		}
	}

	hash, err := auth.HashPassword("password123")
	if err != nil {
		log.Fatal("Failed to hash seed password: ", err)
	}

	log.Println("Creating users...")
	admin := models.User{ID: models.NewID("user"), Name: "Admin User", Email: "admin@example.com", PasswordHash: hash, Role: models.RoleAdmin}
	employee1 := models.User{ID: models.NewID("user"), Name: "Ahmet Yilmaz", Email: "employee1@example.com", PasswordHash: hash, Role: models.RoleEmployee}
	employee2 := models.User{ID: models.NewID("user"), Name: "Ayse Demir", Email: "employee2@example.com", PasswordHash: hash, Role: models.RoleEmployee}
	mustCreate(db, &admin, &employee1, &employee2)

	log.Println("Creating clients...")
	acme := models.Client{ID: models.NewID("client"), Name: "Acme Corporation", Email: "info@acme.com", Phone: "+90 212 555 0001", Notes: "Priority corporate client"}
	techstart := models.Client{ID: models.NewID("client"), Name: "TechStart Ltd.", Email: "hello@techstart.com", Phone: "+90 216 555 0002", Notes: "Startup, fast communication"}
	mustCreate(db, &acme, &techstart)

	log.Println("Creating projects...")
	website := models.Project{ID: models.NewID("project"), Name: "Acme Website Redesign", ClientID: acme.ID, Status: models.ProjectActive}
	branding := models.Project{ID: models.NewID("project"), Name: "TechStart Branding", ClientID: techstart.ID, Status: models.ProjectActive}
	mustCreate(db, &website, &branding)

	log.Println("Creating tasks...")
	now := time.Now().UTC()
	yesterday := now.AddDate(0, 0, -1)
	nextWeek := now.AddDate(0, 0, 7)

	done := models.Task{
		ID: models.NewID("task"), ProjectID: website.ID, AssigneeID: employee1.ID,
		Title: "Homepage redesign", Status: models.StatusDone, Priority: models.PriorityHigh,
		CompletedAt: &yesterday, Price: 5000, PaidAmount: 5000,
		PaymentStatus: models.PaymentPaid, PaidAt: &yesterday,
	}
	inProgress := models.Task{
		ID: models.NewID("task"), ProjectID: website.ID, AssigneeID: employee2.ID,
		Title: "Contact form integration", Status: models.StatusInProgress,
		Priority: models.PriorityMedium, DueDate: &nextWeek, Price: 1500,
		PaymentStatus: models.PaymentPending,
	}
	overdue := models.Task{
		ID: models.NewID("task"), ProjectID: branding.ID, AssigneeID: employee1.ID,
		Title: "Logo drafts", Status: models.StatusReview, Priority: models.PriorityHigh,
		DueDate: &yesterday, Price: 6000, PaidAmount: 3000,
		PaymentStatus: models.PaymentPartial,
	}
	backlog := models.Task{
		ID: models.NewID("task"), ProjectID: branding.ID,
		Title: "Social media kit", Status: models.StatusBacklog, Priority: models.PriorityLow,
		PaymentStatus: models.PaymentPending,
	}
	mustCreate(db, &done, &inProgress, &overdue, &backlog)

	log.Println("Creating comments...")
	mustCreate(db,
		&models.TaskComment{ID: models.NewID("comment"), TaskID: done.ID, UserID: admin.ID, Text: "Great work, client approved."},
		&models.TaskComment{ID: models.NewID("comment"), TaskID: overdue.ID, UserID: employee1.ID, Text: "Waiting on brand guidelines."},
	)

	log.Println("Seed complete")
	log.Println("  admin@example.com / password123 (ADMIN)")
	log.Println("  employee1@example.com / password123 (EMPLOYEE)")
	log.Println("  employee2@example.com / password123 (EMPLOYEE)")
}

func mustCreate(db *gorm.DB, records ...interface{}) {
	for _, r := range records {
		if err := db.Create(r).Error; err != nil {
			log.Fatal("Failed to seed record: ", err)
		}
	}
}
