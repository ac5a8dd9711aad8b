// Seeds the database with fake companies, users, jobs and applications for
// local development. Not used by the benchmarker, which loads its own
// fixtures through the init script.
package main

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"risuwork/config"
	"risuwork/database"
	"risuwork/models"
	"risuwork/password"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/joho/godotenv"
)

var industries = []string{
	"IT", "Finance", "Manufacturing", "Retail", "Healthcare",
	"Education", "Construction", "Logistics", "Media", "Hospitality",
}

var jobTags = []string{
	"go", "remote", "fulltime", "parttime", "senior", "junior",
	"sales", "design", "support", "backend", "frontend",
}

func main() {
	_ = godotenv.Load()
	cfg := config.LoadConfig()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}

	hasher := password.ForScheme(cfg.PasswordScheme)
	// One shared credential keeps seeding fast even under bcrypt.
	credential, err := hasher.Hash("password")
	if err != nil {
		log.Fatalf("hash: %v", err)
	}

	for _, name := range industries {
		db.Create(&models.IndustryCategory{Name: name})
	}

	var employers []models.User
	for i := 0; i < 20; i++ {
		company := models.Company{
			Name:       gofakeit.Company(),
			IndustryID: uint(rand.Intn(len(industries)) + 1),
		}
		if err := db.Create(&company).Error; err != nil {
			log.Fatalf("seed company: %v", err)
		}
		for j := 0; j < 2; j++ {
			employer := models.User{
				Email:     fmt.Sprintf("cl%d_%d@%s", i, j, gofakeit.DomainName()),
				Password:  credential,
				Name:      gofakeit.Name(),
				UserType:  models.UserTypeCL,
				CompanyID: &company.ID,
			}
			if err := db.Create(&employer).Error; err != nil {
				log.Fatalf("seed employer: %v", err)
			}
			employers = append(employers, employer)
		}
	}

	var jobs []models.Job
	for i := 0; i < 200; i++ {
		employer := employers[rand.Intn(len(employers))]
		tags := make([]string, 0, 3)
		for _, t := range rand.Perm(len(jobTags))[:3] {
			tags = append(tags, jobTags[t])
		}
		job := models.Job{
			Title:        gofakeit.JobTitle(),
			Description:  gofakeit.Paragraph(1, 3, 12, " "),
			Salary:       (rand.Intn(90) + 10) * 10000,
			Tags:         strings.Join(tags, ","),
			IsActive:     rand.Intn(10) > 0,
			CreateUserID: employer.ID,
		}
		if err := db.Create(&job).Error; err != nil {
			log.Fatalf("seed job: %v", err)
		}
		jobs = append(jobs, job)
	}

	for i := 0; i < 100; i++ {
		seeker := models.User{
			Email:    fmt.Sprintf("cs%d@%s", i, gofakeit.DomainName()),
			Password: credential,
			Name:     gofakeit.Name(),
			UserType: models.UserTypeCS,
		}
		if err := db.Create(&seeker).Error; err != nil {
			log.Fatalf("seed seeker: %v", err)
		}
		for _, j := range rand.Perm(len(jobs))[:rand.Intn(5)] {
			db.Create(&models.Application{JobID: jobs[j].ID, UserID: seeker.ID})
		}
	}

	log.Println("Seed completed")
}
