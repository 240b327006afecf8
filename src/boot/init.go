package boot

import (
	"fmt"
	"log"
	"mrs/src/common"
	"mrs/src/config"
	"mrs/src/db"
	"mrs/src/lib"
	"mrs/src/models"
	"time"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Body{},
		&models.BodyDocument{},
		&models.StorageUnit{},
		&models.AllocationRow{},
		&models.BodyExit{},
		&models.Movement{},
		&models.SequenceCounter{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// InitScheduler registers the hourly overdue scan. Overdue status is always
// derived, so the job only reports; it never mutates allocations.
func InitScheduler(svc *common.Service) {
	_, err := lib.CreateCronJob(func(svc *common.Service) {
		overdue, err := svc.OverdueAllocations()
		if err != nil {
			log.Printf("Overdue scan failed: %s\n", err.Error())
			return
		}
		if len(overdue) == 0 {
			return
		}
		log.Printf("Overdue scan found %d allocation(s)\n", len(overdue))
		if config.OPS_EMAIL == "" {
			return
		}
		body := fmt.Sprintf("<p>%d storage allocation(s) are past their expected duration:</p><ul>", len(overdue))
		for _, a := range overdue {
			body += fmt.Sprintf("<li>Allocation %d, body %d, unit %d: %d days stored</li>", a.ID, a.BodyID, a.StorageUnitID, a.CurrentDuration())
		}
		body += "</ul>"
		if err := lib.SendMail(&lib.SendMailInput{
			From:     config.SMTP_FROM,
			FromName: "noreply",
			To:       []string{config.OPS_EMAIL},
			Subject:  "Overdue storage allocations",
			Body:     body,
			Html:     true,
		}); err != nil {
			log.Printf("Could not send overdue summary: %s\n", err.Error())
		}
	}, time.Hour, svc)
	if err != nil {
		log.Printf("Error scheduling overdue scan: %s\n", err.Error())
		return
	}
	sched, err := lib.GetScheduler()
	if err != nil {
		return
	}
	sched.Start()
}
