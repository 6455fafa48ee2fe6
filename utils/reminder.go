package utils

import (
	"fmt"
	"log"
	"time"

	"cqms/config"
	"cqms/database"
	"cqms/models"

	"github.com/robfig/cron/v3"
)

// logReminder logs reminder events with timestamp
func logReminder(message string) {
	log.Printf("[QUERY-REMINDER %s] %s", time.Now().Format(time.RFC3339), message)
}

// logOpenQuerySummary logs how many queries are currently open and closed
// so an idle support dashboard still leaves a trail in the server log.
func logOpenQuerySummary() {
	db := database.Database.Db

	var opened, closed int64
	if err := db.Model(&models.Query{}).Where("status = ?", models.StatusOpened).Count(&opened).Error; err != nil {
		logReminder("Error counting open queries: " + err.Error())
		return
	}
	if err := db.Model(&models.Query{}).Where("status = ?", models.StatusClosed).Count(&closed).Error; err != nil {
		logReminder("Error counting closed queries: " + err.Error())
		return
	}

	logReminder(fmt.Sprintf("open=%d closed=%d", opened, closed))
}

// StartReminderScheduler runs the open-query summary on the configured
// cron schedule.
func StartReminderScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc(config.AppConfig.ReminderCron, logOpenQuerySummary); err != nil {
		log.Printf("Invalid REMINDER_CRON %q: %v", config.AppConfig.ReminderCron, err)
		return c
	}

	c.Start()
	logReminder("Scheduler started with spec " + config.AppConfig.ReminderCron)
	return c
}
