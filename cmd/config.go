package cmd

import "fmt"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	LogLevel   string

	CarrierBaseURL string
	CarrierAPIKey  string
	OriginPostcode string

	KafkaBrokers              []string
	KafkaOrderChangedTopic    string
	KafkaRefundRequestedTopic string

	SchedulerCron      string
	SchedulerBatchSize int
	CarrierHealthCron  string
}

// DSN is the libpq connection string shared by goose and gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
