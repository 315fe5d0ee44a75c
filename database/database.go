package database

import (
	"fmt"
	"log"

	"api/config"
	"api/models"
	"api/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

var DefaultAdminEmail = "admin@admin.com"
var DefaultPassword = "admin"

// InitDB initializes the database connection and migrates the models and populates the database with default values if needed
func InitDB() {
	dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=disable TimeZone=Asia/Seoul", config.PostgresHost, config.PostgresPort, config.PostgresUser, config.PostgresDB, config.PostgresPassword)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database: ", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Challenge{},
		&models.Participation{},
		&models.PayoutRecord{},
	)
	if err != nil {
		log.Fatal("failed to migrate database: ", err)
	}

	Populate()
}

// Populate populates the database with a default admin operator if needed
func Populate() {
	var countUser int64
	DB.Model(&models.User{}).Count(&countUser)
	if countUser != 0 {
		return
	}

	// Create default admin operator with a hashed password either from the .env file or the DefaultPassword constant
	password := DefaultPassword
	if config.DefaultPassword != "" {
		password = config.DefaultPassword
	}

	password, err := utils.HashPassword(password)
	if err != nil {
		panic(err)
	}

	admin := models.User{
		Email:      DefaultAdminEmail,
		Nickname:   "Admin",
		Password:   password,
		IsAdmin:    true,
		IsVerified: true,
	}
	DB.Create(&admin)
	log.Println("Default admin operator created")
}
