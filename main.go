package main

import (
	"log"
	"os"

	"lms/config"
	"lms/database"
	"lms/routers"
	"lms/utils"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	if err := os.MkdirAll(config.AppConfig.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload dir %s: %v", config.AppConfig.UploadDir, err)
	}

	utils.AppMailer = utils.NewMailer(config.AppConfig)

	app := routers.NewApp(config.AppConfig)

	// Remove upload files no row references
	utils.InitializeOrphanSweeper(config.AppConfig)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
