package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type ConfigStruct struct {
	MySQLHost     string
	MySQLPort     int
	MySQLUser     string
	MySQLPassword string
	MySQLDatabase string

	MongoURI string
	MongoDB  string

	WSHost string
	WSPort int

	JWTSecret string

	LogFile string
}

// Global config, loaded once at startup
var Config *ConfigStruct

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found or could not be loaded")
	}

	toInt := func(envVar string, defaultVal int) int {
		valStr := os.Getenv(envVar)
		if valStr == "" {
			return defaultVal
		}
		val, err := strconv.Atoi(valStr)
		if err != nil {
			log.Printf("Invalid value for %s: %v\n", envVar, err)
			return defaultVal
		}
		return val
	}

	toStr := func(envVar, defaultVal string) string {
		if v := os.Getenv(envVar); v != "" {
			return v
		}
		return defaultVal
	}

	Config = &ConfigStruct{
		MySQLHost:     toStr("MYSQL_HOST", "127.0.0.1"),
		MySQLPort:     toInt("MYSQL_PORT", 3306),
		MySQLUser:     os.Getenv("MYSQL_USER"),
		MySQLPassword: os.Getenv("MYSQL_PASSWORD"),
		MySQLDatabase: toStr("MYSQL_DATABASE", "airhockey"),

		MongoURI: os.Getenv("MONGO_URI"),
		MongoDB:  toStr("MONGO_DB", "airhockey"),

		WSHost:    os.Getenv("WS_HOST"),
		WSPort:    toInt("WS_PORT", 8000),
		JWTSecret: os.Getenv("JWT_SECRET"),

		LogFile: toStr("LOG_FILE", "server.log"),
	}
}
