package configs

import "os"

func EnvMongoURI() string {
	uri := os.Getenv("MONGOURI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	return uri
}

func EnvDatabaseName() string {
	name := os.Getenv("DB_NAME")
	if name == "" {
		name = "marketplaceApi"
	}
	return name
}

func EnvJWTSecret() string {
	return os.Getenv("JWT_SECRET")
}

func EnvPort() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	return port
}

func EnvSMTPHost() string {
	return os.Getenv("SMTP_HOST")
}

func EnvSMTPPort() string {
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	return port
}

func EnvSMTPUsername() string {
	return os.Getenv("SMTP_USERNAME")
}

func EnvSMTPPassword() string {
	return os.Getenv("SMTP_PASSWORD")
}

func EnvSMTPFrom() string {
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = EnvSMTPUsername()
	}
	return from
}
