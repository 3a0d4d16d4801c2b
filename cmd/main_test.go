package main

import (
	"bytes"
	"flag"
	"os"
	"testing"
)

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

// resetEnv clears env vars used by parseConfig
func resetEnv() {
	os.Clearenv()
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}
	configPath := parseFlags()
	expected := "config.env"

	if configPath != expected {
		t.Errorf("expected %s, got %s", expected, configPath)
	}
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "myconfig.env"}
	configPath := parseFlags()
	expected := "myconfig.env"

	if configPath != expected {
		t.Errorf("expected %s, got %s", expected, configPath)
	}
}

func TestPrintBuildInfo_Output(t *testing.T) {
	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	buildVersion = "v1.0.0"
	buildCommit = "abcd1234"
	buildDate = "2026-09-01"

	printBuildInfo()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	output := buf.String()
	os.Stdout = oldStdout

	if !contains(output, "v1.0.0") ||
		!contains(output, "abcd1234") ||
		!contains(output, "2026-09-01") {
		t.Errorf("printBuildInfo output unexpected:\n%s", output)
	}
}

// Helper function to check substring
func contains(s, substr string) bool {
	return bytes.Contains([]byte(s), []byte(substr))
}

func TestParseConfig_Defaults(t *testing.T) {
	resetEnv()

	appHost, appPort,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword, cacheTTL,
		kafkaBrokers, kafkaTopic,
		logLevel, jwtSecret, jwtExp,
		err := parseConfig("nonexistent.env")

	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	// Application
	if appHost != "localhost" || appPort != "8080" || logLevel != "info" {
		t.Errorf("unexpected app config: %v/%v/%v", appHost, appPort, logLevel)
	}

	// PostgreSQL
	if pgHost != "localhost" || pgPort != 5432 || pgUser != "user" || pgPassword != "password" || pgDB != "auction" ||
		pgMaxOpenConns != 16 || pgMaxIdleConns != 8 {
		t.Errorf("unexpected postgres config")
	}

	// Redis
	if redisHost != "localhost" || redisPort != 6379 || redisDB != 0 || redisPassword != "" || cacheTTL != 30 {
		t.Errorf("unexpected redis config")
	}

	// Kafka is disabled without brokers
	if len(kafkaBrokers) != 0 || kafkaTopic != "auction.bids" {
		t.Errorf("unexpected kafka config: %v/%v", kafkaBrokers, kafkaTopic)
	}

	// Session
	if jwtSecret != "my_super_secret_key" || jwtExp != 3600 {
		t.Errorf("unexpected session config: %v/%v", jwtSecret, jwtExp)
	}
}

func TestParseConfig_FromEnv(t *testing.T) {
	resetEnv()

	os.Setenv("APP_HOST", "0.0.0.0")
	os.Setenv("APP_PORT", "9090")
	os.Setenv("APP_LOG_LEVEL", "debug")
	os.Setenv("POSTGRES_HOST", "db")
	os.Setenv("POSTGRES_PORT", "5433")
	os.Setenv("POSTGRES_DB", "auction_test")
	os.Setenv("REDIS_HOST", "cache")
	os.Setenv("AUCTION_CACHE_TTL_SECOND", "120")
	os.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	os.Setenv("KAFKA_TOPIC", "bids")
	os.Setenv("JWT_SECRET_KEY", "another_secret")
	os.Setenv("JWT_EXP_SECOND", "60")

	appHost, appPort,
		pgHost, pgPort, _, _, pgDB,
		_, _,
		redisHost, _, _, _, cacheTTL,
		kafkaBrokers, kafkaTopic,
		logLevel, jwtSecret, jwtExp,
		err := parseConfig("nonexistent.env")

	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	if appHost != "0.0.0.0" || appPort != "9090" || logLevel != "debug" {
		t.Errorf("unexpected app config: %v/%v/%v", appHost, appPort, logLevel)
	}
	if pgHost != "db" || pgPort != 5433 || pgDB != "auction_test" {
		t.Errorf("unexpected postgres config: %v/%v/%v", pgHost, pgPort, pgDB)
	}
	if redisHost != "cache" || cacheTTL != 120 {
		t.Errorf("unexpected redis config: %v/%v", redisHost, cacheTTL)
	}
	if len(kafkaBrokers) != 2 || kafkaBrokers[0] != "kafka-1:9092" || kafkaTopic != "bids" {
		t.Errorf("unexpected kafka config: %v/%v", kafkaBrokers, kafkaTopic)
	}
	if jwtSecret != "another_secret" || jwtExp != 60 {
		t.Errorf("unexpected session config: %v/%v", jwtSecret, jwtExp)
	}
}

func TestParseConfig_InvalidPort(t *testing.T) {
	resetEnv()

	os.Setenv("POSTGRES_PORT", "not-a-number")

	_, _, _, _, _, _, _, _, _, _, _, _, _, _, _, _, _, _, _, err := parseConfig("nonexistent.env")
	if err == nil {
		t.Fatal("expected error for invalid POSTGRES_PORT")
	}
}
