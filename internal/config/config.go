package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServerPort         int           `json:"server_port"`
	JWTSecretKey       string        `json:"jwt_secret_key"`
	JWTExpirationHours int           `json:"jwt_expiration_hours"`
	GlobalRateLimit    int           `json:"global_rate_limit"`
	AdminOpTimeout     time.Duration `json:"admin_op_timeout"`
	ReconcileInterval  time.Duration `json:"reconcile_interval"`
}

func Load() (*Config, error) {
	serverPort, _ := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if serverPort == 0 {
		serverPort = 10000
	}

	jwtExpirationHours, _ := strconv.Atoi(os.Getenv("JWT_EXPIRATION_HOURS"))
	if jwtExpirationHours == 0 {
		jwtExpirationHours = 24
	}

	globalRateLimit, _ := strconv.Atoi(os.Getenv("GLOBAL_RATE_LIMIT"))
	if globalRateLimit == 0 {
		globalRateLimit = 10000 // 10000 requests per minute globally per IP
	}

	// CREATE/DROP DATABASE and migrations run against a remote server that
	// can hang; every such call gets an explicit deadline.
	adminOpTimeout := getEnvDurationWithDefault("ADMIN_OP_TIMEOUT", 30*time.Second)

	reconcileInterval := getEnvDurationWithDefault("RECONCILE_INTERVAL", 1*time.Minute)

	return &Config{
		ServerPort:         serverPort,
		JWTSecretKey:       os.Getenv("JWT_SECRET_KEY"),
		JWTExpirationHours: jwtExpirationHours,
		GlobalRateLimit:    globalRateLimit,
		AdminOpTimeout:     adminOpTimeout,
		ReconcileInterval:  reconcileInterval,
	}, nil
}
