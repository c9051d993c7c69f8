package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "dispatch_db",
}

var defaultKafka = Kafka{
	GroupID:            "dispatch-worker",
	OrdersTopic:        "orders.events",
	NotificationsTopic: "dispatch.notifications",
}

var defaultNotify = Notify{
	Timeout:     2 * time.Second,
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    time.Second,
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       20,
	Burst:      40,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

var defaultDispatch = Dispatch{
	OperationTimeout: 3 * time.Second,
	ExpiryInterval:   30 * time.Second,
	PayoutInterval:   time.Hour,
}

var defaultTracking = Tracking{
	SessionTTL: 2 * time.Hour,
}

var defaultLog = Log{
	Level:  "info",
	Format: "json",
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultKafka returns the default Kafka settings; brokers are empty so Kafka is off.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultNotify returns the default notification publisher settings.
func DefaultNotify() Notify {
	return defaultNotify
}

// DefaultRateLimit returns the default rate limiter settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

// DefaultDispatch returns the default dispatch settings.
func DefaultDispatch() Dispatch {
	return defaultDispatch
}

// DefaultTracking returns the default tracking settings.
func DefaultTracking() Tracking {
	return defaultTracking
}

// DefaultLog returns the default logger settings.
func DefaultLog() Log {
	return defaultLog
}
