package logtypes

import (
	"time"
)

// Record is a single generated log line or platform event
type Record interface {
	// Time returns the instant the record claims to have happened at
	Time() time.Time
	// Severity returns the log level, or "" when the record carries none
	Severity() string
	// Source returns the emitting service or application name
	Source() string
}

// Level is the severity of a payment log
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Service names a component of the payment system
type Service string

const (
	ServicePaymentGateway   Service = "payment-gateway"
	ServicePaymentProcessor Service = "payment-processor"
	ServiceFraudDetection   Service = "fraud-detection"
	ServiceAccount          Service = "account-service"
)

// PaymentLog represents a synthetic payment-system log line.
// Fields after CustomerID are only set for some (service, level) pairs.
type PaymentLog struct {
	Timestamp     Timestamp `json:"timestamp"`
	Level         Level     `json:"level"`
	Service       Service   `json:"service"`
	TransactionID string    `json:"transactionId"`
	CustomerID    string    `json:"customerId"`

	Message     string   `json:"message,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Currency    string   `json:"currency,omitempty"`
	Error       string   `json:"error,omitempty"`
	ProcessorID string   `json:"processorId,omitempty"`
	RiskScore   *float64 `json:"risk_score,omitempty"`
}

func (p *PaymentLog) Time() time.Time  { return p.Timestamp.Time }
func (p *PaymentLog) Severity() string { return string(p.Level) }
func (p *PaymentLog) Source() string   { return string(p.Service) }
