package generator

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/kumarabd/ingestion-plane/loggen/pkg/logtypes"
)

var paymentLevels = []weighted[logtypes.Level]{
	{logtypes.LevelInfo, 0.7},
	{logtypes.LevelWarn, 0.2},
	{logtypes.LevelError, 0.1},
}

var paymentServices = []logtypes.Service{
	logtypes.ServicePaymentGateway,
	logtypes.ServicePaymentProcessor,
	logtypes.ServiceFraudDetection,
	logtypes.ServiceAccount,
}

var currencies = []string{"USD", "EUR", "GBP", "JPY"}

var gatewayInfoMessages = []string{
	"Payment transaction initiated",
	"Payment transaction completed successfully",
}

var gatewayErrors = []string{
	"Insufficient funds",
	"Card expired",
	"Invalid card number",
}

var accountMessages = []string{
	"Account balance updated",
	"New account created",
	"Account details modified",
}

// PaymentGenerator generates payment-system logs
type PaymentGenerator struct{}

func (g *PaymentGenerator) Generate(r *rand.Rand, now time.Time) logtypes.Record {
	entry := &logtypes.PaymentLog{
		Timestamp: pastTimestamp(r, now),
		Level:     pickWeighted(r, paymentLevels),
		Service:   pick(r, paymentServices),
	}
	entry.TransactionID = "tx-" + hexID(r, 8)
	entry.CustomerID = "cust-" + strconv.Itoa(intBetween(r, 100, 999))

	switch entry.Service {
	case logtypes.ServicePaymentGateway:
		// WARN from the gateway carries no message
		switch entry.Level {
		case logtypes.LevelInfo:
			entry.Message = pick(r, gatewayInfoMessages)
			amount := round2(uniform(r, 10, 1000))
			entry.Amount = &amount
			entry.Currency = pick(r, currencies)
		case logtypes.LevelError:
			entry.Message = "Payment transaction failed"
			entry.Error = pick(r, gatewayErrors)
		}
	case logtypes.ServicePaymentProcessor:
		entry.Message = "Processing payment"
		entry.ProcessorID = "proc-" + strconv.Itoa(intBetween(r, 100, 999))
	case logtypes.ServiceFraudDetection:
		entry.Message = "Suspicious activity detected"
		score := round2(uniform(r, 0.5, 1))
		entry.RiskScore = &score
	case logtypes.ServiceAccount:
		entry.Message = pick(r, accountMessages)
	}

	return entry
}

func (g *PaymentGenerator) Description() string {
	return "Payment service logs: gateway, processor, fraud detection and account events"
}
