package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/kumarabd/gokit/logger"
	"github.com/kumarabd/ingestion-plane/loggen/internal/metrics"
	"github.com/kumarabd/ingestion-plane/loggen/pkg/cache"
	"github.com/kumarabd/ingestion-plane/loggen/pkg/generator"
	"github.com/kumarabd/ingestion-plane/loggen/pkg/logtypes"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrCountTooLarge is returned when a request asks for more than MaxCount records
var ErrCountTooLarge = errors.New("count exceeds maximum")

// streamSalt is the second PCG word; requests differ only by seed.
const streamSalt = 0x9e3779b97f4a7c15

// DefaultCount is the batch size used when a request does not name one
const DefaultCount = 100

// cancelCheckInterval is how many records are generated between context checks
const cancelCheckInterval = 1024

type Config struct {
	DefaultType  string        `json:"default_type" yaml:"default_type" default:"payment"`
	DefaultCount int           `json:"default_count" yaml:"default_count" default:"100"`
	MaxCount     int           `json:"max_count" yaml:"max_count" default:"100000"` // 0 disables the limit
	Seed         uint64        `json:"seed" yaml:"seed" default:"0"`                // 0 draws seeds at random
	Cache        *cache.Config `json:"cache" yaml:"cache"`
}

// Request describes one batch to generate
type Request struct {
	Type  string
	Count int
	// Seed makes the batch reproducible when set
	Seed *uint64
}

// Batch is the result of a generate call. Records may be shared with the
// replay cache and must not be modified.
type Batch struct {
	Type    string
	Seed    uint64
	Cached  bool
	Records []logtypes.Record
}

type Handler struct {
	log    *logger.Handler
	config *Config
	metric *metrics.Handler
	cache  *cache.Handler
	tracer trace.Tracer
	now    func() time.Time

	seedMu sync.Mutex
	seeds  *rand.Rand
}

func New(l *logger.Handler, m *metrics.Handler, sConfig *Config) (*Handler, error) {
	if sConfig == nil {
		sConfig = &Config{}
	}
	if sConfig.DefaultType == "" {
		sConfig.DefaultType = generator.TypePayment
	}
	if sConfig.DefaultCount == 0 {
		sConfig.DefaultCount = DefaultCount
	}
	if sConfig.DefaultCount < 0 {
		return nil, fmt.Errorf("default count must not be negative, got %d", sConfig.DefaultCount)
	}
	if _, err := generator.Get(sConfig.DefaultType); err != nil {
		return nil, fmt.Errorf("invalid default type: %w", err)
	}

	replay, err := cache.New(sConfig.Cache)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize replay cache: %w", err)
	}

	h := &Handler{
		log:    l,
		config: sConfig,
		metric: m,
		cache:  replay,
		tracer: otel.Tracer("loggen/service"),
		now:    time.Now,
	}
	if sConfig.Seed != 0 {
		h.seeds = rand.New(rand.NewPCG(sConfig.Seed, streamSalt))
	}

	return h, nil
}

// Config returns the service configuration
func (h *Handler) Config() *Config {
	return h.config
}

// Generate runs the generator registered for req.Type req.Count times
func (h *Handler) Generate(ctx context.Context, req Request) (*Batch, error) {
	start := time.Now()

	ctx, span := h.tracer.Start(ctx, "generate", trace.WithAttributes(
		attribute.String("log.type", req.Type),
		attribute.Int("log.count", req.Count),
	))
	defer span.End()

	gen, err := generator.Get(req.Type)
	if err != nil {
		h.reject(span, "invalid_type", err)
		return nil, err
	}

	count := max(req.Count, 0)
	if h.config.MaxCount > 0 && count > h.config.MaxCount {
		err := fmt.Errorf("%w: %d > %d", ErrCountTooLarge, count, h.config.MaxCount)
		h.reject(span, "count_too_large", err)
		return nil, err
	}

	seed, seeded := h.seedFor(req)
	span.SetAttributes(attribute.String("log.seed", strconv.FormatUint(seed, 10)))

	key := cache.Key(req.Type, count, seed)
	if seeded {
		if value, found := h.cache.Get(key); found {
			if records, ok := value.([]logtypes.Record); ok {
				if h.metric != nil {
					h.metric.IncGenerateCache(true)
				}
				span.SetAttributes(attribute.Bool("log.cached", true))
				h.observe(req.Type, count, seed, true, start)
				return &Batch{Type: req.Type, Seed: seed, Cached: true, Records: records}, nil
			}
		}
		if h.metric != nil {
			h.metric.IncGenerateCache(false)
		}
	}

	r := rand.New(rand.NewPCG(seed, streamSalt))
	now := h.now()
	records := make([]logtypes.Record, count)
	for i := range records {
		if i%cancelCheckInterval == 0 && ctx.Err() != nil {
			err := ctx.Err()
			h.reject(span, "cancelled", err)
			if h.metric != nil {
				h.metric.ObserveGenerateLatency(time.Since(start), req.Type, false)
			}
			return nil, err
		}
		records[i] = gen.Generate(r, now)
	}

	if seeded && !h.cache.Set(key, records, count) && h.log != nil {
		h.log.Debug().Str("key", key).Int("count", count).Msg("replay cache limit reached, batch not cached")
	}

	if h.metric != nil {
		h.metric.AddGenerateRecordsTotal(req.Type, count)
	}
	h.observe(req.Type, count, seed, false, start)

	return &Batch{Type: req.Type, Seed: seed, Records: records}, nil
}

// observe records latency and logs a completed batch
func (h *Handler) observe(logType string, count int, seed uint64, cached bool, start time.Time) {
	latency := time.Since(start)
	if h.metric != nil {
		h.metric.ObserveGenerateLatency(latency, logType, true)
	}
	if h.log != nil {
		h.log.Info().
			Str("type", logType).
			Int("count", count).
			Str("seed", strconv.FormatUint(seed, 10)).
			Bool("cached", cached).
			Dur("latency", latency).
			Msg("batch generated")
	}
}

// seedFor returns the seed of a request and whether the caller chose it
func (h *Handler) seedFor(req Request) (uint64, bool) {
	if req.Seed != nil {
		return *req.Seed, true
	}
	if h.seeds != nil {
		h.seedMu.Lock()
		defer h.seedMu.Unlock()
		return h.seeds.Uint64(), false
	}
	return rand.Uint64(), false
}

func (h *Handler) reject(span trace.Span, reason string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if h.metric != nil {
		h.metric.IncGenerateRejectedTotal(reason)
	}
	if h.log != nil {
		h.log.Warn().Err(err).Str("reason", reason).Msg("generate request rejected")
	}
}
