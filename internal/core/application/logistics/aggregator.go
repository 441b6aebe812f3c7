// Package logistics fronts the carrier API with caching, rate limiting,
// retries and a synthetic price fallback.
//
// Rate lookups never fail: when the carrier is slow, failing or the route is
// over its request budget, deterministic estimates are returned instead and
// marked with shipping.SourceFallback. Tracking falls back only to the last
// state the carrier reported for the same reference. Shipment creation has no
// fallback and surfaces upstream errors.
package logistics

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/shipping"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sethvargo/go-retry"
)

const (
	defaultRatesTTL        = 5 * time.Minute
	defaultTrackingTTL     = time.Minute
	defaultCacheSize       = 1024
	defaultRatesTimeout    = 10 * time.Second
	defaultShipmentTimeout = 15 * time.Second
	defaultTrackingTimeout = 8 * time.Second
	defaultHealthTimeout   = 5 * time.Second
	defaultLimit           = 10
	defaultWindow          = time.Minute
	defaultAttempts        = 3
	defaultBackoffBase     = time.Second
	defaultBackoffCap      = 10 * time.Second
	defaultCurrency        = "USD"
)

// Options tunes the aggregator. Zero fields take the defaults above.
type Options struct {
	RatesTTL        time.Duration
	TrackingTTL     time.Duration
	CacheSize       int
	RatesTimeout    time.Duration
	ShipmentTimeout time.Duration
	TrackingTimeout time.Duration
	HealthTimeout   time.Duration
	RequestsPerKey  int
	Window          time.Duration
	Attempts        int
	BackoffBase     time.Duration
	BackoffCap      time.Duration
	Currency        string
	HealthQuery     shipping.RateQuery
	Now             func() time.Time
}

func (o Options) withDefaults() Options {
	if o.RatesTTL <= 0 {
		o.RatesTTL = defaultRatesTTL
	}
	if o.TrackingTTL <= 0 {
		o.TrackingTTL = defaultTrackingTTL
	}
	if o.CacheSize <= 0 {
		o.CacheSize = defaultCacheSize
	}
	if o.RatesTimeout <= 0 {
		o.RatesTimeout = defaultRatesTimeout
	}
	if o.ShipmentTimeout <= 0 {
		o.ShipmentTimeout = defaultShipmentTimeout
	}
	if o.TrackingTimeout <= 0 {
		o.TrackingTimeout = defaultTrackingTimeout
	}
	if o.HealthTimeout <= 0 {
		o.HealthTimeout = defaultHealthTimeout
	}
	if o.RequestsPerKey <= 0 {
		o.RequestsPerKey = defaultLimit
	}
	if o.Window <= 0 {
		o.Window = defaultWindow
	}
	if o.Attempts <= 0 {
		o.Attempts = defaultAttempts
	}
	if o.BackoffBase <= 0 {
		o.BackoffBase = defaultBackoffBase
	}
	if o.BackoffCap <= 0 {
		o.BackoffCap = defaultBackoffCap
	}
	if o.Currency == "" {
		o.Currency = defaultCurrency
	}
	if o.HealthQuery.OriginPostcode == "" {
		o.HealthQuery = shipping.RateQuery{
			OriginPostcode:      "10001",
			DestinationPostcode: "94105",
			WeightGrams:         1000,
		}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

type rateEntry struct {
	quotes    []shipping.Quote
	fetchedAt time.Time
}

// trackingEntry outlives TrackingTTL: past it the entry is no longer served
// as fresh but still answers when the carrier fails.
type trackingEntry struct {
	info      shipping.TrackingInfo
	fetchedAt time.Time
}

// Aggregator is safe for concurrent use. One instance is shared by the HTTP
// adapter, the scheduling command and the carrier health job.
type Aggregator struct {
	api      ports.CarrierAPI
	opts     Options
	rates    *expirable.LRU[string, rateEntry]
	tracking *lru.Cache[string, trackingEntry]
	limiter  *FixedWindowLimiter
	logger   *slog.Logger
}

func NewAggregator(api ports.CarrierAPI, opts Options, logger *slog.Logger) *Aggregator {
	opts = opts.withDefaults()
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	// CacheSize is positive after withDefaults, the only failure lru.New has.
	tracking, _ := lru.New[string, trackingEntry](opts.CacheSize)
	return &Aggregator{
		api:      api,
		opts:     opts,
		rates:    expirable.NewLRU[string, rateEntry](opts.CacheSize, nil, opts.RatesTTL),
		tracking: tracking,
		limiter:  NewFixedWindowLimiter(opts.RequestsPerKey, opts.Window, opts.Now),
		logger:   logger.With("component", "shipping_aggregator"),
	}
}

// FetchRates returns cached quotes, fresh carrier quotes, or fallback
// estimates, in that order of preference. The error is non-nil only for an
// invalid query.
func (a *Aggregator) FetchRates(ctx context.Context, query shipping.RateQuery) (shipping.RateResult, error) {
	if err := query.Validate(); err != nil {
		return shipping.RateResult{}, err
	}

	key := query.CacheKey()
	if entry, ok := a.rates.Get(key); ok {
		return shipping.RateResult{
			Quotes:    slices.Clone(entry.quotes),
			Source:    shipping.SourceCached,
			FetchedAt: entry.fetchedAt,
		}, nil
	}

	if !a.limiter.Allow(query.RouteKey()) {
		a.logger.WarnContext(ctx, "carrier rate limit reached, using fallback",
			"route", query.RouteKey(), "error", errs.ErrRateLimited)
		return a.fallback(query), nil
	}

	callCtx, cancel := context.WithTimeout(ctx, a.opts.RatesTimeout)
	defer cancel()

	quotes, err := a.api.Rates(callCtx, query)
	if err == nil && len(quotes) == 0 {
		err = errors.New("carrier returned no quotes")
	}
	if err != nil {
		upstream := errs.NewUpstreamError("fetch rates", 1, err)
		a.logger.WarnContext(ctx, "carrier rates unavailable, using fallback",
			"route", query.RouteKey(), "timeout", upstream.Timeout, "error", err)
		return a.fallback(query), nil
	}

	result := a.result(quotes, shipping.SourcePrimary)
	a.rates.Add(key, rateEntry{quotes: slices.Clone(quotes), fetchedAt: result.FetchedAt})
	return result, nil
}

// CreateShipment books a shipment, retrying with capped exponential backoff.
// Every attempt has its own timeout. Failures after the last attempt are
// returned as an UpstreamError carrying the final cause. Rejections and
// not-found answers are not retried.
func (a *Aggregator) CreateShipment(ctx context.Context, request shipping.ShipmentRequest) (shipping.ShipmentResult, error) {
	if err := request.Validate(); err != nil {
		return shipping.ShipmentResult{}, err
	}

	backoff := retry.WithCappedDuration(a.opts.BackoffCap, retry.NewExponential(a.opts.BackoffBase))
	backoff = retry.WithMaxRetries(uint64(a.opts.Attempts-1), backoff)

	var (
		result   shipping.ShipmentResult
		attempts int
	)
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		callCtx, cancel := context.WithTimeout(ctx, a.opts.ShipmentTimeout)
		defer cancel()

		res, err := a.api.CreateShipment(callCtx, request)
		if err != nil {
			a.logger.WarnContext(ctx, "create shipment attempt failed",
				"order_id", request.OrderID, "attempt", attempts, "error", err)
			if isPermanent(err) {
				return err
			}
			return retry.RetryableError(err)
		}
		result = res
		return nil
	})
	if err != nil {
		return shipping.ShipmentResult{}, errs.NewUpstreamError("create shipment", attempts, err)
	}

	result.Attempts = attempts
	return result, nil
}

// TrackShipment returns tracking details, served from cache when fresh. When
// the carrier fails, the last known state for the reference is returned as
// cached; without one the upstream error is surfaced.
func (a *Aggregator) TrackShipment(ctx context.Context, reference string) (shipping.TrackingInfo, error) {
	if reference == "" {
		return shipping.TrackingInfo{}, errs.NewValueIsRequiredError("tracking reference")
	}
	entry, known := a.tracking.Get(reference)
	if known && a.opts.Now().Sub(entry.fetchedAt) < a.opts.TrackingTTL {
		return cachedTracking(entry), nil
	}

	callCtx, cancel := context.WithTimeout(ctx, a.opts.TrackingTimeout)
	defer cancel()

	info, err := a.api.Track(callCtx, reference)
	if err != nil {
		upstream := errs.NewUpstreamError("track shipment", 1, err)
		if known && !errors.Is(err, errs.ErrObjectNotFound) {
			a.logger.WarnContext(ctx, "carrier tracking unavailable, serving last known state",
				"reference", reference, "fetched_at", entry.fetchedAt, "timeout", upstream.Timeout, "error", err)
			return cachedTracking(entry), nil
		}
		return shipping.TrackingInfo{}, upstream
	}

	info.Source = shipping.SourcePrimary
	stored := info
	stored.Events = slices.Clone(info.Events)
	a.tracking.Add(reference, trackingEntry{info: stored, fetchedAt: a.opts.Now()})
	return info, nil
}

// HealthCheck issues one uncached rate request and reports its outcome.
func (a *Aggregator) HealthCheck(ctx context.Context) shipping.Health {
	callCtx, cancel := context.WithTimeout(ctx, a.opts.HealthTimeout)
	defer cancel()

	start := a.opts.Now()
	_, err := a.api.Rates(callCtx, a.opts.HealthQuery)
	health := shipping.Health{
		Healthy:   err == nil,
		Latency:   a.opts.Now().Sub(start),
		CheckedAt: a.opts.Now().UTC(),
	}
	if err != nil {
		health.Error = err.Error()
	}
	return health
}

func (a *Aggregator) fallback(query shipping.RateQuery) shipping.RateResult {
	return a.result(shipping.FallbackQuotes(query, a.opts.Currency), shipping.SourceFallback)
}

func cachedTracking(entry trackingEntry) shipping.TrackingInfo {
	info := entry.info
	info.Events = slices.Clone(entry.info.Events)
	info.Source = shipping.SourceCached
	return info
}

func isPermanent(err error) bool {
	return errors.Is(err, errs.ErrUpstreamRejected) || errors.Is(err, errs.ErrObjectNotFound)
}

func (a *Aggregator) result(quotes []shipping.Quote, source shipping.Source) shipping.RateResult {
	return shipping.RateResult{
		Quotes:    quotes,
		Source:    source,
		FetchedAt: a.opts.Now().UTC(),
	}
}
