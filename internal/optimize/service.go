// Package optimize turns an optimization request into results and charts.
package optimize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iwvelando/boiler-optimizer/internal/boiler"
	"github.com/iwvelando/boiler-optimizer/internal/cache"
	"github.com/iwvelando/boiler-optimizer/internal/metrics"
	"github.com/iwvelando/boiler-optimizer/pkg/api"
	"github.com/iwvelando/boiler-optimizer/pkg/constants"
	"github.com/iwvelando/boiler-optimizer/pkg/plot"
	"github.com/iwvelando/boiler-optimizer/pkg/validation"
	"go.uber.org/zap"
)

// Chart titles and axis labels.
const (
	EnergyChartTitle      = "Energy Consumption"
	SensitivityChartTitle = "Savings vs. Feedwater Temperature"
	ScenarioAxis          = "Scenario"
	EnergyAxis            = "Energy (MJ/s)"
	FeedwaterAxis         = "Feedwater Temp (°C)"
	SavingsAxis           = "Savings (MJ/s)"
)

// Service computes optimization responses, consulting a cache first.
type Service struct {
	logger *zap.Logger
	cache  cache.Cache
}

// NewService constructs a Service. A nil cache disables caching.
func NewService(logger *zap.Logger, c cache.Cache) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if c == nil {
		c = cache.Nop{}
	}
	return &Service{logger: logger, cache: c}
}

// Optimize validates the request and returns the full response. Input errors
// are returned as-is (they wrap *validation.InputError); they are never cached.
func (s *Service) Optimize(ctx context.Context, req api.OptimizationRequest) (*api.OptimizationResponse, error) {
	start := time.Now()
	key := cache.Key(req.FeedwaterTemp, req.SteamPressure, req.FuelFlow, req.Efficiency)

	if cached, ok := s.lookup(ctx, key); ok {
		s.observe(metrics.OutcomeSuccess, start)
		return cached, nil
	}

	if err := ctx.Err(); err != nil {
		s.observe(metrics.OutcomeError, start)
		return nil, fmt.Errorf("optimize: %w", err)
	}

	resp, err := Build(req)
	if err != nil {
		var inputErr *validation.InputError
		if errors.As(err, &inputErr) {
			s.observe(metrics.OutcomeInvalid, start)
		} else {
			s.observe(metrics.OutcomeError, start)
		}
		return nil, err
	}

	s.store(ctx, key, resp)
	s.observe(metrics.OutcomeSuccess, start)

	s.logger.Debug("optimization computed",
		zap.String("op", "optimize.Optimize"),
		zap.Float64("savings", resp.Results.Savings),
		zap.Duration("duration", time.Since(start)),
	)
	return resp, nil
}

// Build computes results, thermodynamic state and both charts without caching.
func Build(req api.OptimizationRequest) (*api.OptimizationResponse, error) {
	in := req.Inputs()

	results, err := boiler.Calculate(in)
	if err != nil {
		return nil, err
	}

	points, err := boiler.Sensitivity(in)
	if err != nil {
		return nil, err
	}

	thermo, err := boiler.SteamState(in)
	if err != nil {
		return nil, err
	}

	return &api.OptimizationResponse{
		Status:          api.StatusSuccess,
		Results:         &results,
		PlotJSON:        EnergyChart(results),
		SensitivityJSON: SensitivityChart(points),
		Thermodynamics:  &thermo,
	}, nil
}

// EnergyChart compares the current and optimized fuel energy.
func EnergyChart(results boiler.Results) *plot.Spec {
	return plot.Bar(EnergyChartTitle, ScenarioAxis, EnergyAxis,
		[]string{"Current", "Optimized"},
		[]float64{results.CurrentEnergy, results.OptimizedEnergy()},
		constants.PlotColor,
	)
}

// SensitivityChart plots savings against feedwater temperature.
func SensitivityChart(points []boiler.SensitivityPoint) *plot.Spec {
	temps, savings := boiler.Series(points)
	return plot.Line(SensitivityChartTitle, FeedwaterAxis, SavingsAxis, temps, savings, constants.PlotColor)
}

func (s *Service) lookup(ctx context.Context, key string) (*api.OptimizationResponse, bool) {
	raw, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache lookup failed",
			zap.String("op", "optimize.lookup"),
			zap.Error(err),
		)
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return nil, false
	}
	if !found {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}

	var resp api.OptimizationResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		s.logger.Warn("discarding undecodable cache entry",
			zap.String("op", "optimize.lookup"),
			zap.String("key", key),
			zap.Error(err),
		)
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return nil, false
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return &resp, true
}

func (s *Service) store(ctx context.Context, key string, resp *api.OptimizationResponse) {
	raw, err := json.Marshal(resp)
	if err != nil {
		s.logger.Warn("failed to encode response for cache",
			zap.String("op", "optimize.store"),
			zap.Error(err),
		)
		return
	}
	if err := s.cache.Set(ctx, key, raw); err != nil {
		s.logger.Warn("cache store failed",
			zap.String("op", "optimize.store"),
			zap.Error(fmt.Errorf("key %s: %w", key, err)),
		)
	}
}

func (s *Service) observe(outcome string, start time.Time) {
	metrics.OptimizeRequests.WithLabelValues(outcome).Inc()
	metrics.OptimizeDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}
