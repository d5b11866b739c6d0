// Package controller drives the optimization form: it reads the four inputs
// from a View, validates them, calls an Optimizer and writes the results and
// charts back to the View through a Renderer.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/iwvelando/boiler-optimizer/pkg/api"
	"github.com/iwvelando/boiler-optimizer/pkg/format"
	"github.com/iwvelando/boiler-optimizer/pkg/plot"
	"github.com/iwvelando/boiler-optimizer/pkg/validation"
	"go.uber.org/zap"
)

// Page element identifiers.
const (
	FeedwaterTemp = validation.FieldFeedwaterTemp
	SteamPressure = validation.FieldSteamPressure
	FuelFlow      = validation.FieldFuelFlow
	Efficiency    = validation.FieldEfficiency

	OptimizeButton     = "optimize-btn"
	Loading            = "loading"
	ResultsSection     = "results-section"
	EnergyResults      = "energy-results"
	SensitivityResults = "sensitivity-results"
	NoResults          = "no-results"
	EnergyChart        = "energy-chart"
	SensitivityChart   = "sensitivity-chart"

	CurrentEnergy       = "current_energy"
	OutputEnergy        = "output_energy"
	Savings             = "savings"
	OptimizedEfficiency = "optimized_efficiency"

	MobileSummary       = "mobile-results-summary"
	MobileCurrentEnergy = "mobile-current-energy"
	MobileSavings       = "mobile-savings"
)

// Chart names used in inline chart errors.
const (
	EnergyChartName      = "Energy Consumption Chart"
	SensitivityChartName = "Sensitivity Analysis Chart"
)

// Fallback messages for failed responses.
const (
	MessageUnknownAPIError = "Unknown API error"
	MessageNoResults       = "No results in response"
)

// ErrSubmitInProgress is returned by Submit while another submission is
// outstanding.
var ErrSubmitInProgress = errors.New("submission already in progress")

// APIError is an application-level failure reported by the optimizer in an
// otherwise successful response.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// View is the page the controller reads from and writes to.
type View interface {
	Value(id string) string
	SetText(id, text string)
	SetVisible(id string, visible bool)
	SetDisabled(id string, disabled bool)
	SetInvalid(id string, invalid bool)
	Has(id string) bool
}

// Renderer draws and resizes charts inside page containers.
type Renderer interface {
	Render(containerID string, data []map[string]interface{}, layout map[string]interface{}) error
	Resize(containerID string) error
}

// Optimizer answers optimization requests.
type Optimizer interface {
	Optimize(ctx context.Context, req api.OptimizationRequest) (*api.OptimizationResponse, error)
}

// Controller handles form submission. It allows at most one outstanding
// submission; Resize may be called concurrently with Submit.
type Controller struct {
	view      View
	renderer  Renderer
	optimizer Optimizer
	theme     plot.Theme
	logger    *zap.Logger

	mu     sync.Mutex
	busy   bool
	active []string
}

// New creates a Controller using the default chart theme. A nil renderer
// discards charts.
func New(view View, renderer Renderer, optimizer Optimizer, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if renderer == nil {
		renderer = nopRenderer{}
	}
	return &Controller{
		view:      view,
		renderer:  renderer,
		optimizer: optimizer,
		theme:     plot.DefaultTheme,
		logger:    logger,
	}
}

// Init puts the page into its idle state.
func (c *Controller) Init() {
	c.view.SetVisible(Loading, false)
	c.hideResults()
	c.view.SetDisabled(OptimizeButton, false)
}

// hideResults hides every result container, chart containers included.
func (c *Controller) hideResults() {
	for _, id := range []string{ResultsSection, EnergyResults, SensitivityResults, NoResults, EnergyChart, SensitivityChart} {
		c.view.SetVisible(id, false)
	}
	if c.view.Has(MobileSummary) {
		c.view.SetVisible(MobileSummary, false)
	}
}

// Submit runs one form submission. On success the response is returned and
// written to the page; otherwise the error is shown inline and returned.
func (c *Controller) Submit(ctx context.Context) (*api.OptimizationResponse, error) {
	const op = "controller.Submit"

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	c.busy = true
	c.mu.Unlock()

	c.hideResults()
	c.view.SetVisible(Loading, true)
	c.view.SetDisabled(OptimizeButton, true)

	defer func() {
		c.view.SetVisible(Loading, false)
		c.view.SetDisabled(OptimizeButton, false)
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	req, err := c.readInputs()
	if err != nil {
		var inputErr *validation.InputError
		if errors.As(err, &inputErr) {
			c.logger.Debug("form rejected",
				zap.String("op", op),
				zap.String("detail", inputErr.Detail()),
			)
		}
		c.showError(fmt.Sprintf("Error: %s.", err.Error()))
		return nil, err
	}

	resp, err := c.optimizer.Optimize(ctx, req)
	if err != nil {
		return nil, c.fail(op, err)
	}
	if msg, failed := resp.Failure(); failed {
		if msg == "" {
			msg = MessageUnknownAPIError
		}
		return nil, c.fail(op, &APIError{Message: msg})
	}
	if resp.Results == nil {
		return nil, c.fail(op, &APIError{Message: MessageNoResults})
	}

	c.showResults(resp)
	return resp, nil
}

func (c *Controller) readInputs() (api.OptimizationRequest, error) {
	values := make(map[string]float64, len(validation.Fields))
	for _, field := range validation.Fields {
		v, err := validation.ParseNumber(field, c.view.Value(field))
		if err != nil {
			return api.OptimizationRequest{}, err
		}
		values[field] = v
	}

	if err := validation.CheckRange(values[FuelFlow], values[Efficiency]); err != nil {
		return api.OptimizationRequest{}, err
	}

	return api.OptimizationRequest{
		FeedwaterTemp: values[FeedwaterTemp],
		SteamPressure: values[SteamPressure],
		FuelFlow:      values[FuelFlow],
		Efficiency:    values[Efficiency],
	}, nil
}

func (c *Controller) fail(op string, err error) error {
	c.logger.Error("optimization failed",
		zap.String("op", op),
		zap.Error(err),
	)
	c.showError(fmt.Sprintf("Error processing form: %s. Please check inputs and try again.", err.Error()))
	return err
}

func (c *Controller) showError(msg string) {
	c.view.SetText(NoResults, msg)
	c.view.SetVisible(NoResults, true)
}

func (c *Controller) showResults(resp *api.OptimizationResponse) {
	r := resp.Results
	c.view.SetText(CurrentEnergy, format.Result(r.CurrentEnergy))
	c.view.SetText(OutputEnergy, format.Result(r.OutputEnergy))
	c.view.SetText(Savings, format.Result(r.Savings))
	c.view.SetText(OptimizedEfficiency, format.Result(r.OptimizedEfficiency))

	if c.view.Has(MobileSummary) {
		c.view.SetText(MobileCurrentEnergy, format.Energy(r.CurrentEnergy))
		c.view.SetText(MobileSavings, format.Energy(r.Savings))
		c.view.SetVisible(MobileSummary, true)
	}

	c.view.SetVisible(ResultsSection, true)
	c.view.SetVisible(EnergyResults, true)
	c.renderChart(EnergyChart, resp.PlotJSON, EnergyChartName)

	if resp.SensitivityJSON != nil {
		c.view.SetVisible(SensitivityResults, true)
		c.renderChart(SensitivityChart, resp.SensitivityJSON, SensitivityChartName)
	}
}

// renderChart draws spec into container id. Failures are written into the
// container and never propagate.
func (c *Controller) renderChart(id string, spec *plot.Spec, name string) {
	const op = "controller.renderChart"

	if !c.view.Has(id) {
		c.logger.Error("chart container not found",
			zap.String("op", op),
			zap.String("container", id),
		)
		return
	}
	c.view.SetVisible(id, true)

	if !spec.Valid() {
		c.logger.Error("invalid chart data",
			zap.String("op", op),
			zap.String("chart", name),
		)
		c.view.SetText(id, fmt.Sprintf("Error: %s data not found.", name))
		c.deactivate(id)
		return
	}

	if err := c.draw(id, spec); err != nil {
		c.logger.Error("chart rendering failed",
			zap.String("op", op),
			zap.String("chart", name),
			zap.Error(err),
		)
		c.view.SetText(id, fmt.Sprintf("Error loading %s: %v", name, err))
		c.deactivate(id)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, existing := range c.active {
		if existing == id {
			return
		}
	}
	c.active = append(c.active, id)
}

// deactivate drops id from the charts kept in step with the viewport.
func (c *Controller) deactivate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.active {
		if existing == id {
			c.active = append(c.active[:i], c.active[i+1:]...)
			return
		}
	}
}

func (c *Controller) draw(id string, spec *plot.Spec) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return c.renderer.Render(id, spec.Data, plot.ApplyTheme(spec.Layout, c.theme))
}

type nopRenderer struct{}

func (nopRenderer) Render(string, []map[string]interface{}, map[string]interface{}) error { return nil }
func (nopRenderer) Resize(string) error                                                  { return nil }

// Resize asks the renderer to fit every rendered chart to its container.
func (c *Controller) Resize() {
	c.mu.Lock()
	charts := append([]string(nil), c.active...)
	c.mu.Unlock()

	for _, id := range charts {
		if err := c.renderer.Resize(id); err != nil {
			c.logger.Warn("chart resize failed",
				zap.String("op", "controller.Resize"),
				zap.String("container", id),
				zap.Error(err),
			)
		}
	}
}

// ActiveCharts returns the containers holding a rendered chart.
func (c *Controller) ActiveCharts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.active...)
}

// CheckField marks input id invalid when its value is not a number. An empty
// value leaves the mark untouched.
func (c *Controller) CheckField(id string) {
	raw := c.view.Value(id)
	if strings.TrimSpace(raw) == "" {
		return
	}
	_, err := validation.ParseNumber(id, raw)
	c.view.SetInvalid(id, err != nil)
}
