package controller

import "sync"

type element struct {
	value    string
	text     string
	visible  bool
	disabled bool
	invalid  bool
}

// Page is an in-memory View. It is safe for concurrent use. Writes to
// elements the page does not have are ignored.
type Page struct {
	mu       sync.RWMutex
	elements map[string]*element
}

// NewPage creates a page holding exactly the given elements.
func NewPage(ids ...string) *Page {
	p := &Page{elements: make(map[string]*element, len(ids))}
	for _, id := range ids {
		p.elements[id] = &element{}
	}
	return p
}

// DefaultElements lists every element of the optimization form.
var DefaultElements = []string{
	FeedwaterTemp, SteamPressure, FuelFlow, Efficiency,
	OptimizeButton, Loading, ResultsSection, EnergyResults, SensitivityResults,
	NoResults, EnergyChart, SensitivityChart,
	CurrentEnergy, OutputEnergy, Savings, OptimizedEfficiency,
	MobileSummary, MobileCurrentEnergy, MobileSavings,
}

// NewDefaultPage creates a page with every element of the optimization form.
func NewDefaultPage() *Page {
	return NewPage(DefaultElements...)
}

func (p *Page) Has(id string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.elements[id]
	return ok
}

func (p *Page) Value(id string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if el, ok := p.elements[id]; ok {
		return el.value
	}
	return ""
}

// SetValue fills an input, as a user typing into it would.
func (p *Page) SetValue(id, value string) {
	p.update(id, func(el *element) { el.value = value })
}

func (p *Page) SetText(id, text string) {
	p.update(id, func(el *element) { el.text = text })
}

func (p *Page) SetVisible(id string, visible bool) {
	p.update(id, func(el *element) { el.visible = visible })
}

func (p *Page) SetDisabled(id string, disabled bool) {
	p.update(id, func(el *element) { el.disabled = disabled })
}

func (p *Page) SetInvalid(id string, invalid bool) {
	p.update(id, func(el *element) { el.invalid = invalid })
}

// Text returns the text content of id.
func (p *Page) Text(id string) string {
	return p.read(id).text
}

// Visible reports whether id is shown.
func (p *Page) Visible(id string) bool {
	return p.read(id).visible
}

// Disabled reports whether id is disabled.
func (p *Page) Disabled(id string) bool {
	return p.read(id).disabled
}

// Invalid reports whether id carries the invalid-input mark.
func (p *Page) Invalid(id string) bool {
	return p.read(id).invalid
}

func (p *Page) update(id string, fn func(*element)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if el, ok := p.elements[id]; ok {
		fn(el)
	}
}

func (p *Page) read(id string) element {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if el, ok := p.elements[id]; ok {
		return *el
	}
	return element{}
}
