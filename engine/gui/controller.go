package gui

import (
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-shadows/common"
)

// Controller is a single panel row bound to a property.
type Controller interface {
	// Name returns the controller label.
	//
	// Returns:
	//   - string: the label
	Name() string

	draw(p *painter, r image.Rectangle)
	press(x float32, r image.Rectangle) bool
	drag(x float32, r image.Rectangle)
}

// NumberController edits a float property. Limits and step are optional; with
// both limits set the row shows a slider.
type NumberController struct {
	name    string
	binding common.FloatBinding

	min, max       float64
	hasMin, hasMax bool
	step           float64
	hasStep        bool
	decimals       int
	onChange       func(v float64)

	// drag on the value box scrubs relative to the press position
	scrubbing  bool
	scrubX     float32
	scrubStart float64
}

var _ Controller = &NumberController{}

func newNumberController(name string, binding common.FloatBinding) *NumberController {
	return &NumberController{name: name, binding: binding, decimals: 3}
}

func (c *NumberController) Name() string {
	return c.name
}

// SetName sets the label shown in the panel.
func (c *NumberController) SetName(name string) *NumberController {
	c.name = name
	return c
}

// Min sets the lower limit.
func (c *NumberController) Min(v float64) *NumberController {
	c.min, c.hasMin = v, true
	return c
}

// Max sets the upper limit.
func (c *NumberController) Max(v float64) *NumberController {
	c.max, c.hasMax = v, true
	return c
}

// Step sets the snapping increment and the displayed precision.
func (c *NumberController) Step(v float64) *NumberController {
	if v <= 0 {
		return c
	}
	c.step, c.hasStep = v, true
	c.decimals = decimalPlaces(v)
	return c
}

// OnChange registers fn to run after every SetValue.
func (c *NumberController) OnChange(fn func(v float64)) *NumberController {
	c.onChange = fn
	return c
}

// Limits returns the configured limits; unset limits are ±Inf.
func (c *NumberController) Limits() (lo, hi float64) {
	lo, hi = math.Inf(-1), math.Inf(1)
	if c.hasMin {
		lo = c.min
	}
	if c.hasMax {
		hi = c.max
	}
	return lo, hi
}

// StepSize returns the snapping increment, or 0 when unset.
func (c *NumberController) StepSize() float64 {
	return c.step
}

// Value reads the bound property.
func (c *NumberController) Value() float64 {
	return float64(c.binding.Get())
}

// SetValue clamps v to the limits, snaps it to the step grid anchored at the lower
// limit (or the upper one when only that is set), rounds to 15 significant digits
// and writes it through the binding.
//
// Parameters:
//   - v: the requested value
//
// Returns:
//   - *NumberController: the controller, for chaining
func (c *NumberController) SetValue(v float64) *NumberController {
	if math.IsNaN(v) {
		return c
	}
	v = c.clamp(v)
	if c.hasStep {
		v = c.clamp(c.snap(v))
	}
	v, _ = strconv.ParseFloat(strconv.FormatFloat(v, 'g', 15, 64), 64)
	c.binding.Set(float32(v))
	if c.onChange != nil {
		c.onChange(v)
	}
	return c
}

func (c *NumberController) clamp(v float64) float64 {
	if c.hasMin && v < c.min {
		v = c.min
	}
	if c.hasMax && v > c.max {
		v = c.max
	}
	return v
}

func (c *NumberController) snap(v float64) float64 {
	var offset float64
	if c.hasMin {
		offset = c.min
	} else if c.hasMax {
		offset = c.max
	}
	return math.Round((v-offset)/c.step)*c.step + offset
}

func (c *NumberController) hasSlider() bool {
	return c.hasMin && c.hasMax && c.max > c.min
}

func (c *NumberController) format() string {
	return strconv.FormatFloat(c.Value(), 'f', c.decimals, 64)
}

func (c *NumberController) press(x float32, r image.Rectangle) bool {
	box, slider := numberWidgets(r, c.hasSlider())
	switch {
	case c.hasSlider() && x >= float32(slider.Min.X):
		c.scrubbing = false
		c.setFromSlider(x, slider)
	case x >= float32(box.Min.X):
		c.scrubbing = true
		c.scrubX = x
		c.scrubStart = c.Value()
	default:
		return false
	}
	return true
}

func (c *NumberController) drag(x float32, r image.Rectangle) {
	if c.scrubbing {
		step := c.step
		if !c.hasStep {
			step = 0.01
		}
		c.SetValue(c.scrubStart + float64(x-c.scrubX)*step)
		return
	}
	_, slider := numberWidgets(r, c.hasSlider())
	c.setFromSlider(x, slider)
}

func (c *NumberController) setFromSlider(x float32, slider image.Rectangle) {
	if slider.Dx() <= 0 {
		return
	}
	t := common.Saturate((x - float32(slider.Min.X)) / float32(slider.Dx()))
	c.SetValue(c.min + float64(t)*(c.max-c.min))
}

// BooleanController edits a bool property with a checkbox.
type BooleanController struct {
	name     string
	binding  common.BoolBinding
	onChange func(v bool)
}

var _ Controller = &BooleanController{}

func newBooleanController(name string, binding common.BoolBinding) *BooleanController {
	return &BooleanController{name: name, binding: binding}
}

func (c *BooleanController) Name() string {
	return c.name
}

// SetName sets the label shown in the panel.
func (c *BooleanController) SetName(name string) *BooleanController {
	c.name = name
	return c
}

// OnChange registers fn to run after every SetValue.
func (c *BooleanController) OnChange(fn func(v bool)) *BooleanController {
	c.onChange = fn
	return c
}

// Value reads the bound flag.
func (c *BooleanController) Value() bool {
	return c.binding.Get()
}

// SetValue writes the bound flag.
func (c *BooleanController) SetValue(v bool) *BooleanController {
	c.binding.Set(v)
	if c.onChange != nil {
		c.onChange(v)
	}
	return c
}

// Toggle inverts the bound flag.
func (c *BooleanController) Toggle() *BooleanController {
	return c.SetValue(!c.Value())
}

func (c *BooleanController) press(float32, image.Rectangle) bool {
	c.Toggle()
	return false
}

func (c *BooleanController) drag(float32, image.Rectangle) {}

func decimalPlaces(v float64) int {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}
