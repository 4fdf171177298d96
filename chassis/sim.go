package chassis

import (
	"context"
	"time"

	"dragon-ctrl-core/utils"
)

// SimConfig describes the simulated robot.
type SimConfig struct {
	// MaxSpeed is the floor speed at full command, in feet per second.
	MaxSpeed float64
	// Period is the time one Flush advances the simulation by.
	Period time.Duration
	// WallDistance, when positive, trips the contact sensor once the robot
	// has driven that far forward from where it started.
	WallDistance float64
}

// SimChassis is an in-memory drivetrain for dry runs. Flush integrates the
// latched speeds over one period.
type SimChassis struct {
	cfg         SimConfig
	left, right float64
	brake       bool
	leftDist    float64
	rightDist   float64
	odometer    float64
	contact     bool
	line        LineState
	lights      int
}

func NewSimChassis(cfg SimConfig) *SimChassis {
	if cfg.MaxSpeed <= 0 {
		cfg.MaxSpeed = 10
	}
	if cfg.Period <= 0 {
		cfg.Period = 20 * time.Millisecond
	}
	return &SimChassis{cfg: cfg, line: LineWWW}
}

func (c *SimChassis) SetSpeeds(left, right float64) {
	c.left = utils.ClampSpeed(left)
	c.right = utils.ClampSpeed(right)
}

func (c *SimChassis) Speeds() (float64, float64) { return c.left, c.right }

func (c *SimChassis) SetBrakeMode() { c.brake = true }
func (c *SimChassis) SetCoastMode() { c.brake = false }

// BrakeMode reports the neutral mode last requested.
func (c *SimChassis) BrakeMode() bool { return c.brake }

func (c *SimChassis) ResetDistance() {
	c.leftDist = 0
	c.rightDist = 0
}

func (c *SimChassis) LeftDistance() float64  { return c.leftDist }
func (c *SimChassis) RightDistance() float64 { return c.rightDist }
func (c *SimChassis) LeftVelocity() float64  { return c.left * c.cfg.MaxSpeed }
func (c *SimChassis) RightVelocity() float64 { return c.right * c.cfg.MaxSpeed }

func (c *SimChassis) IsContactTripped() bool {
	if c.contact {
		return true
	}
	return c.cfg.WallDistance > 0 && c.odometer >= c.cfg.WallDistance
}

// SetContact forces the contact sensor.
func (c *SimChassis) SetContact(on bool) { c.contact = on }

func (c *SimChassis) LineState() LineState { return c.line }

// SetLineState sets what the trackers report.
func (c *SimChassis) SetLineState(s LineState) { c.line = s }

func (c *SimChassis) RefreshLineIndicators() { c.lights++ }

// Refreshes counts RefreshLineIndicators calls.
func (c *SimChassis) Refreshes() int { return c.lights }

// Flush advances the simulation by one period.
func (c *SimChassis) Flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dt := c.cfg.Period.Seconds()
	dl := c.left * c.cfg.MaxSpeed * dt
	dr := c.right * c.cfg.MaxSpeed * dt
	c.leftDist += dl
	c.rightDist += dr
	c.odometer += (dl + dr) / 2
	return nil
}
