package shooter

import (
	"context"

	"dragon-ctrl-core/utils"
)

// SimShooter records commands in memory. Its sensors are plain fields.
type SimShooter struct {
	out Outputs

	LoaderHome bool
	LeftLimit  bool
	RightLimit bool
}

func NewSimShooter() *SimShooter {
	return &SimShooter{LoaderHome: true}
}

func (s *SimShooter) SetWheelSpeed(speed float64)  { s.out.Wheel = utils.ClampSpeed(speed) }
func (s *SimShooter) SetLoaderSpeed(speed float64) { s.out.Loader = utils.ClampSpeed(speed) }
func (s *SimShooter) Align(speed float64)          { s.out.Align = utils.ClampSpeed(speed) }
func (s *SimShooter) IsLoaderInPosition() bool     { return s.LoaderHome }
func (s *SimShooter) AtLeftBound() bool            { return s.LeftLimit }
func (s *SimShooter) AtRightBound() bool           { return s.RightLimit }
func (s *SimShooter) Outputs() Outputs             { return s.out }

func (s *SimShooter) Flush(ctx context.Context) error { return ctx.Err() }
