package cowdodge

// UpdatePlayer advances the cow by one frame.
// Position integrates with last frame's speed before gravity is applied
// (semi-implicit Euler); changing the order changes how jumps feel.
func UpdatePlayer(s *State) {
	p := &s.Player

	p.Y += p.VerticalSpeed
	p.VerticalSpeed += p.Gravity

	floor := s.Config.Playfield.Height - p.Height
	if p.Y > floor {
		p.Y = floor
		p.VerticalSpeed = 0
	}
	if p.Y < 0 {
		p.Y = 0
		p.VerticalSpeed = 0
	}
}
