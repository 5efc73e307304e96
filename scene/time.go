package scene

// FrameTime describes the frame currently being processed. It is owned by the
// Manager and shared by every scene it creates.
type FrameTime struct {
	DeltaTime float64
	FixedStep float64
	Frame     int64
	Elapsed   float64
}

func (t *FrameTime) advance(dt float64) {
	t.DeltaTime = dt
	t.Elapsed += dt
	t.Frame++
}
