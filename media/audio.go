package media

// MixAudio folds a composite's layers into a single interleaved buffer by
// saturating addition, clamping per add in layer order. The buffer is sized
// to the composite's format; layers with short or absent audio contribute
// what they have.
func MixAudio(c *CompositeFrame) []int16 {
	if c == nil {
		return nil
	}
	out := make([]int16, c.Format.SamplesPerTick())
	for _, l := range c.layers {
		n := min(len(out), len(l.Audio))
		for i := 0; i < n; i++ {
			out[i] = addSat(out[i], l.Audio[i])
		}
	}
	return out
}

func addSat(a, b int16) int16 {
	s := int(a) + int(b)
	if s > 32767 {
		return 32767
	}
	if s < -32768 {
		return -32768
	}
	return int16(s)
}
