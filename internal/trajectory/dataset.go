package trajectory

// Sample is one logged temperature step
type Sample struct {
	Temperature float64
	Distance    float64
}

// Dataset is an ordered annealing trajectory. Temperatures and Distances
// always have the same length; index i of both belongs to the same line.
type Dataset struct {
	Temperatures []float64
	Distances    []float64
	// Skipped counts data lines dropped as malformed
	Skipped int
}

// Len returns the number of samples
func (d *Dataset) Len() int {
	return len(d.Distances)
}

// Empty reports whether no sample was read
func (d *Dataset) Empty() bool {
	return d.Len() == 0
}

// Samples returns the trajectory as pairs, in file order
func (d *Dataset) Samples() []Sample {
	out := make([]Sample, d.Len())
	for i := range out {
		out[i] = Sample{Temperature: d.Temperatures[i], Distance: d.Distances[i]}
	}
	return out
}

func (d *Dataset) add(temperature, distance float64) {
	d.Temperatures = append(d.Temperatures, temperature)
	d.Distances = append(d.Distances, distance)
}
