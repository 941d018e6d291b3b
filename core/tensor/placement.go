package tensor

import "fmt"

// DType is the precision of a tensor's elements.
type DType int

const (
	// Float64 stores elements at full double precision.
	Float64 DType = iota
	// Float32 rounds every element to single precision.
	Float32
)

func (d DType) String() string {
	switch d {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	default:
		return fmt.Sprintf("DType(%d)", int(d))
	}
}

// Device names the compute device an array is allocated on.
type Device string

// CPU is the default device.
const CPU Device = "cpu"

// Placement is the device and precision of an array. Two arrays can only be
// combined when their placements are equal.
type Placement struct {
	Device Device
	DType  DType
}

// DefaultPlacement is cpu/float64.
var DefaultPlacement = Placement{Device: CPU, DType: Float64}

// On returns a placement on device d with precision dt.
func On(d Device, dt DType) Placement {
	return Placement{Device: d, DType: dt}
}

func (p Placement) String() string {
	return fmt.Sprintf("%s/%s", p.Device, p.DType)
}

// Round rounds v to the placement's precision.
func (p Placement) Round(v float64) float64 {
	if p.DType == Float32 {
		return float64(float32(v))
	}
	return v
}

// RoundSlice rounds every element of data in place.
func (p Placement) RoundSlice(data []float64) {
	if p.DType != Float32 {
		return
	}
	for i, v := range data {
		data[i] = float64(float32(v))
	}
}
