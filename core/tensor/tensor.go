// Package tensor provides the numeric array type exchanged by scimlstudio.
//
// A Tensor is a rank 1 (vector) or rank 2 (matrix) array of floating-point
// values tagged with a Placement: the device it is allocated on and its
// precision. Operations never migrate data between placements; callers
// convert explicitly with To.
//
// Tensors implement gonum's mat.Matrix, so they can be passed to any gonum
// routine. A vector reads as an n×1 column.
package tensor

import (
	"fmt"
	"reflect"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/scimlstudio/scimlstudio/pkg/errors"
)

// Tensor is a dense rank 1 or rank 2 array stored in row-major order.
type Tensor struct {
	data      []float64
	shape     []int
	placement Placement
}

var _ mat.Matrix = (*Tensor)(nil)

// NewTensor creates a tensor on the default placement (cpu, float64).
// data is used as backing storage without copying, so later writes to data
// are visible through the tensor.
func NewTensor(data []float64, shape ...int) (*Tensor, error) {
	return NewTensorOn(DefaultPlacement, data, shape...)
}

// NewTensorOn creates a tensor on the given placement. Float64 placements
// share data like NewTensor. Float32 placements store a rounded copy and leave
// data untouched.
func NewTensorOn(p Placement, data []float64, shape ...int) (*Tensor, error) {
	if err := checkShape("NewTensor", len(data), shape); err != nil {
		return nil, err
	}
	if p.DType == Float32 {
		data = append([]float64(nil), data...)
		p.RoundSlice(data)
	}
	return &Tensor{
		data:      data,
		shape:     append([]int(nil), shape...),
		placement: p,
	}, nil
}

func checkShape(op string, n int, shape []int) error {
	if len(shape) == 0 {
		return errors.NewRankError(op, "shape", 2, 0)
	}
	if len(shape) > 2 {
		return errors.NewRankError(op, "shape", 2, len(shape))
	}

	size := 1
	for _, s := range shape {
		if s <= 0 {
			return errors.NewValueError(op, "all dimensions must be positive")
		}
		size *= s
	}
	if n != size {
		return errors.NewDimensionError(op, size, n, 0)
	}
	return nil
}

// NewTensorFromDense creates a rank 2 tensor sharing storage with dense when
// it is contiguous, and copying it otherwise.
func NewTensorFromDense(dense *mat.Dense) *Tensor {
	r, c := dense.Dims()
	raw := dense.RawMatrix()
	var data []float64
	if raw.Stride == c {
		data = raw.Data[:r*c]
	} else {
		data = make([]float64, r*c)
		for i := 0; i < r; i++ {
			copy(data[i*c:(i+1)*c], raw.Data[i*raw.Stride:i*raw.Stride+c])
		}
	}
	return &Tensor{
		data:      data,
		shape:     []int{r, c},
		placement: DefaultPlacement,
	}
}

// NewVector creates a rank 1 tensor on the default placement holding a copy
// of data.
func NewVector(data []float64) (*Tensor, error) {
	return NewTensor(append([]float64(nil), data...), len(data))
}

// Full creates a tensor with every element set to v.
func Full(p Placement, v float64, shape ...int) (*Tensor, error) {
	size := 1
	for _, s := range shape {
		size *= s
	}
	if size < 0 {
		size = 0
	}
	data := make([]float64, size)
	for i := range data {
		data[i] = v
	}
	return NewTensorOn(p, data, shape...)
}

// NewZeros creates a zero-filled tensor.
func NewZeros(p Placement, shape ...int) (*Tensor, error) {
	return Full(p, 0, shape...)
}

// NewOnes creates a tensor filled with ones.
func NewOnes(p Placement, shape ...int) (*Tensor, error) {
	return Full(p, 1, shape...)
}

// AsTensor converts v to a Tensor. Supported inputs are *Tensor (returned
// as is), *mat.Dense and other mat.Matrix values (rank 2), []float64 (rank 1)
// and rectangular [][]float64 (rank 2). Everything else fails with
// ErrTypeMismatch.
func AsTensor(v interface{}) (*Tensor, error) {
	switch x := v.(type) {
	case *Tensor:
		if x == nil {
			return nil, errors.NewTypeError("AsTensor", v)
		}
		return x, nil
	case *mat.Dense:
		if x == nil || x.IsEmpty() {
			return nil, errors.NewTypeError("AsTensor", v)
		}
		var clone mat.Dense
		clone.CloneFrom(x)
		return NewTensorFromDense(&clone), nil
	case []float64:
		return NewVector(x)
	case [][]float64:
		if len(x) == 0 {
			return nil, errors.NewValueError("AsTensor", "no rows")
		}
		c := len(x[0])
		data := make([]float64, 0, len(x)*c)
		for i, row := range x {
			if len(row) != c {
				return nil, errors.NewDimensionError("AsTensor", c, len(row), i)
			}
			data = append(data, row...)
		}
		return NewTensor(data, len(x), c)
	case mat.Matrix:
		if rv := reflect.ValueOf(x); rv.Kind() == reflect.Ptr && rv.IsNil() {
			return nil, errors.NewTypeError("AsTensor", v)
		}
		if e, ok := x.(interface{ IsEmpty() bool }); ok && e.IsEmpty() {
			return nil, errors.NewTypeError("AsTensor", v)
		}
		r, c := x.Dims()
		data := make([]float64, 0, r*c)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				data = append(data, x.At(i, j))
			}
		}
		return NewTensor(data, r, c)
	default:
		return nil, errors.NewTypeError("AsTensor", v)
	}
}

// Shape returns a copy of the tensor's shape.
func (t *Tensor) Shape() []int {
	return append([]int{}, t.shape...)
}

// Ndim returns the rank of the tensor.
func (t *Tensor) Ndim() int {
	return len(t.shape)
}

// Len returns the number of elements.
func (t *Tensor) Len() int {
	return len(t.data)
}

// Placement returns where the tensor is allocated.
func (t *Tensor) Placement() Placement {
	return t.placement
}

// Dims returns the number of rows and columns. A vector of length n is n×1.
func (t *Tensor) Dims() (int, int) {
	if len(t.shape) == 1 {
		return t.shape[0], 1
	}
	return t.shape[0], t.shape[1]
}

// At returns the element at row i, column j.
func (t *Tensor) At(i, j int) float64 {
	r, c := t.Dims()
	if uint(i) >= uint(r) || uint(j) >= uint(c) {
		panic(mat.ErrIndexOutOfRange)
	}
	return t.data[i*c+j]
}

// AtVec returns element i of a vector, or the i-th element in row-major order.
func (t *Tensor) AtVec(i int) float64 {
	return t.data[i]
}

// Set stores v at row i, column j, rounding to the tensor's precision.
func (t *Tensor) Set(i, j int, v float64) {
	r, c := t.Dims()
	if uint(i) >= uint(r) || uint(j) >= uint(c) {
		panic(mat.ErrIndexOutOfRange)
	}
	t.data[i*c+j] = t.placement.Round(v)
}

// T returns the transpose as a mat.Matrix view.
func (t *Tensor) T() mat.Matrix {
	return mat.Transpose{Matrix: t}
}

// Data returns a *mat.Dense view sharing storage with a rank 2 tensor, or a
// column view of a vector. Writes through the view bypass precision rounding.
func (t *Tensor) Data() *mat.Dense {
	r, c := t.Dims()
	return mat.NewDense(r, c, t.data)
}

// RawData returns a copy of the elements in row-major order.
func (t *Tensor) RawData() []float64 {
	return append([]float64(nil), t.data...)
}

// Col returns a copy of column j.
func (t *Tensor) Col(j int) []float64 {
	return mat.Col(nil, j, t)
}

// Copy returns a deep copy on the same placement.
func (t *Tensor) Copy() *Tensor {
	return &Tensor{
		data:      t.RawData(),
		shape:     t.Shape(),
		placement: t.placement,
	}
}

// To returns a copy of t on placement p. Narrowing to Float32 rounds values;
// widening keeps them exactly.
func (t *Tensor) To(p Placement) *Tensor {
	out := t.Copy()
	out.placement = p
	p.RoundSlice(out.data)
	return out
}

// String returns a short description of the tensor.
func (t *Tensor) String() string {
	dims := make([]string, len(t.shape))
	for i, s := range t.shape {
		dims[i] = fmt.Sprint(s)
	}
	return fmt.Sprintf("Tensor(shape=[%s], placement=%s)", strings.Join(dims, ", "), t.placement)
}
