package ring

import (
	"fmt"
)

// Matrix is a two-dimensional array of polynomials with a cheap transpose:
// the storage stays row-major and a view flag swaps the coordinates on
// access. Vectors are k x 1 matrices.
type Matrix struct {
	data       [][]Poly
	transposed bool
}

// NewMatrix creates a rows x cols matrix of zero polynomials in the given
// domain.
func NewMatrix(rows, cols int, domain Domain) Matrix {
	data := make([][]Poly, rows)
	for i := range data {
		data[i] = make([]Poly, cols)
		for j := range data[i] {
			data[i][j] = NewPoly(domain)
		}
	}
	return Matrix{data: data}
}

// NewVector creates a k x 1 matrix of zero polynomials in the given domain.
func NewVector(k int, domain Domain) Matrix {
	return NewMatrix(k, 1, domain)
}

// Dims returns the logical shape (rows, cols) of the matrix, accounting
// for the transpose view.
func (m Matrix) Dims() (rows, cols int) {
	if m.transposed {
		return len(m.data[0]), len(m.data)
	}
	return len(m.data), len(m.data[0])
}

// At returns the element at logical position (i, j).
func (m Matrix) At(i, j int) Poly {
	if m.transposed {
		return m.data[j][i]
	}
	return m.data[i][j]
}

// Set writes p at logical position (i, j).
func (m Matrix) Set(i, j int, p Poly) {
	if m.transposed {
		m.data[j][i] = p
		return
	}
	m.data[i][j] = p
}

// T returns the transposed view of the matrix. The underlying storage is
// shared, not copied.
func (m Matrix) T() Matrix {
	return Matrix{data: m.data, transposed: !m.transposed}
}

// Add adds two matrices of identical shape element-wise.
func (m Matrix) Add(other Matrix) (Matrix, error) {
	r1, c1 := m.Dims()
	r2, c2 := other.Dims()
	if r1 != r2 || c1 != c2 {
		return Matrix{}, fmt.Errorf("addition of (%d,%d) and (%d,%d) matrices: %w", r1, c1, r2, c2, ErrDimensionMismatch)
	}

	out := Matrix{data: make([][]Poly, r1)}
	for i := 0; i < r1; i++ {
		out.data[i] = make([]Poly, c1)
		for j := 0; j < c1; j++ {
			s, err := m.At(i, j).Add(other.At(i, j))
			if err != nil {
				return Matrix{}, err
			}
			out.data[i][j] = s
		}
	}
	return out, nil
}

// Mul computes the matrix product m x other. The inner dimensions must
// agree; the element products follow the common domain of the operands.
func (m Matrix) Mul(other Matrix) (Matrix, error) {
	r1, c1 := m.Dims()
	r2, c2 := other.Dims()
	if c1 != r2 {
		return Matrix{}, fmt.Errorf("product of (%d,%d) and (%d,%d) matrices: %w", r1, c1, r2, c2, ErrDimensionMismatch)
	}

	out := Matrix{data: make([][]Poly, r1)}
	for i := 0; i < r1; i++ {
		out.data[i] = make([]Poly, c2)
		for j := 0; j < c2; j++ {
			acc := NewPoly(m.At(i, 0).Domain)
			for l := 0; l < c1; l++ {
				p, err := m.At(i, l).Mul(other.At(l, j))
				if err != nil {
					return Matrix{}, err
				}
				if acc, err = acc.Add(p); err != nil {
					return Matrix{}, err
				}
			}
			out.data[i][j] = acc
		}
	}
	return out, nil
}

// Dot computes the inner product of two k x 1 vectors, that is the unique
// entry of m^T x other.
func (m Matrix) Dot(other Matrix) (Poly, error) {
	out, err := m.T().Mul(other)
	if err != nil {
		return Poly{}, err
	}
	if r, c := out.Dims(); r != 1 || c != 1 {
		return Poly{}, fmt.Errorf("dot product yields a (%d,%d) matrix: %w", r, c, ErrDimensionMismatch)
	}
	return out.At(0, 0), nil
}

// NTT applies the forward NTT to every element.
func (m Matrix) NTT() (Matrix, error) {
	return m.apply(Poly.NTT)
}

// InvNTT applies the inverse NTT to every element.
func (m Matrix) InvNTT() (Matrix, error) {
	return m.apply(Poly.InvNTT)
}

// Compress applies Compress(d) to every element.
func (m Matrix) Compress(d int) Matrix {
	out, _ := m.apply(func(p Poly) (Poly, error) { return p.Compress(d), nil })
	return out
}

// Decompress applies Decompress(d) to every element.
func (m Matrix) Decompress(d int) Matrix {
	out, _ := m.apply(func(p Poly) (Poly, error) { return p.Decompress(d), nil })
	return out
}

func (m Matrix) apply(f func(Poly) (Poly, error)) (Matrix, error) {
	rows, cols := m.Dims()
	out := Matrix{data: make([][]Poly, rows)}
	for i := 0; i < rows; i++ {
		out.data[i] = make([]Poly, cols)
		for j := 0; j < cols; j++ {
			p, err := f(m.At(i, j))
			if err != nil {
				return Matrix{}, err
			}
			out.data[i][j] = p
		}
	}
	return out, nil
}

// Encode concatenates the d-bit encoding of every element in row-major
// logical order.
func (m Matrix) Encode(d int) []byte {
	rows, cols := m.Dims()
	out := make([]byte, 0, rows*cols*32*d)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out = append(out, m.At(i, j).Encode(d)...)
		}
	}
	return out
}

// DecodeVector parses k consecutive d-bit polynomial encodings into a
// k x 1 vector tagged with the given domain.
func DecodeVector(data []byte, k, d int, domain Domain) (Matrix, error) {
	if len(data) != 32*d*k {
		return Matrix{}, fmt.Errorf("vector decode with k=%d, d=%d requires %d bytes, got %d: %w", k, d, 32*d*k, len(data), ErrInvalidLength)
	}

	out := Matrix{data: make([][]Poly, k)}
	for i := 0; i < k; i++ {
		p, err := Decode(data[32*d*i:32*d*(i+1)], d, domain)
		if err != nil {
			return Matrix{}, err
		}
		out.data[i] = []Poly{p}
	}
	return out, nil
}

// Zero overwrites the coefficients of every element with zeros.
func (m Matrix) Zero() {
	for i := range m.data {
		for j := range m.data[i] {
			m.data[i][j].Zero()
		}
	}
}
