// Package mlp implements a small two-layer feed-forward network trained
// with full-batch back-propagation, sized for toy problems like XOR.
package mlp

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Argument errors, detected before any training pass.
var (
	ErrNoSamples = errors.New("mlp: no training samples")
	ErrBadShape  = errors.New("mlp: sample shape does not match network")
	ErrBadParam  = errors.New("mlp: invalid training parameter")
)

// Network is a dense net with one sigmoid hidden layer and a sigmoid
// output layer.
type Network struct {
	in, hidden, out int

	w1 *mat.Dense // in x hidden
	b1 *mat.Dense // 1 x hidden
	w2 *mat.Dense // hidden x out
	b2 *mat.Dense // 1 x out
}

// New creates a network with Xavier-uniform weights and zero biases drawn
// from the given source.
func New(in, hidden, out int, rng *rand.Rand) *Network {
	return &Network{
		in:     in,
		hidden: hidden,
		out:    out,
		w1:     xavier(in, hidden, rng),
		b1:     mat.NewDense(1, hidden, nil),
		w2:     xavier(hidden, out, rng),
		b2:     mat.NewDense(1, out, nil),
	}
}

// Train runs full-batch gradient descent on the mean squared error for the
// given number of epochs and returns the per-epoch loss curve.
func (n *Network) Train(inputs, targets [][]float64, epochs int, lr float64) ([]float64, error) {
	if len(inputs) == 0 {
		return nil, ErrNoSamples
	}
	if len(targets) != len(inputs) {
		return nil, fmt.Errorf("%w: %d inputs but %d targets", ErrBadShape, len(inputs), len(targets))
	}
	if epochs < 1 || lr <= 0 {
		return nil, fmt.Errorf("%w: epochs=%d lr=%v", ErrBadParam, epochs, lr)
	}

	x, err := n.denseOf(inputs, n.in, "input")
	if err != nil {
		return nil, err
	}
	t, err := n.denseOf(targets, n.out, "target")
	if err != nil {
		return nil, err
	}

	samples := float64(len(inputs))
	losses := make([]float64, epochs)

	for epoch := 0; epoch < epochs; epoch++ {
		h, y := n.forward(x)

		// Output delta: (y - t) * y * (1 - y).
		var dOut mat.Dense
		dOut.Sub(y, t)
		losses[epoch] = meanSquare(&dOut)
		dOut.MulElem(&dOut, sigmoidPrime(y))

		// Hidden delta: (dOut . w2^T) * h * (1 - h).
		var dHidden mat.Dense
		dHidden.Mul(&dOut, n.w2.T())
		dHidden.MulElem(&dHidden, sigmoidPrime(h))

		var dW2, dW1 mat.Dense
		dW2.Mul(h.T(), &dOut)
		dW1.Mul(x.T(), &dHidden)

		step := lr / samples
		applyGradient(n.w2, &dW2, step)
		applyGradient(n.w1, &dW1, step)
		applyGradient(n.b2, colSums(&dOut), step)
		applyGradient(n.b1, colSums(&dHidden), step)
	}

	return losses, nil
}

// Predict runs a single sample through the network.
func (n *Network) Predict(sample []float64) ([]float64, error) {
	if len(sample) != n.in {
		return nil, fmt.Errorf("%w: got %d features, want %d", ErrBadShape, len(sample), n.in)
	}
	x := mat.NewDense(1, n.in, sample)
	_, y := n.forward(x)

	out := make([]float64, n.out)
	for j := 0; j < n.out; j++ {
		out[j] = y.At(0, j)
	}
	return out, nil
}

// forward computes the hidden and output activations for a batch.
func (n *Network) forward(x *mat.Dense) (h, y *mat.Dense) {
	rows, _ := x.Dims()

	h = mat.NewDense(rows, n.hidden, nil)
	h.Mul(x, n.w1)
	addRow(h, n.b1)
	h.Apply(func(_, _ int, v float64) float64 { return sigmoid(v) }, h)

	y = mat.NewDense(rows, n.out, nil)
	y.Mul(h, n.w2)
	addRow(y, n.b2)
	y.Apply(func(_, _ int, v float64) float64 { return sigmoid(v) }, y)

	return h, y
}

// denseOf validates row widths and packs rows into a matrix.
func (n *Network) denseOf(rows [][]float64, width int, kind string) (*mat.Dense, error) {
	m := mat.NewDense(len(rows), width, nil)
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: %s %d has %d values, want %d", ErrBadShape, kind, i, len(row), width)
		}
		m.SetRow(i, row)
	}
	return m, nil
}

func sigmoid(v float64) float64 {
	return 1.0 / (1.0 + math.Exp(-v))
}

// sigmoidPrime derives the gradient factor from already-activated values.
func sigmoidPrime(activated *mat.Dense) *mat.Dense {
	var sp mat.Dense
	sp.Apply(func(_, _ int, v float64) float64 { return v * (1 - v) }, activated)
	return &sp
}

// addRow adds a 1-row bias matrix to every row of m.
func addRow(m, row *mat.Dense) {
	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.Set(i, j, m.At(i, j)+row.At(0, j))
		}
	}
}

// colSums collapses a batch of deltas into a 1-row bias gradient.
func colSums(m *mat.Dense) *mat.Dense {
	rows, cols := m.Dims()
	sums := mat.NewDense(1, cols, nil)
	for j := 0; j < cols; j++ {
		total := 0.0
		for i := 0; i < rows; i++ {
			total += m.At(i, j)
		}
		sums.Set(0, j, total)
	}
	return sums
}

// applyGradient subtracts step * grad from param in place.
func applyGradient(param, grad *mat.Dense, step float64) {
	var scaled mat.Dense
	scaled.Scale(step, grad)
	param.Sub(param, &scaled)
}

// meanSquare is the mean of the squared residuals in diff.
func meanSquare(diff *mat.Dense) float64 {
	rows, cols := diff.Dims()
	total := 0.0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := diff.At(i, j)
			total += v * v
		}
	}
	return total / float64(rows*cols)
}

// xavier draws fanIn x fanOut weights uniformly from the Glorot interval.
func xavier(fanIn, fanOut int, rng *rand.Rand) *mat.Dense {
	limit := math.Sqrt(6.0 / float64(fanIn+fanOut))
	w := mat.NewDense(fanIn, fanOut, nil)
	for i := 0; i < fanIn; i++ {
		for j := 0; j < fanOut; j++ {
			var u float64
			if rng != nil {
				u = rng.Float64()
			} else {
				u = rand.Float64()
			}
			w.Set(i, j, (2*u-1)*limit)
		}
	}
	return w
}
