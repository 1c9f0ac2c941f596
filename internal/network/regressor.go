// Package network implements a small two-layer feed-forward regressor trained with
// full-batch gradient descent on mean squared error.
package network

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"MoneyWise/internal/calculator"
)

// DefaultLearningRate is the fixed gradient-descent step size.
const DefaultLearningRate = 0.01

// ErrShapeMismatch is returned when inputs do not match the network topology.
var ErrShapeMismatch = errors.New("shape mismatch")

// Activations holds the intermediate values of one forward pass. TrainStep needs them
// to backpropagate, so they travel as a value instead of living on the Regressor.
type Activations struct {
	Z1 *calculator.Matrix // hidden pre-activation
	A1 *calculator.Matrix // relu(Z1)
}

// Parameters is a copy of the network's weights and biases.
type Parameters struct {
	W1 *calculator.Matrix // inputSize × hiddenSize
	B1 *calculator.Matrix // 1 × hiddenSize
	W2 *calculator.Matrix // hiddenSize × outputSize
	B2 *calculator.Matrix // 1 × outputSize
}

// Regressor is a fixed input → ReLU hidden → linear output network.
type Regressor struct {
	InputSize    int
	HiddenSize   int
	OutputSize   int
	LearningRate float64

	w1, b1, w2, b2 *calculator.Matrix
	lossHistory    []float64
}

// New builds a regressor with He-initialized weights drawn from rng and zero biases.
func New(inputSize, hiddenSize, outputSize int, rng *rand.Rand) *Regressor {
	return &Regressor{
		InputSize:    inputSize,
		HiddenSize:   hiddenSize,
		OutputSize:   outputSize,
		LearningRate: DefaultLearningRate,
		w1:           heInit(inputSize, hiddenSize, rng),
		b1:           calculator.NewMatrix(1, hiddenSize),
		w2:           heInit(hiddenSize, outputSize, rng),
		b2:           calculator.NewMatrix(1, outputSize),
	}
}

func heInit(fanIn, fanOut int, rng *rand.Rand) *calculator.Matrix {
	m := calculator.NewMatrix(fanIn, fanOut)
	scale := math.Sqrt(2.0 / float64(fanIn))
	for i := range m.Data {
		m.Data[i] = rng.NormFloat64() * scale
	}
	return m
}

func relu(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// reluGrad is 1 where the pre-activation was strictly positive, else 0.
func reluGrad(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

// Forward computes Z2 = relu(X·W1 + b1)·W2 + b2 and returns the hidden activations with it.
func (r *Regressor) Forward(x *calculator.Matrix) (*calculator.Matrix, *Activations, error) {
	if x.Cols != r.InputSize {
		return nil, nil, fmt.Errorf("%w: input has %d columns, network expects %d", ErrShapeMismatch, x.Cols, r.InputSize)
	}
	xw, err := calculator.MatMul(x, r.w1)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}
	z1, err := calculator.AddRowVector(xw, r.b1)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}
	a1 := calculator.Apply(z1, relu)
	aw, err := calculator.MatMul(a1, r.w2)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}
	z2, err := calculator.AddRowVector(aw, r.b2)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}
	return z2, &Activations{Z1: z1, A1: a1}, nil
}

// TrainStep runs one forward/backward pass over the full batch and applies the update.
// The returned loss is the MSE of the forward pass before the update.
func (r *Regressor) TrainStep(x *calculator.Matrix, y []float64) (float64, error) {
	if x.Rows == 0 || len(y) != x.Rows {
		return 0, fmt.Errorf("%w: %d samples with %d targets", ErrShapeMismatch, x.Rows, len(y))
	}
	out, act, err := r.Forward(x)
	if err != nil {
		return 0, err
	}
	grads, err := r.backward(x, calculator.Column(y), out, act)
	if err != nil {
		return 0, err
	}

	loss := calculator.MeanSquaredError(out.Data, y)

	for _, u := range []struct {
		p, g *calculator.Matrix
	}{
		{r.w2, grads.W2}, {r.b2, grads.B2}, {r.w1, grads.W1}, {r.b1, grads.B1},
	} {
		if err := calculator.SubScaledInPlace(u.p, u.g, r.LearningRate); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
		}
	}

	r.lossHistory = append(r.lossHistory, loss)
	return loss, nil
}

func (r *Regressor) backward(x, y, out *calculator.Matrix, act *Activations) (*Parameters, error) {
	invN := 1.0 / float64(x.Rows)

	dz2, err := calculator.Sub(out, y)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}
	dw2, err := calculator.MatMul(calculator.Transpose(act.A1), dz2)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}
	db2 := calculator.SumColumns(dz2)

	da1, err := calculator.MatMul(dz2, calculator.Transpose(r.w2))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}
	dz1, err := calculator.Hadamard(da1, calculator.Apply(act.Z1, reluGrad))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}
	dw1, err := calculator.MatMul(calculator.Transpose(x), dz1)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}
	db1 := calculator.SumColumns(dz1)

	return &Parameters{
		W1: calculator.Scale(dw1, invN),
		B1: calculator.Scale(db1, invN),
		W2: calculator.Scale(dw2, invN),
		B2: calculator.Scale(db2, invN),
	}, nil
}

// Train runs exactly epochs full-batch steps.
func (r *Regressor) Train(x *calculator.Matrix, y []float64, epochs int) error {
	for epoch := 0; epoch < epochs; epoch++ {
		if _, err := r.TrainStep(x, y); err != nil {
			return fmt.Errorf("epoch %d: %w", epoch, err)
		}
	}
	return nil
}

// Predict runs a forward pass without recording anything.
func (r *Regressor) Predict(x *calculator.Matrix) (*calculator.Matrix, error) {
	out, _, err := r.Forward(x)
	return out, err
}

// PredictOne returns the first output of a single feature vector.
func (r *Regressor) PredictOne(features []float64) (float64, error) {
	x, err := calculator.FromRows([][]float64{features})
	if err != nil {
		return 0, err
	}
	out, err := r.Predict(x)
	if err != nil {
		return 0, err
	}
	return out.At(0, 0), nil
}

// LossHistory returns a copy of every recorded training loss, oldest first.
func (r *Regressor) LossHistory() []float64 {
	out := make([]float64, len(r.lossHistory))
	copy(out, r.lossHistory)
	return out
}

// LossTail returns at most the last n recorded losses.
func (r *Regressor) LossTail(n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	h := r.lossHistory
	if n < len(h) {
		h = h[len(h)-n:]
	}
	out := make([]float64, len(h))
	copy(out, h)
	return out
}

// Snapshot copies the current parameters.
func (r *Regressor) Snapshot() Parameters {
	return Parameters{W1: r.w1.Clone(), B1: r.b1.Clone(), W2: r.w2.Clone(), B2: r.b2.Clone()}
}
