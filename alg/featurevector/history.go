package featurevector

// BASE_SIZE is the smallest non-empty vector allocated by Grow
const BASE_SIZE int = 16

// HistoryVector is a dense weight vector that keeps, for every index, the
// running sum of its value over past generations. Totals are brought up to
// date lazily: an index is only integrated when it is touched, or when the
// whole vector is flushed with Integrate.
type HistoryVector struct {
	Values []int64
	Totals []int64
	Stamps []int
}

func NewHistoryVector(size int) *HistoryVector {
	h := &HistoryVector{}
	h.Grow(size)
	return h
}

func (h *HistoryVector) Len() int {
	return len(h.Values)
}

// Grow makes room for at least n indices, doubling the current length until
// it fits. Existing indices keep their values.
func (h *HistoryVector) Grow(n int) {
	if n <= len(h.Values) {
		return
	}
	newLen := len(h.Values) * 2
	if newLen < BASE_SIZE {
		newLen = BASE_SIZE
	}
	for newLen < n {
		newLen *= 2
	}
	values := make([]int64, newLen)
	totals := make([]int64, newLen)
	stamps := make([]int, newLen)
	copy(values, h.Values)
	copy(totals, h.Totals)
	copy(stamps, h.Stamps)
	h.Values, h.Totals, h.Stamps = values, totals, stamps
}

func (h *HistoryVector) catchUp(generation, i int) {
	if elapsed := generation - h.Stamps[i]; elapsed > 0 {
		h.Totals[i] += h.Values[i] * int64(elapsed)
	}
	h.Stamps[i] = generation
}

// Add changes the value at i by amount, after integrating its current value
// up to generation.
func (h *HistoryVector) Add(generation, i int, amount int64) {
	h.Grow(i + 1)
	h.catchUp(generation, i)
	h.Values[i] += amount
}

func (h *HistoryVector) Value(i int) int64 {
	if i < 0 || i >= len(h.Values) {
		return 0
	}
	return h.Values[i]
}

// IntegratedValue is the sum of the value at i over generations [0, generation)
func (h *HistoryVector) IntegratedValue(generation, i int) int64 {
	if i < 0 || i >= len(h.Values) {
		return 0
	}
	return h.Totals[i] + h.Values[i]*int64(generation-h.Stamps[i])
}

// Integrate brings every index up to generation.
func (h *HistoryVector) Integrate(generation int) {
	for i := range h.Values {
		h.catchUp(generation, i)
	}
}

// AveragedValue is the time weighted mean of index i over generations
// [0, generation). Before the first generation it is the raw value.
func (h *HistoryVector) AveragedValue(generation, i int) float64 {
	if generation <= 0 {
		return float64(h.Value(i))
	}
	return float64(h.IntegratedValue(generation, i)) / float64(generation)
}

func (h *HistoryVector) Copy() *HistoryVector {
	return &HistoryVector{
		Values: append([]int64(nil), h.Values...),
		Totals: append([]int64(nil), h.Totals...),
		Stamps: append([]int(nil), h.Stamps...),
	}
}
