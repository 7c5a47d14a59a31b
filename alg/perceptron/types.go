package perceptron

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/shogo82148/go-shuffle"
)

// CorrectionSeparator joins the predicted and gold labels of a combined
// correction token, e.g. "A1=>A0".
const CorrectionSeparator = "=>"

var ErrMalformedCorrection = errors.New("malformed correction label")

// Example is a single training instance: an unordered feature set and its
// gold label.
type Example struct {
	Features []string
	Label    string
}

type LabelScore struct {
	Label string
	Index int
	Score float64
}

// SortScores orders scores by descending score; equal scores keep label
// index order.
func SortScores(scores []LabelScore) {
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Index < scores[j].Index
	})
}

// StopCondition is consulted before each epoch; training stops when it
// returns false.
type StopCondition func(epoch, epochs, generation int) bool

func DefaultStopCondition(epoch, epochs, generation int) bool {
	return epoch < epochs
}

// CombinedLabel builds the correction token for a predicted/gold pair.
func CombinedLabel(predicted, gold string) string {
	return predicted + CorrectionSeparator + gold
}

// SplitCombined parses a correction token built by CombinedLabel.
func SplitCombined(token string) (predicted, gold string, err error) {
	parts := strings.Split(token, CorrectionSeparator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedCorrection, token)
	}
	return parts[0], parts[1], nil
}

// EpochOrder returns a permutation of [0, n) that depends only on n and the
// epoch number.
func EpochOrder(n, epoch int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	shuffle.New(rand.NewSource(int64(epoch))).Shuffle(sort.IntSlice(order))
	return order
}

// Snapshot is the serializable state of an AveragedPerceptron.
type Snapshot struct {
	Features   []string
	Labels     []string
	Values     [][]int64
	Totals     [][]int64
	Stamps     [][]int
	Generation int
}
