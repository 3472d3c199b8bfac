package gor

import (
	"fmt"

	"github.com/tikz/secstruct/structure"
)

// Evaluation compares predictions with observed classes.
type Evaluation struct {
	Compared  int // positions with both a prediction and an observation
	Correct   int
	Confusion [structure.NumClasses][structure.NumClasses]int // observed x predicted
}

// Q3 is the fraction of compared positions predicted correctly.
func (e Evaluation) Q3() float64 {
	if e.Compared == 0 {
		return 0
	}
	return float64(e.Correct) / float64(e.Compared)
}

// Evaluate scores predictions against observed classes of the same sequence.
// Unclassified positions on either side are left out.
func Evaluate(preds []Prediction, observed []structure.Class) (Evaluation, error) {
	var e Evaluation
	if len(preds) != len(observed) {
		return e, fmt.Errorf("%d predictions for %d observed positions", len(preds), len(observed))
	}

	for i, p := range preds {
		obs := observed[i]
		if !p.Class.Valid() || !obs.Valid() {
			continue
		}
		e.Compared++
		e.Confusion[obs][p.Class]++
		if obs == p.Class {
			e.Correct++
		}
	}

	return e, nil
}
