package train

import (
	"fmt"

	errs "github.com/lueurxax/stance-classifier/internal/core/errors"
)

// DefaultFoldCount is the cross-validation fold count when none is supplied.
const DefaultFoldCount = 5

// stratifiedFolds partitions sample indices into k held-out folds,
// distributing each class round-robin so every fold sees every class where
// counts allow. Assignment is deterministic in input order.
func stratifiedFolds(labels []string, k int) ([][]int, error) {
	if k < 2 {
		return nil, fmt.Errorf("%w: got %d", errs.ErrInvalidFoldCount, k)
	}

	if k > len(labels) {
		k = len(labels)
	}

	byClass := make(map[string][]int)

	classOrder := make([]string, 0, 4)

	for i, label := range labels {
		if _, seen := byClass[label]; !seen {
			classOrder = append(classOrder, label)
		}

		byClass[label] = append(byClass[label], i)
	}

	folds := make([][]int, k)
	next := 0

	for _, class := range classOrder {
		for _, idx := range byClass[class] {
			folds[next%k] = append(folds[next%k], idx)
			next++
		}
	}

	return folds, nil
}

// splitFold returns train and test index sets for one held-out fold.
func splitFold(n int, folds [][]int, held int) (train, test []int) {
	inTest := make(map[int]struct{}, len(folds[held]))
	for _, idx := range folds[held] {
		inTest[idx] = struct{}{}
	}

	train = make([]int, 0, n-len(folds[held]))

	for i := 0; i < n; i++ {
		if _, ok := inTest[i]; !ok {
			train = append(train, i)
		}
	}

	return train, folds[held]
}
