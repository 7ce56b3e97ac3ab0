// Package report computes and logs evaluation metrics: accuracy, per-class
// precision/recall/F1, confusion matrices, and misclassification listings.
// Nothing produced here feeds back into the pipeline.
package report

import "fmt"

// Accuracy is the fraction of predictions matching gold labels.
func Accuracy(gold, pred []string) float64 {
	if len(gold) == 0 || len(gold) != len(pred) {
		return 0
	}

	correct := 0

	for i := range gold {
		if gold[i] == pred[i] {
			correct++
		}
	}

	return float64(correct) / float64(len(gold))
}

// ClassMetrics holds per-class precision, recall, and F1.
type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// ClassificationReport computes per-class metrics over the given class order.
func ClassificationReport(gold, pred []string, classes []string) map[string]ClassMetrics {
	out := make(map[string]ClassMetrics, len(classes))

	for _, class := range classes {
		var tp, fp, fn, support int

		for i := range gold {
			predicted := pred[i] == class
			actual := gold[i] == class

			if actual {
				support++
			}

			switch {
			case predicted && actual:
				tp++
			case predicted && !actual:
				fp++
			case !predicted && actual:
				fn++
			}
		}

		precision := ratio(tp, tp+fp)
		recall := ratio(tp, tp+fn)

		var f1 float64
		if precision+recall > 0 {
			f1 = 2 * precision * recall / (precision + recall)
		}

		out[class] = ClassMetrics{Precision: precision, Recall: recall, F1: f1, Support: support}
	}

	return out
}

// ConfusionMatrix counts gold (rows) against predicted (columns) over the
// given class order.
func ConfusionMatrix(gold, pred []string, classes []string) [][]int {
	index := make(map[string]int, len(classes))
	for i, class := range classes {
		index[class] = i
	}

	matrix := make([][]int, len(classes))
	for i := range matrix {
		matrix[i] = make([]int, len(classes))
	}

	for i := range gold {
		row, okRow := index[gold[i]]
		col, okCol := index[pred[i]]

		if okRow && okCol {
			matrix[row][col]++
		}
	}

	return matrix
}

// FormatConfusionMatrix renders a confusion matrix with class headers.
func FormatConfusionMatrix(matrix [][]int, classes []string) string {
	out := "gold\\pred"
	for _, class := range classes {
		out += fmt.Sprintf("\t%s", class)
	}

	out += "\n"

	for i, row := range matrix {
		out += classes[i]
		for _, count := range row {
			out += fmt.Sprintf("\t%d", count)
		}

		out += "\n"
	}

	return out
}

// FormatClassificationReport renders per-class metrics in class order.
func FormatClassificationReport(metrics map[string]ClassMetrics, classes []string) string {
	out := "class\tprecision\trecall\tf1\tsupport\n"

	for _, class := range classes {
		m := metrics[class]
		out += fmt.Sprintf("%s\t%.3f\t%.3f\t%.3f\t%d\n", class, m.Precision, m.Recall, m.F1, m.Support)
	}

	return out
}

func ratio(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}

	return float64(numerator) / float64(denominator)
}
