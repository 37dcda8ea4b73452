package calculator

import "strconv"

// AverageRating computes the arithmetic mean of the ratings rounded to one
// decimal place. An empty input yields 0.0.
//
// Rounding works on the exact binary value of the mean, and exact ties go to
// the even digit: 2.25 becomes 2.2, 3.75 becomes 3.8.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0.0
	}

	total := 0
	for _, r := range ratings {
		total += r
	}

	return roundTenths(float64(total) / float64(len(ratings)))
}

// roundTenths formats with one decimal and parses the result back.
// FormatFloat rounds the exact value, ties to even.
func roundTenths(v float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}
