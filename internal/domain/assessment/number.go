package assessment

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// digits without a sign: negative costs are never meaningful here
var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// extractNumber reduces a cost value from the model to a non-negative
// amount. The model sends costs as plain numbers, strings, or range
// strings like "50-100"; a range averages the first two numbers found
// and ignores the rest. Anything unparseable is 0.
func extractNumber(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return math.Abs(n)
	case int:
		return math.Abs(float64(n))
	case int64:
		return math.Abs(float64(n))
	}

	s := strings.ReplaceAll(fmt.Sprint(v), ",", "")
	nums := numberPattern.FindAllString(s, 2)
	if len(nums) == 0 {
		return 0
	}
	first, err := strconv.ParseFloat(nums[0], 64)
	if err != nil {
		return 0
	}
	if len(nums) >= 2 {
		second, err := strconv.ParseFloat(nums[1], 64)
		if err != nil {
			return 0
		}
		return (first + second) / 2
	}
	return first
}
