package habits

import (
	"fmt"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/constants"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/models"
)

// behavior is the per-category progress rule.
type behavior struct {
	// step is the count added per unit of delta. Zero means delta is an absolute value.
	step    int
	limit   func(h models.Habit) int
	percent func(h models.Habit, cur int) int
	display func(h models.Habit, cur int) string
}

var behaviors = map[models.Category]behavior{
	models.CategoryCount: {
		step:    1,
		limit:   targetLimit,
		percent: ratioPercent,
		display: func(h models.Habit, cur int) string { return fmt.Sprintf("%d/%d", cur, h.TargetCount) },
	},
	models.CategoryCalories: {
		step:    constants.CalorieStep,
		limit:   targetLimit,
		percent: ratioPercent,
		display: func(h models.Habit, cur int) string { return fmt.Sprintf("%d/%d kcal", cur, h.TargetCount) },
	},
	models.CategoryPercentage: {
		limit:   func(models.Habit) int { return constants.MaxPercentage },
		percent: func(_ models.Habit, cur int) int { return clamp(cur, 0, constants.MaxPercentage) },
		display: func(_ models.Habit, cur int) string { return fmt.Sprintf("%d%%", cur) },
	},
}

func behaviorFor(c models.Category) behavior {
	if b, ok := behaviors[c.Normalize()]; ok {
		return b
	}
	return behaviors[models.CategoryCount]
}

func targetLimit(h models.Habit) int {
	if h.TargetCount < 0 {
		return 0
	}
	return h.TargetCount
}

func ratioPercent(h models.Habit, cur int) int {
	if h.TargetCount <= 0 {
		return 0
	}
	return clamp(cur*100/h.TargetCount, 0, 100)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Step returns how much one increment adds for category c. Zero means the value is set directly.
func Step(c models.Category) int {
	return behaviorFor(c).step
}
