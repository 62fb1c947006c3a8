package adherence

// Milestones are the streak lengths worth celebrating, in ascending order.
var Milestones = []int{5, 10, 15, 20, 30, 50}

// IsMilestone reports whether the given streak length is a celebration
// milestone.
func IsMilestone(streak int) bool {
	for _, m := range Milestones {
		if streak == m {
			return true
		}
	}
	return false
}
