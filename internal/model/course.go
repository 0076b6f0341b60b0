package model

// Course carries only the fields the lock flow reads.
type Course struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Semester int    `json:"semester"` // 1-6
}

var (
	WinterSemesters = []int{1, 3, 5}
	SummerSemesters = []int{2, 4, 6}
	AllSemesters    = []int{1, 2, 3, 4, 5, 6}
)
