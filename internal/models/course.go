package models

// Course represents a published training course from the catalog.
type Course struct {
	ID        string  `db:"id" json:"courseid"`
	Title     string  `db:"title" json:"title"`
	ShortForm string  `db:"short_form" json:"courseshortform"`
	Price     float64 `db:"price" json:"price"`
	Category  string  `db:"category" json:"category,omitempty"`
	Duration  string  `db:"duration" json:"duration,omitempty"`
	Active    bool    `db:"active" json:"-"`
}

// Free reports whether the course carries no fee. A missing or zero
// price means the enrollment completes without a payment step.
func (c Course) Free() bool {
	return c.Price <= 0
}

// Batch is a scheduled cohort of a course with a fixed seat capacity.
type Batch struct {
	ID        string `db:"id" json:"batchId"`
	CourseID  string `db:"course_id" json:"courseId"`
	Name      string `db:"name" json:"batchName"`
	StartDate string `db:"start_date" json:"startdate"`
	EndDate   string `db:"end_date" json:"enddate"`
	Timing    string `db:"timing" json:"timing"`
	Mode      string `db:"mode" json:"mode"`
	Capacity  int    `db:"capacity" json:"maxStudents"`
	Enrolled  int    `db:"enrolled" json:"enrolledStudents"`
}

// SeatsLeft computes the remaining seats for a batch. Negative or
// missing counts are clamped to zero so the result is total on any
// input, including inconsistent data where enrolled exceeds capacity.
func SeatsLeft(capacity, enrolled int) int {
	if capacity < 0 {
		capacity = 0
	}
	if enrolled < 0 {
		enrolled = 0
	}
	if enrolled >= capacity {
		return 0
	}
	return capacity - enrolled
}

// BatchFull reports whether a batch has no seats remaining. A batch
// with zero capacity is always full. Overbooked batches (enrolled
// greater than capacity) are reported full rather than rejected.
func BatchFull(capacity, enrolled int) bool {
	if capacity < 0 {
		capacity = 0
	}
	if enrolled < 0 {
		enrolled = 0
	}
	return enrolled >= capacity
}

// SeatsLeft returns the remaining seats for this batch.
func (b Batch) SeatsLeft() int {
	return SeatsLeft(b.Capacity, b.Enrolled)
}

// Full reports whether this batch is at or over capacity.
func (b Batch) Full() bool {
	return BatchFull(b.Capacity, b.Enrolled)
}

// CourseDetail is a course together with its scheduled batches, as
// served by the catalog listing.
type CourseDetail struct {
	Course
	Batches []Batch `json:"batches"`
}

// BatchStatus classifies a batch relative to today's date.
type BatchStatus string

// Batch schedule states.
const (
	BatchStatusUpcoming  BatchStatus = "upcoming"
	BatchStatusOngoing   BatchStatus = "ongoing"
	BatchStatusCompleted BatchStatus = "completed"
)

// BatchSummary is the admin listing view of a batch with its course
// context and the live student count.
type BatchSummary struct {
	Batch
	CourseTitle   string      `db:"course_title" json:"courseTitle"`
	StudentsCount int         `db:"students_count" json:"studentsCount"`
	Status        BatchStatus `json:"status"`
}
