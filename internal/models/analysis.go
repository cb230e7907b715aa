package models

// BatchStudent is one roster row used by the batch analysis fold: the
// enrollment joined with the student's progress, attendance and fee
// state.
type BatchStudent struct {
	EnrollmentID string           `db:"enrollment_id" json:"enrollmentId"`
	StudentName  string           `db:"student_name" json:"studentName"`
	StudentEmail string           `db:"student_email" json:"studentEmail"`
	Status       EnrollmentStatus `db:"status" json:"enrollmentStatus"`
	Progress     float64          `db:"progress" json:"progress"`
	Attendance   float64          `db:"attendance" json:"attendance"`
	FeePaid      float64          `db:"fee_paid" json:"feePaid"`
	PaymentDone  bool             `db:"payment_done" json:"paymentDone"`
}

// Active reports whether the student counts as in-progress for batch
// statistics: enrolled and neither certified nor withdrawn.
func (s BatchStudent) Active() bool {
	switch s.Status {
	case EnrollmentStatusCertified, EnrollmentStatusWithdrawn:
		return false
	}
	return true
}

// Completed reports whether the student finished the batch.
func (s BatchStudent) Completed() bool {
	return s.Status == EnrollmentStatusCertified
}

// BatchStatistics summarises roster composition and performance.
type BatchStatistics struct {
	TotalStudents     int     `json:"totalStudents"`
	ActiveStudents    int     `json:"activeStudents"`
	CompletedStudents int     `json:"completedStudents"`
	AverageProgress   float64 `json:"averageProgress"`
	AttendanceRate    float64 `json:"attendanceRate"`
}

// BatchRevenue summarises fee collection across the roster.
type BatchRevenue struct {
	TotalRevenue    float64 `json:"totalRevenue"`
	PaidStudents    int     `json:"paidStudents"`
	PendingPayments int     `json:"pendingPayments"`
}

// BatchInfo identifies the batch an analysis describes.
type BatchInfo struct {
	BatchID     string `json:"batchId"`
	CourseID    string `json:"courseid"`
	CourseTitle string `json:"courseTitle"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Timing      string `json:"timing"`
	Mode        string `json:"mode"`
}

// BatchAnalysis is the derived, read-only aggregate over a batch's
// roster. It is recomputed on demand; any caching sits outside the
// fold itself.
type BatchAnalysis struct {
	BatchInfo  BatchInfo       `json:"batchInfo"`
	Statistics BatchStatistics `json:"statistics"`
	Revenue    BatchRevenue    `json:"revenue"`
}
