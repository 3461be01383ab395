package domain

// ProjectAllocation binds exactly one project to one owning professor plus
// the set of assigned students. At most one allocation exists per project,
// and a student appears in at most one allocation system-wide.
type ProjectAllocation struct {
	ID         int64   `json:"id"`
	ProjectID  int64   `json:"project_id"`
	ProfessorID int64  `json:"professor_id"`
	StudentIDs []int64 `json:"student_ids"`
}

// HasStudent reports whether the student is on this allocation's roster.
func (a *ProjectAllocation) HasStudent(studentID int64) bool {
	for _, id := range a.StudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}
