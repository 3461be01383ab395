package domain

// Program is an academic program a student can be enrolled in.
type Program string

const (
	SoftwareEngineering       Program = "SOFTWARE_ENGINEERING"
	ComputerSystemsEngineering Program = "COMPUTER_SYSTEMS_ENGINEERING"
	ElectricalEngineering     Program = "ELECTRICAL_ENGINEERING"
	MechanicalEngineering     Program = "MECHANICAL_ENGINEERING"
	CivilEngineering          Program = "CIVIL_ENGINEERING"
)

// Valid reports whether p is one of the known programs.
func (p Program) Valid() bool {
	switch p {
	case SoftwareEngineering, ComputerSystemsEngineering,
		ElectricalEngineering, MechanicalEngineering, CivilEngineering:
		return true
	}
	return false
}

// Status tracks a project's lifecycle.
type Status string

const (
	StatusOpen     Status = "OPEN"
	StatusFull     Status = "FULL"
	StatusArchived Status = "ARCHIVED"
)

// Project is a topic a team of students works on under one professor.
type Project struct {
	ID                  int64     `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	ProgramRestrictions []Program `json:"program_restrictions"`
	RequiredStudents    int       `json:"required_students"`
	Status              Status    `json:"status"`
}

// IsProgramAllowed reports whether a student of the given program may join.
// An empty restriction set means the project is open to every program.
func (p *Project) IsProgramAllowed(program Program) bool {
	if len(p.ProgramRestrictions) == 0 {
		return true
	}
	for _, r := range p.ProgramRestrictions {
		if r == program {
			return true
		}
	}
	return false
}
