package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgramValid(t *testing.T) {
	assert.True(t, SoftwareEngineering.Valid())
	assert.True(t, CivilEngineering.Valid())
	assert.False(t, Program("BASKET_WEAVING").Valid())
	assert.False(t, Program("").Valid())
}

func TestIsProgramAllowed(t *testing.T) {
	t.Run("empty restriction set admits every program", func(t *testing.T) {
		p := &Project{}
		assert.True(t, p.IsProgramAllowed(SoftwareEngineering))
		assert.True(t, p.IsProgramAllowed(CivilEngineering))
	})

	t.Run("restricted project admits listed programs only", func(t *testing.T) {
		p := &Project{ProgramRestrictions: []Program{SoftwareEngineering, ElectricalEngineering}}
		assert.True(t, p.IsProgramAllowed(SoftwareEngineering))
		assert.True(t, p.IsProgramAllowed(ElectricalEngineering))
		assert.False(t, p.IsProgramAllowed(CivilEngineering))
	})
}
