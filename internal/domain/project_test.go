package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateShortID_Valid(t *testing.T) {
	cases := []string{"VS01", "MARK0234", "AB99", "ABCDEF01"}
	for _, id := range cases {
		p := &Project{ShortID: id}
		assert.NoError(t, p.ValidateShortID(), "should accept %q", id)
	}
}

func TestValidateShortID_Empty(t *testing.T) {
	p := &Project{ShortID: ""}
	err := p.ValidateShortID()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestValidateShortID_Invalid(t *testing.T) {
	cases := []string{"vs01", "A01", "ABCDEFG01", "VS", "VS1", "VS01X"}
	for _, id := range cases {
		p := &Project{ShortID: id}
		assert.Error(t, p.ValidateShortID(), "should reject %q", id)
	}
}

func TestDisplayID_PrefersShortID(t *testing.T) {
	p := &Project{ID: "550e8400-e29b-41d4-a716-446655440000", ShortID: "VS01"}
	assert.Equal(t, "VS01", p.DisplayID())
}

func TestDisplayID_TruncatesUUIDWhenNoShortID(t *testing.T) {
	p := &Project{ID: "550e8400-e29b-41d4-a716-446655440000"}
	assert.Equal(t, "550e8400", p.DisplayID())
}

func TestEffectivePhase_DefaultsToVariantFirst(t *testing.T) {
	p := &Project{Variant: VariantVSVL}
	assert.Equal(t, PhaseMeetings, p.EffectivePhase())

	p.CurrentPhase = PhaseTesting
	assert.Equal(t, PhaseTesting, p.EffectivePhase())
}

func TestSchedulingAnchor(t *testing.T) {
	created := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	start := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)

	p := &Project{CreatedAt: created}
	assert.Equal(t, created, p.SchedulingAnchor())

	p.StartDate = &start
	assert.Equal(t, start, p.SchedulingAnchor())
}

func TestVariantNextPhase(t *testing.T) {
	next, ok := VariantStandard.NextPhase(PhasePlanning)
	require.True(t, ok)
	assert.Equal(t, PhaseProduct, next)

	_, ok = VariantStandard.NextPhase(PhaseFinal)
	assert.False(t, ok)

	_, ok = VariantStandard.NextPhase(PhaseMeetings)
	assert.False(t, ok, "phase outside the enumeration has no successor")
}

func TestVariantPhases_UnknownFallsBackToStandard(t *testing.T) {
	assert.Equal(t, VariantStandard.Phases(), Variant("agile").Phases())
}
