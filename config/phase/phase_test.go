package phase_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sentineld/beacon-execd/config/phase"
)

func TestAssertCardinality(t *testing.T) {
	require.NotPanics(t, func() { phase.AssertCardinality(5) })
	require.Panics(t, func() { phase.AssertCardinality(4) })
}

func TestStringNames(t *testing.T) {
	cases := map[phase.Phase]string{
		phase.Phase0:     "phase0",
		phase.Altair:     "altair",
		phase.Bellatrix:  "bellatrix",
		phase.Capella:    "capella",
		phase.Deneb:      "deneb",
		phase.Phase(100): "unknown",
	}
	for p, want := range cases {
		require.Equal(t, want, p.String())
	}
}
