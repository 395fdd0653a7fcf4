package statecache_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sentineld/beacon-execd/blockchain/beacontypes"
	"github.com/sentineld/beacon-execd/blockchain/statecache"
)

func TestGetOrInsertWithCachesByKeySlotAndFlag(t *testing.T) {
	c := statecache.NewInMemory()
	root := [32]byte{1}
	calls := 0

	compute := func() (*beacontypes.BeaconState, *beacontypes.BlockRewards, error) {
		calls++
		return &beacontypes.BeaconState{SlotNumber: 5}, nil, nil
	}

	s1, _, err := c.GetOrInsertWith(root, 5, false, compute)
	require.NoError(t, err)
	s2, _, err := c.GetOrInsertWith(root, 5, false, compute)
	require.NoError(t, err)

	require.Same(t, s1, s2)
	require.Equal(t, 1, calls)
}

func TestGetOrInsertWithDistinguishesFullTransitionFlag(t *testing.T) {
	c := statecache.NewInMemory()
	root := [32]byte{2}

	a, _, err := c.GetOrInsertWith(root, 5, false, func() (*beacontypes.BeaconState, *beacontypes.BlockRewards, error) {
		return &beacontypes.BeaconState{SlotNumber: 5}, nil, nil
	})
	require.NoError(t, err)

	b, _, err := c.GetOrInsertWith(root, 5, true, func() (*beacontypes.BeaconState, *beacontypes.BlockRewards, error) {
		return &beacontypes.BeaconState{SlotNumber: 5}, nil, nil
	})
	require.NoError(t, err)

	require.NotSame(t, a, b)
}

func TestGetOrInsertWithPropagatesComputeError(t *testing.T) {
	c := statecache.NewInMemory()
	wantErr := require.Error

	_, _, err := c.GetOrInsertWith([32]byte{3}, 1, false, func() (*beacontypes.BeaconState, *beacontypes.BlockRewards, error) {
		return nil, nil, assertErr
	})
	wantErr(t, err)
}

var assertErr = &stubError{"compute failed"}

type stubError struct{ msg string }

func (e *stubError) Error() string { return e.msg }

func TestBeforeOrAtSlotReturnsHighestMatchingEntry(t *testing.T) {
	c := statecache.NewInMemory()
	root := [32]byte{4}

	_, _, err := c.GetOrInsertWith(root, 10, false, func() (*beacontypes.BeaconState, *beacontypes.BlockRewards, error) {
		return &beacontypes.BeaconState{SlotNumber: 10}, nil, nil
	})
	require.NoError(t, err)
	_, _, err = c.GetOrInsertWith(root, 12, false, func() (*beacontypes.BeaconState, *beacontypes.BlockRewards, error) {
		return &beacontypes.BeaconState{SlotNumber: 12}, nil, nil
	})
	require.NoError(t, err)

	got := c.BeforeOrAtSlot(root, 15)
	require.NotNil(t, got)
	require.EqualValues(t, 12, got.Slot())

	got = c.BeforeOrAtSlot(root, 11)
	require.NotNil(t, got)
	require.EqualValues(t, 10, got.Slot())

	require.Nil(t, c.BeforeOrAtSlot(root, 5))
	require.Nil(t, c.BeforeOrAtSlot([32]byte{99}, 100))
}

func TestGetOrInsertWithConcurrentMissesConverge(t *testing.T) {
	c := statecache.NewInMemory()
	root := [32]byte{5}

	var wg sync.WaitGroup
	results := make([]*beacontypes.BeaconState, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, _, err := c.GetOrInsertWith(root, 1, false, func() (*beacontypes.BeaconState, *beacontypes.BlockRewards, error) {
				return &beacontypes.BeaconState{SlotNumber: 1}, nil, nil
			})
			require.NoError(t, err)
			results[i] = s
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		require.Same(t, results[0], results[i])
	}
}
