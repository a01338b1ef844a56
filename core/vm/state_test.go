// Copyright 2024 The EvmIL Authors
// This file is part of the EvmIL library.
//
// The EvmIL library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The EvmIL library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the EvmIL library. If not, see <http://www.gnu.org/licenses/>.

package vm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateJoinWithBottomIsNoop(t *testing.T) {
	s := NewState()
	require.NoError(t, s.Push(known(1)))

	joined, changed := s.Join(Bottom())
	require.False(t, changed)
	require.True(t, joined.Stack.equal(s.Stack))
}

func TestStateJoinFromBottomTakesOther(t *testing.T) {
	other := NewState()
	require.NoError(t, other.Push(known(1)))

	joined, changed := Bottom().Join(other)
	require.True(t, changed)
	require.True(t, joined.Stack.equal(other.Stack))
}

func TestStateJoinMergesStackAndMemory(t *testing.T) {
	a := NewState()
	require.NoError(t, a.Push(known(1)))
	a.Memory.Write(known(0), known(42))

	b := NewState()
	require.NoError(t, b.Push(known(2)))
	b.Memory.Write(known(0), known(42))

	joined, changed := a.Join(b)
	require.True(t, changed)
	top, err := joined.Peek(0)
	require.NoError(t, err)
	require.True(t, top.IsTop())
	require.True(t, joined.Memory.Read(known(0)).Equal(known(42)))
}

func TestStateCloneIsIndependent(t *testing.T) {
	a := NewState()
	require.NoError(t, a.Push(known(1)))
	b := a.clone()
	require.NoError(t, b.Push(known(2)))
	require.Equal(t, 1, a.Stack.Len())
	require.Equal(t, 2, b.Stack.Len())
}

func TestStateSkipAndGoto(t *testing.T) {
	s := NewState()
	s2 := s.Skip(3)
	require.Equal(t, uint64(3), s2.PC)
	s3 := s2.Goto(10)
	require.Equal(t, uint64(10), s3.PC)
}

func TestBottomStateIsBottom(t *testing.T) {
	require.True(t, Bottom().IsBottom())
	require.False(t, NewState().IsBottom())
}
