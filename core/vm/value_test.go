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

func TestValueJoinEqualConstants(t *testing.T) {
	require.True(t, known(5).Join(known(5)).Equal(known(5)))
}

func TestValueJoinDistinctConstantsIsTop(t *testing.T) {
	require.True(t, known(5).Join(known(6)).IsTop())
}

func TestValueJoinWithTopIsTop(t *testing.T) {
	require.True(t, known(5).Join(Top).IsTop())
	require.True(t, Top.Join(known(5)).IsTop())
}

func TestValueJoinIdempotent(t *testing.T) {
	v := known(7)
	require.True(t, v.Join(v).Equal(v))
	require.True(t, Top.Join(Top).IsTop())
}

func TestValueJoinCommutative(t *testing.T) {
	a, b := known(1), known(2)
	require.True(t, a.Join(b).Equal(b.Join(a)))
}

func TestValueJoinAssociative(t *testing.T) {
	a, b, c := known(1), known(1), known(2)
	left := a.Join(b).Join(c)
	right := a.Join(b.Join(c))
	require.True(t, left.Equal(right))
}

func TestValueValidJumpTarget(t *testing.T) {
	require.True(t, known(0).ValidJumpTarget())
	require.False(t, Top.ValidJumpTarget())

	oversized := KnownValue(wordFromBigEndian([]byte{0xFF, 0xFF, 0xFF}))
	require.False(t, oversized.ValidJumpTarget())
}
