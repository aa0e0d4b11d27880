// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package circular_test

import (
	"math/rand"
	"testing"

	"github.com/fizzproto/fizzbase/circular"
)

var benchmarkSideEffect int

func BenchmarkDiv9(b *testing.B) {
	dividend := 12345678912341234 + rand.Intn(100)
	value := benchmarkSideEffect
	for i := 0; i < b.N; i++ {
		value += (^value) / dividend
		value += (^value) / dividend
		value += (^value) / dividend
		value += (^value) / dividend
		value += (^value) / dividend
		value += (^value) / dividend
		value += (^value) / dividend
		value += (^value) / dividend
		value += (^value) / dividend
		value += (^value) / dividend
	}
	benchmarkSideEffect = value
}

func BenchmarkDiv128Shift(b *testing.B) {
	value := benchmarkSideEffect
	for i := 0; i < b.N; i++ {
		value += (^value + 191) >> 7
		value += (^value + 191) >> 7
		value += (^value + 191) >> 7
		value += (^value + 191) >> 7
		value += (^value + 191) >> 7
		value += (^value + 191) >> 7
		value += (^value + 191) >> 7
		value += (^value + 191) >> 7
		value += (^value + 191) >> 7
		value += (^value + 191) >> 7
	}
	benchmarkSideEffect = value
}

const fuzzMaxLength = 128

// FuzzCircularBuffer mirrors a growable Buffer[byte] against a plain
// slice, driven by the same command stream, and checks they agree
// after every command — the validation that matters for [EVENTQUEUE],
// which is backed by Buffer[Event].
func FuzzCircularBuffer(f *testing.F) {
	f.Fuzz(func(t *testing.T, commands []byte) {
		cb := circular.Buffer[byte]{}
		var mirror []byte
		for i, c := range commands {
			if cb.Len() != len(mirror) {
				t.FailNow()
			}
			a, b := cb.Slices()
			if string(append(append([]byte{}, a...), b...)) != string(mirror) {
				t.FailNow()
			}
			if cb.Len() != 0 && cb.Front() != mirror[0] {
				t.FailNow()
			}
			for offset, value := range mirror {
				if cb.Index(offset) != value {
					t.FailNow()
				}
			}
			switch c % 4 {
			case 0:
				cb.Clear()
				mirror = mirror[:0]
			case 1:
				if cb.Len() < fuzzMaxLength {
					cb.PushBack(byte(i))
					mirror = append(mirror, byte(i))
				}
			case 2:
				if cb.Len() != 0 {
					value := cb.PopFront()
					want := mirror[0]
					mirror = mirror[1:]
					if value != want {
						t.FailNow()
					}
				}
			default:
				cb.Reserve(int(c))
			}
		}
	})
}
