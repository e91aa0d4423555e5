package fibonacci

import (
	"math/big"
	"math/bits"

	apperrors "github.com/agbru/refalgo/internal/errors"
)

// twoTo64 is the modulus of uint64 arithmetic.
var twoTo64 = new(big.Int).Lsh(big.NewInt(1), 64)

// FastDoublingMod computes F(n) mod m using the fast doubling identities.
// Memory usage is O(log(m)) regardless of n.
//
//	F(2k)   = F(k) * (2*F(k+1) - F(k))  mod m
//	F(2k+1) = F(k+1)² + F(k)²            mod m
func FastDoublingMod(n uint64, m *big.Int) (*big.Int, error) {
	if m == nil || m.Sign() <= 0 {
		return nil, apperrors.ValidationError{Field: "modulus", Message: "must be positive"}
	}
	if n == 0 {
		return big.NewInt(0), nil
	}

	fk := big.NewInt(0)  // F(k)
	fk1 := big.NewInt(1) // F(k+1)
	t1 := new(big.Int)
	t2 := new(big.Int)

	for i := bits.Len64(n) - 1; i >= 0; i-- {
		t1.Lsh(fk1, 1)
		t1.Sub(t1, fk)
		t1.Mod(t1, m) // Mod is Euclidean, never negative
		t1.Mul(t1, fk)
		t1.Mod(t1, m)

		t2.Mul(fk1, fk1)
		fk.Mul(fk, fk)
		t2.Add(t2, fk)
		t2.Mod(t2, m)

		fk.Set(t1)
		fk1.Set(t2)

		if (n>>uint(i))&1 == 1 {
			t1.Add(fk, fk1)
			t1.Mod(t1, m)
			fk.Set(fk1)
			fk1.Set(t1)
		}
	}

	return fk, nil
}

// OracleUint64 returns F(n) mod 2^64 computed independently of Fib, through
// big-integer fast doubling. It runs in O(log n) and is used to cross-check
// the wrapping behavior of Fib.
func OracleUint64(n uint64) uint64 {
	r, _ := FastDoublingMod(n, twoTo64)
	return r.Uint64()
}
