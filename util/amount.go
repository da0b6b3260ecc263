package util

import (
	"fmt"
	"math/big"

	sdkmath "cosmossdk.io/math"
)

// CheckedAdd returns a + b, or an error if the sum does not fit into an
// sdkmath.Int.
func CheckedAdd(a, b sdkmath.Int) (sdkmath.Int, error) {
	return fromBig(new(big.Int).Add(a.BigInt(), b.BigInt()))
}

// MulDiv returns floor(a * mul / div) for non-negative operands. The
// intermediate product is not bounded, only the result is.
func MulDiv(a sdkmath.Int, mul, div uint64) (sdkmath.Int, error) {
	if div == 0 {
		return sdkmath.Int{}, fmt.Errorf("division by zero")
	}
	res := new(big.Int).Mul(a.BigInt(), new(big.Int).SetUint64(mul))
	res.Quo(res, new(big.Int).SetUint64(div))

	return fromBig(res)
}

func fromBig(i *big.Int) (sdkmath.Int, error) {
	if i.BitLen() > sdkmath.MaxBitLen {
		return sdkmath.Int{}, fmt.Errorf("amount exceeds %d bits", sdkmath.MaxBitLen)
	}
	return sdkmath.NewIntFromBigInt(i), nil
}
