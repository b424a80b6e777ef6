package paygate

import (
	"fmt"
	"math/big"
)

// ParseAmount parses a decimal amount string without float precision loss.
func ParseAmount(raw string) (*big.Rat, error) {
	amount, ok := new(big.Rat).SetString(raw)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", raw)
	}
	return amount, nil
}

// AmountsEqual compares two amounts exactly.
func AmountsEqual(expected, actual *big.Rat) bool {
	return expected.Cmp(actual) == 0
}
