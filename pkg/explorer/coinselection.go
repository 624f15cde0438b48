package explorer

import (
	"errors"
	"sort"
)

// ErrInsufficientUnspents ...
var ErrInsufficientUnspents = errors.New(
	"total utxo amount does not cover target amount",
)

// SelectUnspents performs a coin selection over the given list of Utxos
// and returns the subset of them to cover the targetAmount, along with the
// change left over. The strategy selects as few utxos as possible by
// consuming them from the largest.
func SelectUnspents(
	utxos []Utxo, targetAmount uint64,
) (coins []Utxo, change uint64, err error) {
	if targetAmount == 0 {
		err = errors.New("target amount must not be zero")
		return
	}

	sorted := make([]Utxo, len(utxos))
	copy(sorted, utxos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value() > sorted[j].Value()
	})

	totalAmount := uint64(0)
	selectedUtxos := make([]Utxo, 0, len(sorted))
	for _, utxo := range sorted {
		selectedUtxos = append(selectedUtxos, utxo)
		totalAmount += utxo.Value()
		if totalAmount >= targetAmount {
			coins = selectedUtxos
			change = totalAmount - targetAmount
			return
		}
	}

	err = ErrInsufficientUnspents
	return
}
