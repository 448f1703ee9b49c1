package domain

// Balance is an amount of lovelace plus a list of native assets. Assets are
// unique by identity and kept in insertion order.
// Refund is only set on aggregated requirements: it is the lovelace credited
// to the inputs, like a returned key deposit, in excess of Lovelace.
type Balance struct {
	Lovelace uint64
	Assets   Assets
	Refund   uint64
}

// IsZero returns whether the balance holds nothing.
func (b Balance) IsZero() bool {
	return b.Lovelace == 0 && len(b.Assets) == 0
}

// QuantityOf returns the quantity of the given asset, or the lovelace amount
// if asset is nil.
func (b Balance) QuantityOf(asset *Asset) uint64 {
	if asset == nil {
		return b.Lovelace
	}
	return b.Assets.QuantityOf(asset.PolicyID, asset.Name)
}

// HasAsset returns whether the balance holds a positive quantity of the
// given asset.
func (b Balance) HasAsset(policyID, name string) bool {
	return b.Assets.QuantityOf(policyID, name) > 0
}

// Add returns the sum of the two balances. Assets of b come first, new ones
// from other are appended in their order.
func (b Balance) Add(other Balance) Balance {
	sum := Balance{
		Lovelace: b.Lovelace + other.Lovelace,
		Assets:   make(Assets, 0, len(b.Assets)+len(other.Assets)),
		Refund:   b.Refund + other.Refund,
	}
	sum.Assets = append(sum.Assets, b.Assets...)
	for _, a := range other.Assets {
		sum.Assets = sum.Assets.add(a)
	}
	return sum
}

func (a Assets) add(asset Asset) Assets {
	if asset.Quantity == 0 {
		return a
	}
	if i := a.IndexOf(asset.PolicyID, asset.Name); i >= 0 {
		a[i].Quantity += asset.Quantity
		return a
	}
	return append(a, asset)
}

// BalanceOf returns the total balance held by the given utxos.
func BalanceOf(utxos []*Utxo) Balance {
	total := Balance{Assets: Assets{}}
	for _, u := range utxos {
		total = total.Add(u.Balance)
	}
	return total
}

// AggregateBalance returns what a set of inputs must cover to fund the given
// outputs, mint bundle and certificates, plus feeBuffer lovelace.
// Stake registrations add the key deposit, deregistrations give it back.
// Refunds not absorbed by the required lovelace are kept in Refund.
// Minted tokens reduce the required quantity of the same asset, burnt tokens
// not paid to any output become a requirement of their own.
func AggregateBalance(
	outputs []TxOutput, params ProtocolParams, mint *TokenBundle,
	certificates []Certificate, feeBuffer uint64,
) Balance {
	balance := Balance{Lovelace: feeBuffer, Assets: Assets{}}

	for _, out := range outputs {
		balance.Lovelace += out.Value.Lovelace
		for _, a := range out.Value.Assets {
			balance.Assets = balance.Assets.add(a)
		}
	}

	if params != nil {
		deposit := params.KeyDeposit()
		for _, cert := range certificates {
			if cert == nil {
				continue
			}
			if cert.HasStakeRegistration() {
				balance.Lovelace += deposit
			}
			if cert.HasStakeDeregistration() {
				balance.Refund += deposit
			}
		}
		if balance.Refund >= balance.Lovelace {
			balance.Refund -= balance.Lovelace
			balance.Lovelace = 0
		} else {
			balance.Lovelace -= balance.Refund
			balance.Refund = 0
		}
	}

	for _, token := range mint.Build() {
		i := balance.Assets.IndexOf(token.PolicyID, token.Name)
		if i < 0 {
			if token.Quantity < 0 {
				balance.Assets = append(balance.Assets, Asset{
					PolicyID: token.PolicyID,
					Name:     token.Name,
					Quantity: absQuantity(token.Quantity),
				})
			}
			continue
		}

		qty := absQuantity(token.Quantity)
		if token.Quantity < 0 {
			balance.Assets[i].Quantity += qty
			continue
		}
		if qty >= balance.Assets[i].Quantity {
			balance.Assets = append(balance.Assets[:i], balance.Assets[i+1:]...)
			continue
		}
		balance.Assets[i].Quantity -= qty
	}

	return balance
}

// Surplus returns what the selected utxos hold in excess of the required
// balance. The fee buffer included in required and any refund are left in
// the lovelace surplus. Assets with no surplus are omitted, the others follow
// the order in which they appear across the selected utxos.
func Surplus(selected []*Utxo, required Balance, feeBuffer uint64) Balance {
	in := BalanceOf(selected)

	surplus := Balance{Assets: Assets{}}
	surplus.Lovelace = SurplusLovelace(in.Lovelace, required, feeBuffer)

	for _, a := range in.Assets {
		req := required.Assets.QuantityOf(a.PolicyID, a.Name)
		if a.Quantity > req {
			surplus.Assets = append(surplus.Assets, Asset{
				PolicyID: a.PolicyID,
				Name:     a.Name,
				Quantity: a.Quantity - req,
			})
		}
	}
	return surplus
}

// SurplusLovelace returns how much of the given input lovelace is left once
// the required lovelace, fee buffer excluded, is paid. It is 0 if the inputs
// don't cover it.
// The fee buffer can exceed required.Lovelace when a refund absorbed part of
// it, the excess is then credited like the refund.
func SurplusLovelace(in uint64, required Balance, feeBuffer uint64) uint64 {
	credit := in + required.Refund + feeBuffer
	if credit <= required.Lovelace {
		return 0
	}
	return credit - required.Lovelace
}
