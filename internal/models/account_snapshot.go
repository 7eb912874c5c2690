package models

import (
	"github.com/shopspring/decimal"
)

// AccountSnapshot is a read-only copy of a client account at one point in time
type AccountSnapshot struct {
	ClientID  ClientID        // owner of the account
	Available decimal.Decimal // funds that can be withdrawn or disputed
	Held      decimal.Decimal // funds frozen by open disputes
	Total     decimal.Decimal // available + held
	Locked    bool            // set by a chargeback, never cleared
}
