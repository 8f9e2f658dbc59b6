// Package ledger はプロセス全体で共有される単一の口座残高を管理する。
//
// 残高はプロセス起動時に初期値で一度だけ生成され、プロセス終了まで
// メモリ上にのみ存在する（永続化しない）。すべての参照・更新操作は
// ミューテックスで直列化され、並行アクセスによる更新の喪失や
// 二重出金を防ぐ。
package ledger

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

// ErrInvalidAmount は金額が正の有限数でない場合に返されるエラー。
// ゼロ・負数・NaN・無限大をすべて含む。
var ErrInvalidAmount = errors.New("金額は正の数値でなければなりません")

// InsufficientFundsError は残高を超える出金要求を表すエラー。
// 呼び出し元が金額を修正して再試行できるよう、要求時点の残高と
// 要求額を保持する。
type InsufficientFundsError struct {
	// Balance は出金要求時点の残高。
	Balance float64
	// Requested は要求された出金額。
	Requested float64
}

// Error はerrorインターフェースを実装する。
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("残高が不足しています: 残高=%.2f, 要求額=%.2f, 不足額=%.2f",
		e.Balance, e.Requested, e.Shortfall())
}

// Shortfall は不足額（要求額 - 残高）を返す。
func (e *InsufficientFundsError) Shortfall() float64 {
	return e.Requested - e.Balance
}

// Ledger は単一の共有残高とその原子的な更新操作を提供する。
// すべてのハンドラから共有されるため、読み取りを含む全操作を
// ミューテックスで直列化する。ロックは算術更新の間のみ保持し、
// I/Oをまたいで保持することはない。
type Ledger struct {
	// mu は残高の読み書きを直列化するミューテックス。
	mu sync.Mutex
	// balance は現在の残高。出金によって負になることはない。
	balance float64
}

// New は初期残高を指定してLedgerを生成する。
func New(seed float64) *Ledger {
	return &Ledger{balance: seed}
}

// Balance は現在の残高を返す。
func (l *Ledger) Balance() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// Deposit は金額を残高に加算し、新しい残高を返す。
// 金額が正の有限数でない場合はErrInvalidAmountを返し、残高は変化しない。
func (l *Ledger) Deposit(amount float64) (float64, error) {
	if !validAmount(amount) {
		return 0, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.balance += amount
	return l.balance, nil
}

// Withdraw は金額を残高から減算し、新しい残高を返す。
// 金額が正の有限数でない場合はErrInvalidAmountを返す。
// 残高を超える出金はInsufficientFundsErrorで失敗し、残高は変化しない。
// 残高の検査と減算は同一のロック区間で行うため、並行する出金が
// 古い残高に対して同時に成功することはない。
func (l *Ledger) Withdraw(amount float64) (float64, error) {
	if !validAmount(amount) {
		return 0, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if amount > l.balance {
		return 0, &InsufficientFundsError{Balance: l.balance, Requested: amount}
	}
	l.balance -= amount
	return l.balance, nil
}

// validAmount は金額が正の有限数であるかを検証する。ゼロは無効。
func validAmount(amount float64) bool {
	return !math.IsNaN(amount) && !math.IsInf(amount, 0) && amount > 0
}
