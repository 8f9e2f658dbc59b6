package ledger

import (
	"errors"
	"math"
	"sync"
	"testing"
)

// TestLedgerBalance はBalanceが初期残高を返すことを検証する。
func TestLedgerBalance(t *testing.T) {
	t.Parallel()

	l := New(5000)
	if got := l.Balance(); got != 5000 {
		t.Errorf("Balance() = %v, want %v", got, 5000.0)
	}
}

// TestLedgerDeposit はDepositを検証する。
func TestLedgerDeposit(t *testing.T) {
	t.Parallel()

	t.Run("正の金額を入金すると残高が増えること", func(t *testing.T) {
		t.Parallel()

		l := New(1000)
		newBalance, err := l.Deposit(250)
		if err != nil {
			t.Fatalf("Deposit()でエラーが発生: %v", err)
		}
		if newBalance != 1250 {
			t.Errorf("Deposit() = %v, want %v", newBalance, 1250.0)
		}
		if got := l.Balance(); got != 1250 {
			t.Errorf("Balance() = %v, want %v", got, 1250.0)
		}
	})

	t.Run("不正な金額はErrInvalidAmountで拒否され残高が変化しないこと", func(t *testing.T) {
		t.Parallel()

		l := New(1000)
		invalid := []float64{0, -1, -500, math.NaN(), math.Inf(1), math.Inf(-1)}
		for _, amount := range invalid {
			if _, err := l.Deposit(amount); !errors.Is(err, ErrInvalidAmount) {
				t.Errorf("Deposit(%v) = %v, want ErrInvalidAmount", amount, err)
			}
		}
		if got := l.Balance(); got != 1000 {
			t.Errorf("Balance() = %v, want %v", got, 1000.0)
		}
	})
}

// TestLedgerWithdraw はWithdrawを検証する。
func TestLedgerWithdraw(t *testing.T) {
	t.Parallel()

	t.Run("残高の範囲内の出金が成功すること", func(t *testing.T) {
		t.Parallel()

		l := New(1000)
		newBalance, err := l.Withdraw(400)
		if err != nil {
			t.Fatalf("Withdraw()でエラーが発生: %v", err)
		}
		if newBalance != 600 {
			t.Errorf("Withdraw() = %v, want %v", newBalance, 600.0)
		}
	})

	t.Run("残高と同額の出金が成功し残高がゼロになること", func(t *testing.T) {
		t.Parallel()

		l := New(1000)
		newBalance, err := l.Withdraw(1000)
		if err != nil {
			t.Fatalf("Withdraw()でエラーが発生: %v", err)
		}
		if newBalance != 0 {
			t.Errorf("Withdraw() = %v, want %v", newBalance, 0.0)
		}
	})

	t.Run("残高を超える出金はInsufficientFundsErrorで失敗すること", func(t *testing.T) {
		t.Parallel()

		l := New(5000)
		_, err := l.Withdraw(6000)

		var insufficient *InsufficientFundsError
		if !errors.As(err, &insufficient) {
			t.Fatalf("Withdraw() = %v, want *InsufficientFundsError", err)
		}
		if insufficient.Balance != 5000 {
			t.Errorf("Balance = %v, want %v", insufficient.Balance, 5000.0)
		}
		if insufficient.Requested != 6000 {
			t.Errorf("Requested = %v, want %v", insufficient.Requested, 6000.0)
		}
		if insufficient.Shortfall() != 1000 {
			t.Errorf("Shortfall() = %v, want %v", insufficient.Shortfall(), 1000.0)
		}
		if got := l.Balance(); got != 5000 {
			t.Errorf("失敗した出金後のBalance() = %v, want %v", got, 5000.0)
		}
	})

	t.Run("不正な金額はErrInvalidAmountで拒否され残高が変化しないこと", func(t *testing.T) {
		t.Parallel()

		l := New(1000)
		invalid := []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)}
		for _, amount := range invalid {
			if _, err := l.Withdraw(amount); !errors.Is(err, ErrInvalidAmount) {
				t.Errorf("Withdraw(%v) = %v, want ErrInvalidAmount", amount, err)
			}
		}
		if got := l.Balance(); got != 1000 {
			t.Errorf("Balance() = %v, want %v", got, 1000.0)
		}
	})
}

// TestLedgerScenario は入出金の一連のシナリオを検証する。
// 初期残高5000から出金6000が不足額1000で失敗し、入金1000の後に
// 出金6000が成功して残高がゼロになる。
func TestLedgerScenario(t *testing.T) {
	t.Parallel()

	l := New(5000)

	_, err := l.Withdraw(6000)
	var insufficient *InsufficientFundsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("Withdraw(6000) = %v, want *InsufficientFundsError", err)
	}
	if insufficient.Shortfall() != 1000 {
		t.Errorf("Shortfall() = %v, want %v", insufficient.Shortfall(), 1000.0)
	}
	if got := l.Balance(); got != 5000 {
		t.Fatalf("失敗した出金後のBalance() = %v, want %v", got, 5000.0)
	}

	newBalance, err := l.Deposit(1000)
	if err != nil {
		t.Fatalf("Deposit(1000)でエラーが発生: %v", err)
	}
	if newBalance != 6000 {
		t.Fatalf("Deposit(1000) = %v, want %v", newBalance, 6000.0)
	}

	newBalance, err = l.Withdraw(6000)
	if err != nil {
		t.Fatalf("Withdraw(6000)でエラーが発生: %v", err)
	}
	if newBalance != 0 {
		t.Errorf("Withdraw(6000) = %v, want %v", newBalance, 0.0)
	}
}

// TestLedgerConcurrency は並行する入出金の直列化可能性を検証する。
// 最終残高は初期残高に成功した入金の合計を加え、成功した出金の
// 合計を引いた値と一致しなければならない。
func TestLedgerConcurrency(t *testing.T) {
	t.Parallel()

	t.Run("並行する入金と出金で更新が失われないこと", func(t *testing.T) {
		t.Parallel()

		const (
			goroutines = 50
			iterations = 100
		)
		// すべての出金が成功するよう、出金総額以上の初期残高を与える
		l := New(goroutines * iterations * 10)

		var wg sync.WaitGroup
		for i := 0; i < goroutines; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				for j := 0; j < iterations; j++ {
					if _, err := l.Deposit(10); err != nil {
						t.Errorf("Deposit(10)でエラーが発生: %v", err)
						return
					}
				}
			}()
			go func() {
				defer wg.Done()
				for j := 0; j < iterations; j++ {
					if _, err := l.Withdraw(10); err != nil {
						t.Errorf("Withdraw(10)でエラーが発生: %v", err)
						return
					}
				}
			}()
		}
		wg.Wait()

		// 入金と出金は同数・同額なので残高は初期値に戻る
		if got := l.Balance(); got != goroutines*iterations*10 {
			t.Errorf("Balance() = %v, want %v", got, float64(goroutines*iterations*10))
		}
	})

	t.Run("並行する出金が残高を超過しないこと", func(t *testing.T) {
		t.Parallel()

		// 残高100に対して100の出金を20本同時に要求すると、
		// 成功できるのはちょうど1本だけ
		const goroutines = 20
		l := New(100)

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
		)
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := l.Withdraw(100); err == nil {
					mu.Lock()
					succeeded++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		if succeeded != 1 {
			t.Errorf("成功した出金の本数 = %d, want 1", succeeded)
		}
		if got := l.Balance(); got != 0 {
			t.Errorf("Balance() = %v, want %v", got, 0.0)
		}
	})

	t.Run("成功した操作の合計と最終残高が一致すること", func(t *testing.T) {
		t.Parallel()

		const goroutines = 40
		l := New(500)

		var (
			wg             sync.WaitGroup
			mu             sync.Mutex
			depositTotal   float64
			withdrawnTotal float64
		)
		for i := 0; i < goroutines; i++ {
			amount := float64(i%7 + 1)
			wg.Add(2)
			go func() {
				defer wg.Done()
				if _, err := l.Deposit(amount); err == nil {
					mu.Lock()
					depositTotal += amount
					mu.Unlock()
				}
			}()
			go func() {
				defer wg.Done()
				if _, err := l.Withdraw(amount * 3); err == nil {
					mu.Lock()
					withdrawnTotal += amount * 3
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		want := 500 + depositTotal - withdrawnTotal
		if got := l.Balance(); got != want {
			t.Errorf("Balance() = %v, want %v", got, want)
		}
		if got := l.Balance(); got < 0 {
			t.Errorf("残高が負になっている: %v", got)
		}
	})
}
