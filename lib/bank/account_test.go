package bank

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

type memRecorder struct {
	mu      sync.Mutex
	entries []string
}

func (r *memRecorder) Record(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, text)
	return nil
}

type failingRecorder struct{}

func (failingRecorder) Record(string) error {
	return errors.New("disk full")
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertBalance(t *testing.T, a *Account, want string) {
	t.Helper()
	if got := a.Balance(); !got.Equal(d(want)) {
		t.Fatalf("%v: balance = %s, want %s", a, got, want)
	}
}

func TestDeposit(t *testing.T) {
	tests := []struct {
		desc    string
		amount  string
		want    string
		wantErr error
	}{
		{desc: "positive", amount: "500", want: "1500"},
		{desc: "fraction", amount: "0.01", want: "1000.01"},
		{desc: "zero", amount: "0", want: "1000", wantErr: ErrInvalidAmount},
		{desc: "negative", amount: "-100", want: "1000", wantErr: ErrInvalidAmount},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			for _, a := range []*Account{
				NewChecking("CHK001", d("1000"), nil),
				NewSavings("SAV001", d("1000"), nil),
				NewCredit("CRD001", d("1000"), d("500"), nil),
			} {
				err := a.Deposit(d(test.amount))

				if !errors.Is(err, test.wantErr) {
					t.Fatalf("%v: Deposit(%s) returned %v, want %v", a, test.amount, err, test.wantErr)
				}
				assertBalance(t, a, test.want)
			}
		})
	}
}

func TestWithdraw(t *testing.T) {
	tests := []struct {
		desc    string
		amount  string
		want    string
		wantErr error
	}{
		{desc: "partial", amount: "400", want: "600"},
		{desc: "all", amount: "1000", want: "0"},
		{desc: "too much", amount: "1500", want: "1000", wantErr: ErrInsufficientFunds},
		{desc: "zero", amount: "0", want: "1000", wantErr: ErrInvalidAmount},
		{desc: "negative", amount: "-1", want: "1000", wantErr: ErrInvalidAmount},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			for _, a := range []*Account{
				NewChecking("CHK1", d("1000"), nil),
				NewSavings("SAV1", d("1000"), nil),
			} {
				err := a.Withdraw(d(test.amount))

				if !errors.Is(err, test.wantErr) {
					t.Fatalf("%v: Withdraw(%s) returned %v, want %v", a, test.amount, err, test.wantErr)
				}
				assertBalance(t, a, test.want)
			}
		})
	}
}

func TestWithdrawWithOverdraft(t *testing.T) {
	a, err := AccountBuilder{
		Kind:           CHECKING,
		Number:         "CHK1",
		Balance:        d("50"),
		OverdraftLimit: d("100"),
	}.Build()
	if err != nil {
		t.Fatalf("Build() returned unexpected error: %v", err)
	}

	if err := a.Withdraw(d("150")); err != nil {
		t.Fatalf("Withdraw(150) returned unexpected error: %v", err)
	}
	assertBalance(t, a, "-100")
	if err := a.Withdraw(d("0.01")); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("Withdraw(0.01) returned %v, want %v", err, ErrInsufficientFunds)
	}
	assertBalance(t, a, "-100")
}

func TestBuildInvalid(t *testing.T) {
	tests := []AccountBuilder{
		{Kind: Kind(7), Number: "X"},
		{Kind: CHECKING, Number: "X", OverdraftLimit: d("-1")},
		{Kind: CREDIT, Number: "X", CreditLimit: d("-1")},
	}
	for _, test := range tests {
		if _, err := test.Build(); err == nil {
			t.Errorf("%+v.Build() returned no error", test)
		}
	}
}

func TestTransfer(t *testing.T) {
	tests := []struct {
		desc             string
		from             *Account
		to               *Account
		amount           string
		wantFrom, wantTo string
		wantErr          error
	}{
		{
			desc:     "checking to savings",
			from:     NewChecking("CHK1", d("200"), nil),
			to:       NewSavings("SAV1", d("100"), nil),
			amount:   "50",
			wantFrom: "150",
			wantTo:   "150",
		},
		{
			desc:     "savings to checking, whole balance",
			from:     NewSavings("SAV1", d("100"), nil),
			to:       NewChecking("CHK1", d("0"), nil),
			amount:   "100",
			wantFrom: "0",
			wantTo:   "100",
		},
		{
			desc:     "savings to credit",
			from:     NewSavings("SAV1", d("100"), nil),
			to:       NewCredit("CRD1", d("-80"), d("500"), nil),
			amount:   "80",
			wantFrom: "20",
			wantTo:   "0",
		},
		{
			desc:     "insufficient funds",
			from:     NewSavings("SAV1", d("100"), nil),
			to:       NewChecking("CHK1", d("0"), nil),
			amount:   "100.01",
			wantFrom: "100",
			wantTo:   "0",
			wantErr:  ErrInsufficientFunds,
		},
		{
			desc:     "invalid amount",
			from:     NewChecking("CHK1", d("100"), nil),
			to:       NewSavings("SAV1", d("0"), nil),
			amount:   "0",
			wantFrom: "100",
			wantTo:   "0",
			wantErr:  ErrInvalidAmount,
		},
		{
			desc:     "from credit",
			from:     NewCredit("CRD1", d("100"), d("500"), nil),
			to:       NewSavings("SAV1", d("0"), nil),
			amount:   "10",
			wantFrom: "100",
			wantTo:   "0",
			wantErr:  ErrUnsupported,
		},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			sumBefore := test.from.Balance().Add(test.to.Balance())

			err := test.from.Transfer(test.to, d(test.amount))

			if !errors.Is(err, test.wantErr) {
				t.Fatalf("Transfer() returned %v, want %v", err, test.wantErr)
			}
			assertBalance(t, test.from, test.wantFrom)
			assertBalance(t, test.to, test.wantTo)
			if sumAfter := test.from.Balance().Add(test.to.Balance()); !sumAfter.Equal(sumBefore) {
				t.Fatalf("sum of balances changed from %s to %s", sumBefore, sumAfter)
			}
		})
	}
}

func TestTransferToSelf(t *testing.T) {
	a := NewChecking("CHK1", d("100"), nil)

	if err := a.Transfer(a, d("10")); !errors.Is(err, ErrSameAccount) {
		t.Fatalf("Transfer() returned %v, want %v", err, ErrSameAccount)
	}
	assertBalance(t, a, "100")
}

func TestTransferWithOverdraft(t *testing.T) {
	from, err := AccountBuilder{Kind: CHECKING, Number: "CHK1", Balance: d("10"), OverdraftLimit: d("40")}.Build()
	if err != nil {
		t.Fatalf("Build() returned unexpected error: %v", err)
	}
	to := NewSavings("SAV1", d("0"), nil)

	if err := from.Transfer(to, d("50")); err != nil {
		t.Fatalf("Transfer(50) returned unexpected error: %v", err)
	}
	if err := from.Transfer(to, d("0.01")); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("Transfer(0.01) returned %v, want %v", err, ErrInsufficientFunds)
	}
	assertBalance(t, from, "-40")
	assertBalance(t, to, "50")
}

func TestConcurrentTransfersConserveBalance(t *testing.T) {
	a := NewChecking("CHK1", d("1000"), nil)
	b := NewSavings("SAV1", d("1000"), nil)
	const n = 200
	var wg sync.WaitGroup
	wg.Add(2 * n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if err := a.Transfer(b, d("1")); err != nil {
				t.Errorf("a -> b: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := b.Transfer(a, d("1")); err != nil {
				t.Errorf("b -> a: %v", err)
			}
		}()
	}
	wg.Wait()

	if total := a.Balance().Add(b.Balance()); !total.Equal(d("2000")) {
		t.Fatalf("total = %s, want 2000", total)
	}
}

func TestBorrow(t *testing.T) {
	c := NewCredit("CRD1", d("0"), d("500"), nil)

	if err := c.Borrow(d("500")); err != nil {
		t.Fatalf("Borrow(500) returned unexpected error: %v", err)
	}
	assertBalance(t, c, "-500")
	if got := c.Principal(); !got.Equal(d("500")) {
		t.Fatalf("Principal() = %s, want 500", got)
	}

	if err := c.Borrow(d("1")); !errors.Is(err, ErrCreditLimitExceeded) {
		t.Fatalf("Borrow(1) returned %v, want %v", err, ErrCreditLimitExceeded)
	}
	assertBalance(t, c, "-500")
	if got := c.Principal(); !got.Equal(d("500")) {
		t.Fatalf("Principal() = %s, want 500", got)
	}
}

func TestBorrowInvalid(t *testing.T) {
	tests := []struct {
		desc    string
		account *Account
		amount  string
		wantErr error
	}{
		{"zero", NewCredit("CRD1", d("0"), d("500"), nil), "0", ErrInvalidAmount},
		{"negative", NewCredit("CRD1", d("0"), d("500"), nil), "-5", ErrInvalidAmount},
		{"over limit", NewCredit("CRD1", d("-400"), d("500"), nil), "100.01", ErrCreditLimitExceeded},
		{"checking", NewChecking("CHK1", d("0"), nil), "5", ErrUnsupported},
		{"savings", NewSavings("SAV1", d("0"), nil), "5", ErrUnsupported},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			before := test.account.Balance()

			err := test.account.Borrow(d(test.amount))

			if !errors.Is(err, test.wantErr) {
				t.Fatalf("Borrow(%s) returned %v, want %v", test.amount, err, test.wantErr)
			}
			assertBalance(t, test.account, before.String())
		})
	}
}

func TestCreditPrincipalOnLoad(t *testing.T) {
	tests := []struct {
		balance, want string
	}{
		{"-200", "200"},
		{"0", "0"},
		{"15", "0"},
	}
	for _, test := range tests {
		c := NewCredit("CRD1", d(test.balance), d("500"), nil)
		if got := c.Principal(); !got.Equal(d(test.want)) {
			t.Errorf("balance %s: Principal() = %s, want %s", test.balance, got, test.want)
		}
	}
}

func TestPayCredit(t *testing.T) {
	tests := []struct {
		desc          string
		policy        Overpayment
		amount        string
		wantBalance   string
		wantPrincipal string
		wantErr       error
	}{
		{desc: "partial", amount: "100", wantBalance: "-200", wantPrincipal: "200"},
		{desc: "full", amount: "300", wantBalance: "0", wantPrincipal: "0"},
		{desc: "overpayment allowed", amount: "350", wantBalance: "50", wantPrincipal: "-50"},
		{
			desc:          "overpayment rejected",
			policy:        OverpaymentReject,
			amount:        "350",
			wantBalance:   "-300",
			wantPrincipal: "300",
			wantErr:       ErrOverpayment,
		},
		{
			desc:          "full with reject policy",
			policy:        OverpaymentReject,
			amount:        "300",
			wantBalance:   "0",
			wantPrincipal: "0",
		},
		{desc: "zero", amount: "0", wantBalance: "-300", wantPrincipal: "300", wantErr: ErrInvalidAmount},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			c, err := AccountBuilder{
				Kind:        CREDIT,
				Number:      "CRD1",
				Balance:     d("-300"),
				CreditLimit: d("500"),
				Overpayment: test.policy,
			}.Build()
			if err != nil {
				t.Fatalf("Build() returned unexpected error: %v", err)
			}

			err = c.Pay(d(test.amount))

			if !errors.Is(err, test.wantErr) {
				t.Fatalf("Pay(%s) returned %v, want %v", test.amount, err, test.wantErr)
			}
			assertBalance(t, c, test.wantBalance)
			if got := c.Principal(); !got.Equal(d(test.wantPrincipal)) {
				t.Fatalf("Principal() = %s, want %s", got, test.wantPrincipal)
			}
		})
	}
}

func TestPayOnNonCredit(t *testing.T) {
	a := NewSavings("SAV1", d("10"), nil)

	if err := a.Pay(d("5")); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Pay() returned %v, want %v", err, ErrUnsupported)
	}
}

func TestRecordedEntries(t *testing.T) {
	var (
		rec = new(memRecorder)
		chk = NewChecking("CHK1", d("1000"), rec)
		sav = NewSavings("SAV1", d("0"), rec)
		crd = NewCredit("CRD1", d("0"), d("500"), rec)
	)

	chk.Deposit(d("250.5"))
	chk.Withdraw(d("0.5"))
	chk.Withdraw(d("5000"))
	chk.Transfer(sav, d("50"))
	crd.Borrow(d("100"))
	crd.Pay(d("40"))
	sav.InquireBalance()

	want := []string{
		"Deposit of $250.50 to CHK1. New balance: $1250.50",
		"Withdrawal of $0.50 from CHK1. New balance: $1250.00",
		"Withdrawal of $50.00 from CHK1. New balance: $1200.00",
		"Deposit of $50.00 to SAV1. New balance: $50.00",
		"Borrow of $100.00 on CRD1. New balance: $-100.00",
		"Payment of $40.00 to CRD1. New balance: $-60.00",
		"Balance inquiry for SAV1: $50.00",
	}
	if diff := cmp.Diff(want, rec.entries); diff != "" {
		t.Fatalf("recorded entries mismatch (-want +got):\n%s", diff)
	}
}

func TestRecorderFailureDoesNotFailOperation(t *testing.T) {
	a := NewChecking("CHK1", d("10"), failingRecorder{})

	if err := a.Deposit(d("5")); err != nil {
		t.Fatalf("Deposit() returned unexpected error: %v", err)
	}
	assertBalance(t, a, "15")
}

func TestKindString(t *testing.T) {
	var got []string
	for _, k := range Kinds {
		got = append(got, k.String())
	}
	if diff := cmp.Diff([]string{"Checking", "Savings", "Credit"}, got); diff != "" {
		t.Fatalf("Kind names mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOverpayment(t *testing.T) {
	tests := map[string]Overpayment{
		"":       OverpaymentAllow,
		"allow":  OverpaymentAllow,
		"reject": OverpaymentReject,
	}
	for input, want := range tests {
		got, err := ParseOverpayment(input)
		if err != nil {
			t.Fatalf("ParseOverpayment(%q) returned unexpected error: %v", input, err)
		}
		if got != want {
			t.Errorf("ParseOverpayment(%q) = %v, want %v", input, got, want)
		}
	}
	if _, err := ParseOverpayment("cap"); err == nil {
		t.Errorf("ParseOverpayment(%q) returned no error", "cap")
	}
}
