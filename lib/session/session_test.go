package session

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sboehler/teller/lib/config"
)

const users = `ID,First Name,Last Name,Date of Birth,Address,Phone Number,Checking Account Number,Checking Starting Balance,Savings Account Number,Savings Starting Balance,Credit Account Number,Credit Max,Credit Starting Balance
1,Mickey,Mouse,1-Jan-28,"1313 Disneyland Dr, Anaheim, CA 92802",(714) 781-4636,1000,72,2000,5000,3000,1500,-453.5
2,Donald,Duck,9-Jun-34,"1180 Seven Seas Dr, Lake Buena Vista, FL 32830",(407) 939-5277,1001,4,2001,3000,3001,2500,-2400
x,Broken,Row
`

func setup(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Data = filepath.Join(dir, "bank_users.csv")
	cfg.Log = filepath.Join(dir, "transaction_log.txt")
	if err := os.WriteFile(cfg.Data, []byte(users), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.Log, []byte("earlier entry\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestOpenAndClose(t *testing.T) {
	var (
		ctx    = context.Background()
		cfg    = setup(t)
		out    bytes.Buffer
		logger = slog.New(slog.NewTextHandler(&out, nil))
	)

	s, err := Open(ctx, cfg, logger)
	if err != nil {
		t.Fatalf("Open() returned unexpected error: %v", err)
	}
	if s.Directory.Len() != 2 {
		t.Fatalf("Directory.Len() = %d, want 2", s.Directory.Len())
	}
	if !strings.Contains(out.String(), "skipped record") {
		t.Fatalf("log output %q does not report the skipped record", out.String())
	}
	_, acc, err := s.Directory.FindAccount("1001")
	if err != nil {
		t.Fatal(err)
	}
	if err := acc.Deposit(decimal.NewFromInt(6)); err != nil {
		t.Fatal(err)
	}
	s.Record("Donald Duck deposited $6.00 to 1001")
	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close() returned unexpected error: %v", err)
	}

	reopened, err := Open(ctx, cfg, logger)
	if err != nil {
		t.Fatal(err)
	}
	_, acc, err = reopened.Directory.FindAccount("1001")
	if err != nil {
		t.Fatal(err)
	}
	if !acc.Balance().Equal(decimal.NewFromInt(10)) {
		t.Fatalf("Balance() = %s, want 10", acc.Balance())
	}
	var texts []string
	for _, e := range reopened.Log.Entries() {
		texts = append(texts, e.Text)
	}
	want := []string{
		"earlier entry",
		"Deposit of $6.00 to 1001. New balance: $10.00",
		"Donald Duck deposited $6.00 to 1001",
	}
	if strings.Join(texts, "\n") != strings.Join(want, "\n") {
		t.Fatalf("Entries() = %q, want %q", texts, want)
	}
}

func TestOpenMissingData(t *testing.T) {
	var (
		ctx    = context.Background()
		cfg    = setup(t)
		logger = slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	)
	cfg.Data = filepath.Join(t.TempDir(), "missing.csv")

	s, err := Open(ctx, cfg, logger)

	if err != nil {
		t.Fatalf("Open() returned unexpected error: %v", err)
	}
	if s.Directory.Len() != 0 {
		t.Fatalf("Directory.Len() = %d, want 0", s.Directory.Len())
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close() returned unexpected error: %v", err)
	}
	if _, err := os.Stat(cfg.Data); !os.IsNotExist(err) {
		t.Fatalf("Close() created %s", cfg.Data)
	}
}

func TestOpenInvalidConfig(t *testing.T) {
	cfg := setup(t)
	cfg.CreditOverpayment = "sometimes"

	if _, err := Open(context.Background(), cfg, nil); err == nil {
		t.Fatalf("Open() returned nil, want an error")
	}
}
