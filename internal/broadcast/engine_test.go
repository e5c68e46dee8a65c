package broadcast

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/AkhmedovBotir/truckbot/internal/domain"
	"github.com/AkhmedovBotir/truckbot/internal/store"
)

type fakeSettings struct {
	cfg domain.Settings
	err error
}

func (f *fakeSettings) Settings(context.Context) (domain.Settings, error) { return f.cfg, f.err }
func (f *fakeSettings) UpdateSettings(context.Context, domain.SettingsPatch) error {
	return nil
}

type fakeUsers struct {
	users []domain.User
	err   error
}

func (f *fakeUsers) UpsertUser(context.Context, *domain.User) error { return nil }
func (f *fakeUsers) UserByID(context.Context, int64) (*domain.User, error) {
	return nil, store.ErrNotFound
}
func (f *fakeUsers) UserByPhone(context.Context, string) (*domain.User, error) {
	return nil, store.ErrNotFound
}
func (f *fakeUsers) SetTrackCode(context.Context, string, string) error { return nil }
func (f *fakeUsers) ListUsers(context.Context) ([]domain.User, error)   { return f.users, f.err }
func (f *fakeUsers) UserStats(context.Context) (store.UserStats, error) {
	return store.UserStats{}, nil
}

type fakeRates struct {
	known map[string]domain.Rate

	mu       sync.Mutex
	notFound []string
}

func (f *fakeRates) FetchByCode(_ context.Context, code string, _ time.Time) (domain.Rate, bool) {
	if r, ok := f.known[code]; ok {
		return r, true
	}
	f.mu.Lock()
	f.notFound = append(f.notFound, code)
	f.mu.Unlock()
	return domain.Rate{}, false
}

type fakeDelivery struct {
	mu     sync.Mutex
	sent   map[string]string // recipient -> text
	failOn map[string]bool
}

func newFakeDelivery(failOn ...string) *fakeDelivery {
	f := &fakeDelivery{sent: map[string]string{}, failOn: map[string]bool{}}
	for _, r := range failOn {
		f.failOn[r] = true
	}
	return f
}

func (f *fakeDelivery) Send(_ context.Context, to Recipient, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn[to.String()] {
		return errors.New("blocked")
	}
	f.sent[to.String()] = text
	return nil
}

func usdRate(t *testing.T) domain.Rate {
	t.Helper()
	v, err := decimal.NewFromString("12650.42")
	if err != nil {
		t.Fatal(err)
	}
	d, err := decimal.NewFromString("12.50")
	if err != nil {
		t.Fatal(err)
	}
	return domain.Rate{Code: "USD", Name: "US Dollar", Value: v, Diff: d}
}

func newTestEngine(t *testing.T, cfg domain.Settings, users []domain.User, src RateSource, d Delivery) *Engine {
	t.Helper()
	return NewEngine(
		&fakeSettings{cfg: cfg},
		&fakeUsers{users: users},
		src, d, zap.NewNop(),
		Options{Workers: 2, PerSecond: 1000, SendTimeout: time.Second, CycleTimeout: 5 * time.Second},
	)
}

func TestRunCycleNoCurrencies(t *testing.T) {
	d := newFakeDelivery()
	e := newTestEngine(t,
		domain.Settings{SendTime: "09:00"},
		[]domain.User{{UserID: 1}},
		&fakeRates{known: map[string]domain.Rate{"USD": usdRate(t)}},
		d,
	)
	if err := e.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle: %v", err)
	}
	if len(d.sent) != 0 {
		t.Fatalf("empty selection must deliver nothing, sent %d", len(d.sent))
	}
}

func TestRunCycleUnknownCurrencySkipped(t *testing.T) {
	src := &fakeRates{known: map[string]domain.Rate{"USD": usdRate(t)}}
	d := newFakeDelivery()
	e := newTestEngine(t,
		domain.Settings{SelectedCurrencies: []string{"USD", "ZZZ"}, SendTime: "09:00"},
		[]domain.User{{UserID: 1}},
		src, d,
	)
	if err := e.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle: %v", err)
	}

	msg := d.sent["1"]
	if !strings.Contains(msg, "USD") {
		t.Errorf("message missing USD block:\n%s", msg)
	}
	if strings.Contains(msg, "ZZZ") {
		t.Errorf("message must not mention the unknown code:\n%s", msg)
	}
	if len(src.notFound) != 1 || src.notFound[0] != "ZZZ" {
		t.Errorf("not-found lookups = %v, want exactly [ZZZ]", src.notFound)
	}
}

func TestRunCycleZeroResolved(t *testing.T) {
	d := newFakeDelivery()
	e := newTestEngine(t,
		domain.Settings{SelectedCurrencies: []string{"ZZZ"}, SendTime: "09:00"},
		[]domain.User{{UserID: 1}},
		&fakeRates{known: map[string]domain.Rate{}},
		d,
	)
	if err := e.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle: %v", err)
	}
	if len(d.sent) != 0 {
		t.Fatalf("zero resolved rates must deliver nothing, sent %d", len(d.sent))
	}
}

func TestRunCycleFailureIsolation(t *testing.T) {
	// Recipient 2 is blocked; 1, 3 and the channel must still receive.
	d := newFakeDelivery("2")
	e := newTestEngine(t,
		domain.Settings{
			SelectedCurrencies: []string{"USD"},
			SendTime:           "09:00",
			Channels:           []string{"@news"},
		},
		[]domain.User{{UserID: 1}, {UserID: 2}, {UserID: 3}},
		&fakeRates{known: map[string]domain.Rate{"USD": usdRate(t)}},
		d,
	)
	if err := e.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle: %v", err)
	}

	for _, want := range []string{"1", "3", "@news"} {
		if _, ok := d.sent[want]; !ok {
			t.Errorf("recipient %s did not receive the message", want)
		}
	}
	if _, ok := d.sent["2"]; ok {
		t.Error("blocked recipient should not be marked as sent")
	}
}

func TestRunCycleSettingsError(t *testing.T) {
	e := NewEngine(
		&fakeSettings{err: errors.New("disk gone")},
		&fakeUsers{},
		&fakeRates{}, newFakeDelivery(), zap.NewNop(), Options{},
	)
	if err := e.RunCycle(context.Background()); err == nil {
		t.Fatal("unreadable settings must fail the cycle")
	}
}
