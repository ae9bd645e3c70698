package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/config"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/models"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/payments"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/services"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/throttle"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/logging"
)

// output collects what printlnFn prints.
type output struct {
	mu    sync.Mutex
	lines []string
}

func (o *output) all() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.lines...)
}

func (o *output) contains(sub string) bool {
	for _, l := range o.all() {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}

func capturePrintln(t *testing.T) *output {
	t.Helper()
	o := &output{}
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = strings.TrimSpace(toString(v))
		}
		o.mu.Lock()
		o.lines = append(o.lines, strings.Join(parts, " "))
		o.mu.Unlock()
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return o
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// stubInputs makes getSimpleText return texts in order and getPassword
// return passwords in order.
func stubInputs(t *testing.T, texts []string, passwords []string) {
	t.Helper()
	orig := getSimpleText
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		s := texts[0]
		texts = texts[1:]
		return s, nil
	}
	t.Cleanup(func() { getSimpleText = orig })
	stubPasswords(t, passwords...)
}

func stubPasswords(t *testing.T, passwords ...string) {
	t.Helper()
	orig := getPassword
	var mu sync.Mutex
	getPassword = func(_ io.Writer) ([]byte, error) {
		mu.Lock()
		defer mu.Unlock()
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		p := passwords[0]
		passwords = passwords[1:]
		return []byte(p), nil
	}
	t.Cleanup(func() { getPassword = orig })
}

// fakeAuth is a scripted services.AuthService.
type fakeAuth struct {
	mu sync.Mutex

	lock       throttle.LockState
	lockErr    error
	loginErrs  []error
	session    *models.Session
	sessionErr error
	logoutErr  error
	pingErr    error

	loginUsers   []string
	watchStarted []throttle.LockState
	onTick       func(throttle.LockState)
	loggedOut    bool
}

func (f *fakeAuth) LockStatus(context.Context) (throttle.LockState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lock, f.lockErr
}

func (f *fakeAuth) Login(_ context.Context, username string, _ []byte) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginUsers = append(f.loginUsers, username)
	if len(f.loginErrs) > 0 {
		err := f.loginErrs[0]
		f.loginErrs = f.loginErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &models.Session{Username: username, Token: "tok"}, nil
}

func (f *fakeAuth) WatchLockout(_ context.Context, st throttle.LockState, onTick func(throttle.LockState)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.watchStarted = append(f.watchStarted, st)
	f.onTick = onTick
}

func (f *fakeAuth) Session(context.Context) (*models.Session, error) {
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	if f.session == nil {
		return nil, services.ErrNotLoggedIn
	}
	return f.session, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.loggedOut = true
	return f.logoutErr
}

func (f *fakeAuth) Ping(context.Context) error  { return f.pingErr }
func (f *fakeAuth) Close(context.Context) error { return nil }

// fakeSubs is a scripted services.SubscriptionService.
type fakeSubs struct {
	intentErr error
	result    payments.ConfirmResult
	delay     time.Duration

	plans     []string
	confirmed []string
}

func (f *fakeSubs) CreateIntent(_ context.Context, planID string) (*models.PaymentIntent, error) {
	f.plans = append(f.plans, planID)
	if f.intentErr != nil {
		return nil, f.intentErr
	}
	return &models.PaymentIntent{ClientSecret: "cs", SubscriptionID: "sub_" + planID}, nil
}

func (f *fakeSubs) Confirm(_ context.Context, id string) <-chan payments.ConfirmResult {
	f.confirmed = append(f.confirmed, id)
	ch := make(chan payments.ConfirmResult, 1)
	go func() {
		time.Sleep(f.delay)
		ch <- f.result
		close(ch)
	}()
	return ch
}

func newTestApp(auth services.AuthService, subs services.SubscriptionService, in string) (*App, *strings.Builder) {
	out := &strings.Builder{}
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return &App{
		config:              cfg,
		logger:              logging.Discard(),
		authService:         auth,
		subscriptionService: subs,
		reader:              bufio.NewReader(strings.NewReader(in)),
		out:                 out,
	}, out
}
