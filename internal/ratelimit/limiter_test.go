package ratelimit

import (
	"net/http"
	"sync"
	"testing"
	"time"
)

// mockClock is a controllable clock for testing.
type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *mockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestCheckLogin_Lockout(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		LoginMaxAttempts:  3,
		LoginLockout:      5 * time.Minute,
		LoginMaxIPPerHour: 100,
		Clock:             clock,
	})
	defer limiter.Close()

	identifier := "test@example.com"
	ip := "192.168.1.1"

	// First 3 failures are recorded, the third triggers lockout
	for i := 0; i < 3; i++ {
		result := limiter.CheckLogin(identifier, ip)
		if !result.Allowed {
			t.Errorf("Attempt %d should be allowed, got blocked: %s", i+1, result.Reason)
		}
		lockedOut := limiter.RecordLoginFailure(identifier, ip)
		if i < 2 && lockedOut {
			t.Errorf("Attempt %d should not trigger lockout", i+1)
		}
		if i == 2 && !lockedOut {
			t.Error("3rd failure should trigger lockout")
		}
	}

	// During lockout, requests are blocked
	clock.Advance(1 * time.Minute)
	result := limiter.CheckLogin(identifier, ip)
	if result.Allowed {
		t.Error("Request during lockout should be blocked")
	}
	if result.Reason != "lockout" {
		t.Errorf("Expected reason 'lockout', got '%s'", result.Reason)
	}
	if result.RetryAfter != 4*time.Minute {
		t.Errorf("Expected RetryAfter 4m, got %v", result.RetryAfter)
	}

	// After lockout expires, requests are allowed again
	clock.Advance(5 * time.Minute)
	result = limiter.CheckLogin(identifier, ip)
	if !result.Allowed {
		t.Errorf("Request after lockout should be allowed, got blocked: %s", result.Reason)
	}
}

func TestCheckLogin_IPLimit(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		LoginMaxAttempts:  100,
		LoginLockout:      5 * time.Minute,
		LoginMaxIPPerHour: 2,
		Clock:             clock,
	})
	defer limiter.Close()

	ip := "10.0.0.5"

	// Different identifiers, same IP
	for i := 0; i < 2; i++ {
		clock.Advance(1 * time.Second)
		result := limiter.CheckLogin("user"+string(rune('a'+i))+"@example.com", ip)
		if !result.Allowed {
			t.Errorf("Attempt %d should be allowed, got blocked: %s", i+1, result.Reason)
		}
		limiter.RecordLoginFailure("user"+string(rune('a'+i))+"@example.com", ip)
	}

	clock.Advance(1 * time.Second)
	result := limiter.CheckLogin("userz@example.com", ip)
	if result.Allowed {
		t.Error("3rd attempt from same IP should be blocked")
	}
	if result.Reason != "ip_hourly_limit" {
		t.Errorf("Expected reason 'ip_hourly_limit', got '%s'", result.Reason)
	}

	// After an hour the window resets
	clock.Advance(1 * time.Hour)
	result = limiter.CheckLogin("userz@example.com", ip)
	if !result.Allowed {
		t.Errorf("Attempt after hour should be allowed, got blocked: %s", result.Reason)
	}
}

func TestResetLoginAttempts(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		LoginMaxAttempts:  3,
		LoginLockout:      5 * time.Minute,
		LoginMaxIPPerHour: 100,
		Clock:             clock,
	})
	defer limiter.Close()

	identifier := "reset@example.com"
	ip := "192.168.1.2"

	limiter.RecordLoginFailure(identifier, ip)
	limiter.RecordLoginFailure(identifier, ip)
	limiter.ResetLoginAttempts(identifier)

	// Counter cleared, two more failures do not lock out
	limiter.RecordLoginFailure(identifier, ip)
	if lockedOut := limiter.RecordLoginFailure(identifier, ip); lockedOut {
		t.Error("Failures after reset should not trigger lockout yet")
	}
}

func TestCheckLogin_CaseInsensitiveIdentifier(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		LoginMaxAttempts:  2,
		LoginLockout:      5 * time.Minute,
		LoginMaxIPPerHour: 100,
		Clock:             clock,
	})
	defer limiter.Close()

	limiter.RecordLoginFailure("User@Example.com", "192.168.1.3")
	limiter.RecordLoginFailure("user@example.com", "192.168.1.3")

	result := limiter.CheckLogin("USER@EXAMPLE.COM", "192.168.1.3")
	if result.Allowed {
		t.Error("Case variants should share a failure counter")
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		trustProxy bool
		want       string
	}{
		{"direct connection", "203.0.113.5:4312", "", false, "203.0.113.5"},
		{"untrusted proxy ignores XFF", "203.0.113.5:4312", "198.51.100.7", false, "203.0.113.5"},
		{"trusted proxy uses XFF", "10.0.0.1:80", "198.51.100.7", true, "198.51.100.7"},
		{"trusted proxy skips private", "10.0.0.1:80", "198.51.100.7, 10.0.0.2", true, "198.51.100.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &http.Request{RemoteAddr: tt.remoteAddr, Header: http.Header{}}
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if got := GetClientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"john@example.com", "jo***@example.com"},
		{"jo@example.com", "***@example.com"},
		{"+221771234567", "***4567"},
		{"ab", "***"},
	}

	for _, tt := range tests {
		if got := SanitizeIdentifier(tt.in); got != tt.want {
			t.Errorf("SanitizeIdentifier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
