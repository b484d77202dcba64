package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func filterRequest(blocklist, allowlist []string, remote string) int {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/reset", nil)
	c.Request.RemoteAddr = remote
	IPFilterMiddleware(blocklist, allowlist)(c)
	return w.Code
}

func TestIPFilterGlobalBlocklist(t *testing.T) {
	gin.SetMode(gin.TestMode)

	if code := filterRequest([]string{"192.168.1.0/24"}, nil, "192.168.1.100:1234"); code != 403 {
		t.Errorf("Expected 403 for blocked IP, got %d", code)
	}
	if code := filterRequest([]string{"192.168.1.0/24"}, nil, "10.0.0.1:1234"); code == 403 {
		t.Error("Unblocked IP should be allowed")
	}
}

func TestIPFilterAllowlist(t *testing.T) {
	gin.SetMode(gin.TestMode)

	allow := []string{"127.0.0.1", "10.0.0.0/8"}
	if code := filterRequest(nil, allow, "127.0.0.1:5555"); code == 403 {
		t.Error("Loopback should be allowed")
	}
	if code := filterRequest(nil, allow, "10.1.2.3:5555"); code == 403 {
		t.Error("Address in allowed range should be allowed")
	}
	if code := filterRequest(nil, allow, "203.0.113.5:5555"); code != 403 {
		t.Errorf("Expected 403 outside allowlist, got %d", code)
	}
}

func TestIPFilterBlocklistWinsOverAllowlist(t *testing.T) {
	gin.SetMode(gin.TestMode)

	if code := filterRequest([]string{"10.0.0.5"}, []string{"10.0.0.0/8"}, "10.0.0.5:1"); code != 403 {
		t.Errorf("Expected 403, got %d", code)
	}
}

func TestIPFilterInvalidAddress(t *testing.T) {
	gin.SetMode(gin.TestMode)

	if code := filterRequest(nil, nil, "not-an-ip"); code != 403 {
		t.Errorf("Expected 403 for unparsable client, got %d", code)
	}
}
