package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimit_BurstThenRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/login", RateLimit(1, 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest("GET", "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	assert.Equal(t, http.StatusOK, statuses[0])
	assert.Equal(t, http.StatusOK, statuses[1])
	assert.Equal(t, http.StatusTooManyRequests, statuses[2])
}

func TestRateLimit_ClientsTrackedSeparately(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/login", RateLimit(1, 1), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	first, _ := http.NewRequest("GET", "/login", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	w1 := httptest.NewRecorder()
	router.ServeHTTP(w1, first)

	second, _ := http.NewRequest("GET", "/login", nil)
	second.RemoteAddr = "10.0.0.2:1234"
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, second)

	assert.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, http.StatusOK, w2.Code)
}

func TestRateLimit_IdleClientsSwept(t *testing.T) {
	limiters := newIPLimiters(1, 1)
	now := time.Now()

	limiters.allow("10.0.0.1", now)
	limiters.allow("10.0.0.2", now.Add(limiterIdleTTL))

	limiters.sweep(now.Add(limiterIdleTTL + sweepInterval))

	_, idleKept := limiters.clients["10.0.0.1"]
	_, activeKept := limiters.clients["10.0.0.2"]
	assert.False(t, idleKept)
	assert.True(t, activeKept)
}

func TestRateLimit_SweptClientGetsFreshBucket(t *testing.T) {
	limiters := newIPLimiters(1, 1)
	now := time.Now()

	assert.True(t, limiters.allow("10.0.0.1", now))
	assert.False(t, limiters.allow("10.0.0.1", now))

	limiters.sweep(now.Add(limiterIdleTTL + sweepInterval))

	assert.True(t, limiters.allow("10.0.0.1", now.Add(limiterIdleTTL+sweepInterval)))
}
