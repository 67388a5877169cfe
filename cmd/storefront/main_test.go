package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront/internal/auth"
	"storefront/internal/cart"
	"storefront/internal/config"
	"storefront/internal/storage"
)

// store is a stand-in for the store REST API that records what it was sent.
type store struct {
	mu      sync.Mutex
	orders  []map[string]string
	logouts []string
	payment map[string]string
	srv     *httptest.Server
}

func newStore(t *testing.T) *store {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s := &store{}
	r := gin.New()

	r.GET("/api/product", func(c *gin.Context) {
		c.JSON(http.StatusOK, []gin.H{
			{"id": 1, "name": "Tee 1", "description": "cotton", "price": "10.00"},
			{"id": 2, "name": "Tee 2", "description": "linen", "price": "4.50"},
		})
	})
	r.POST("/api/user/", func(c *gin.Context) {
		var body map[string]string
		_ = c.ShouldBindJSON(&body)
		c.JSON(http.StatusOK, gin.H{"id": 4, "name": body["name"], "email": "echo-" + body["email"]})
	})
	r.POST("/api/user/login/", func(c *gin.Context) {
		if c.PostForm("password") != "p" {
			c.JSON(http.StatusOK, gin.H{"error": "Invalid Password"})
			return
		}
		token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": 4,
			"email":   c.PostForm("email"),
			"role":    "customer",
			"exp":     time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("test-secret"))
		c.JSON(http.StatusOK, gin.H{"token": token, "user": gin.H{"id": 4, "name": c.PostForm("name"), "email": c.PostForm("email")}})
	})
	r.GET("/api/user/logout/:id", func(c *gin.Context) {
		s.mu.Lock()
		s.logouts = append(s.logouts, c.Param("id"))
		s.mu.Unlock()
		c.JSON(http.StatusOK, gin.H{"success": "Logout success"})
	})
	r.GET("/api/payment/gettoken/:id/:token", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"clientToken": "client-token", "success": true})
	})
	r.POST("/api/payment/process/:id/:token", func(c *gin.Context) {
		s.mu.Lock()
		s.payment = map[string]string{"nonce": c.PostForm("paymentMethodNonce"), "amount": c.PostForm("amount")}
		s.mu.Unlock()
		c.JSON(http.StatusOK, gin.H{"success": true, "transaction": gin.H{"id": "tx-1", "amount": c.PostForm("amount")}})
	})
	r.POST("/api/order/add/:id/:token/", func(c *gin.Context) {
		s.mu.Lock()
		s.orders = append(s.orders, map[string]string{
			"transaction_id": c.PostForm("transaction_id"),
			"amount":         c.PostForm("amount"),
			"products":       c.PostForm("products"),
		})
		s.mu.Unlock()
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	s.srv = httptest.NewServer(r)
	t.Cleanup(s.srv.Close)
	return s
}

// install points the commands at the fake store with in-memory local storage.
func install(t *testing.T, apiURL string, available bool) *storage.Memory {
	t.Helper()
	cfg := config.Default()
	cfg.APIBaseURL = apiURL
	cfg.HTTPTimeout = 5 * time.Second
	cfg.Storage.Backend = storage.BackendMemory

	mem := storage.NewMemory(0)
	shop = newAppWith(cfg, zap.NewNop(), mem, available)
	t.Cleanup(func() { shop = nil })
	return mem
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// closeCounter records how often the commands close local storage.
type closeCounter struct {
	*storage.Memory
	closed int
}

func (c *closeCounter) Close() error {
	c.closed++
	return c.Memory.Close()
}

func TestRun_ClosesStorageWhenCommandFails(t *testing.T) {
	s := newStore(t)
	cfg := config.Default()
	cfg.APIBaseURL = s.srv.URL + "/api"
	cfg.Storage.Backend = storage.BackendMemory

	store := &closeCounter{Memory: storage.NewMemory(0)}
	shop = newAppWith(cfg, zap.NewNop(), store, true)
	t.Cleanup(func() { shop = nil })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"cart", "add", "99"})

	err := run(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, store.closed)
}

func cartIDs(t *testing.T) []string {
	t.Helper()
	items, err := shop.cart.Load(context.Background())
	require.NoError(t, err)
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID.String())
	}
	return ids
}

func TestProductsCmd(t *testing.T) {
	s := newStore(t)
	install(t, s.srv.URL+"/api", true)

	out, err := execute(t, "products")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome to T-Shirt Store")
	assert.Contains(t, out, "Tee 1")
	assert.Contains(t, out, "$ 4.50")
}

func TestProductsCmd_StoreDown(t *testing.T) {
	s := newStore(t)
	install(t, s.srv.URL+"/api", true)
	s.srv.Close()

	out, err := execute(t, "products")
	require.Error(t, err)
	var se *shownError
	assert.ErrorAs(t, err, &se)
	assert.Contains(t, out, "Could not reach the store")
	assert.NotContains(t, out, "No products yet")
}

func TestCartCmds(t *testing.T) {
	s := newStore(t)
	install(t, s.srv.URL+"/api", true)

	for _, id := range []string{"1", "2", "1"} {
		_, err := execute(t, "cart", "add", id)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"1", "2", "1"}, cartIDs(t))

	out, err := execute(t, "cart")
	require.NoError(t, err)
	assert.Contains(t, out, "3 item(s)")
	assert.Contains(t, out, "Total: $ 24.50")

	_, err = execute(t, "cart", "remove", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, cartIDs(t))

	out, err = execute(t, "cart", "empty")
	require.NoError(t, err)
	assert.Contains(t, out, "No products")
	assert.Empty(t, cartIDs(t))
}

func TestCartAdd_UnknownProduct(t *testing.T) {
	s := newStore(t)
	install(t, s.srv.URL+"/api", true)

	_, err := execute(t, "cart", "add", "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Empty(t, cartIDs(t))
}

func TestCartCmd_CorruptSlotShowsEmptyCart(t *testing.T) {
	s := newStore(t)
	mem := install(t, s.srv.URL+"/api", true)
	require.NoError(t, mem.Set(context.Background(), cart.Key, "not json"))

	out, err := execute(t, "cart")
	require.NoError(t, err)
	assert.Contains(t, out, "No products")
}

func TestCartCmd_StorageUnavailable(t *testing.T) {
	s := newStore(t)
	install(t, s.srv.URL+"/api", false)

	out, err := execute(t, "cart", "add", "1")
	require.ErrorIs(t, err, storage.ErrUnavailable)
	assert.Contains(t, out, "Local storage is unavailable")
}

func TestSignupCmd(t *testing.T) {
	s := newStore(t)
	install(t, s.srv.URL+"/api", true)

	// the fake store never echoes the submitted email back
	out, err := execute(t, "signup", "--name", "ana", "--email", "a@x.com", "--password", "p")
	assert.ErrorIs(t, err, errSignupUnconfirmed)
	assert.Contains(t, out, "Check all fields again!")
}

func TestSigninCmd_WrongPassword(t *testing.T) {
	s := newStore(t)
	install(t, s.srv.URL+"/api", true)

	out, err := execute(t, "signin", "--name", "ana", "--email", "a@x.com", "--password", "nope")
	require.Error(t, err)
	assert.Contains(t, out, "Invalid Password")

	_, ok := shop.auth.IsAuthenticated(context.Background())
	assert.False(t, ok)
}

func TestSessionLifecycle(t *testing.T) {
	s := newStore(t)
	mem := install(t, s.srv.URL+"/api", true)
	ctx := context.Background()

	_, err := execute(t, "dashboard")
	require.ErrorIs(t, err, auth.ErrNotAuthenticated)

	out, err := execute(t, "signin", "--name", "ana", "--email", "a@x.com", "--password", "p")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as ana")

	out, err = execute(t, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "a@x.com")
	assert.Contains(t, out, "customer")
	assert.Contains(t, out, "0 item(s)")

	_, err = execute(t, "checkout")
	require.ErrorIs(t, err, errEmptyCart)

	for _, id := range []string{"1", "2"} {
		_, err := execute(t, "cart", "add", id)
		require.NoError(t, err)
	}

	out, err = execute(t, "checkout")
	require.NoError(t, err)
	assert.Contains(t, out, "order has been placed")
	assert.Contains(t, out, "tx-1")
	assert.Empty(t, cartIDs(t))

	s.mu.Lock()
	assert.Equal(t, map[string]string{"nonce": "fake-valid-nonce", "amount": "14.50"}, s.payment)
	require.Len(t, s.orders, 1)
	assert.Equal(t, map[string]string{"transaction_id": "tx-1", "amount": "14.50", "products": "Tee 1,Tee 2,"}, s.orders[0])
	s.mu.Unlock()

	_, err = execute(t, "cart", "add", "1")
	require.NoError(t, err)

	out, err = execute(t, "signout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out")

	_, err = mem.Get(ctx, auth.Key)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
	assert.Empty(t, cartIDs(t))

	s.mu.Lock()
	assert.Equal(t, []string{"4"}, s.logouts)
	s.mu.Unlock()
}
