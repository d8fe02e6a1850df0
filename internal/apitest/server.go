// Package apitest runs an in-memory banking API for tests. It follows the
// routes and payloads of the real backend closely enough to exercise the
// client end to end; it is not a ledger.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/hance08/bankdash/internal/model"
	"golang.org/x/crypto/bcrypt"
)

var secret = []byte("apitest-secret")

type account struct {
	user      model.User
	hash      []byte
	createdAt time.Time
}

type failure struct {
	status int
	body   any
}

// Server is a fake banking API listening on a local port.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	nextID   int
	accounts map[string]*account // by email
	ledger   map[model.ID][]model.Transaction
	fail     *failure
	requests []string
	tokens   []string
	now      func() time.Time
}

// New starts the server. Callers must Close it.
func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		accounts: make(map[string]*account),
		ledger:   make(map[model.ID][]model.Transaction),
		now:      time.Now,
	}

	r := gin.New()
	r.Use(s.record, s.injectFailure)

	api := r.Group("/api")
	api.POST("/auth/login", s.login)
	api.POST("/auth/register", s.register)

	authed := api.Group("", s.authenticate)
	authed.GET("/transactions/:userId", s.listOwnTransactions)
	authed.POST("/transactions/deposit", s.mutate(model.KindDeposit))
	authed.POST("/transactions/withdraw", s.mutate(model.KindWithdraw))

	banker := authed.Group("/banker", requireRole(model.RoleBanker))
	banker.GET("/customers", s.listCustomers)
	banker.GET("/customers/:id/transactions", s.listCustomerTransactions)

	s.Server = httptest.NewServer(r)
	return s
}

// BaseURL is the API root to hand to api.NewClient.
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

// AddUser registers an account and returns its user record.
func (s *Server) AddUser(name, email, password string, role model.Role) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(name, email, password, role)
}

func (s *Server) addUserLocked(name, email, password string, role model.Role) model.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	s.nextID++
	u := model.User{ID: model.ID(strconv.Itoa(s.nextID)), Name: name, Email: email, Role: role}
	s.accounts[strings.ToLower(email)] = &account{user: u, hash: hash, createdAt: s.now()}
	return u
}

// AddTransaction appends a ledger entry for userID at the given time and
// returns it with its resulting balance.
func (s *Server) AddTransaction(userID model.ID, kind model.Kind, amount float64, at time.Time) model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLocked(userID, kind, amount, at)
}

func (s *Server) appendLocked(userID model.ID, kind model.Kind, amount float64, at time.Time) model.Transaction {
	balance := s.balanceLocked(userID)
	if kind == model.KindWithdraw {
		balance -= amount
	} else {
		balance += amount
	}
	s.nextID++
	tx := model.Transaction{
		ID:        model.ID(strconv.Itoa(s.nextID)),
		Kind:      kind,
		Amount:    amount,
		Balance:   balance,
		CreatedAt: at,
	}
	s.ledger[userID] = append(s.ledger[userID], tx)
	return tx
}

func (s *Server) balanceLocked(userID model.ID) float64 {
	var latest model.Transaction
	for _, tx := range s.ledger[userID] {
		if !tx.CreatedAt.Before(latest.CreatedAt) {
			latest = tx
		}
	}
	return latest.Balance
}

// FailNext makes the next request fail with status and a JSON body.
func (s *Server) FailNext(status int, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = &failure{status: status, body: body}
}

// Requests lists "METHOD /path" of every request served so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// Tokens lists the Authorization headers seen so far ("" when absent).
func (s *Server) Tokens() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.tokens...)
}

// Token issues a signed token for u that expires after ttl.
func Token(u model.User, ttl time.Duration) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID.String(),
		"role":    string(u.Role),
		"exp":     time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		panic(err)
	}
	return signed
}

func (s *Server) record(c *gin.Context) {
	s.mu.Lock()
	s.requests = append(s.requests, c.Request.Method+" "+c.Request.URL.Path)
	s.tokens = append(s.tokens, c.GetHeader("Authorization"))
	s.mu.Unlock()
	c.Next()
}

func (s *Server) injectFailure(c *gin.Context) {
	s.mu.Lock()
	f := s.fail
	s.fail = nil
	s.mu.Unlock()

	if f == nil {
		c.Next()
		return
	}
	if f.body == nil {
		c.AbortWithStatus(f.status)
		return
	}
	c.AbortWithStatusJSON(f.status, f.body)
}

func (s *Server) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	s.mu.Lock()
	acc, ok := s.accounts[strings.ToLower(req.Email)]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(acc.hash, []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": Token(acc.user, 24*time.Hour),
		"user":  acc.user,
	})
}

func (s *Server) register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}
	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Password must be at least 6 characters"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[strings.ToLower(req.Email)]; exists {
		c.JSON(http.StatusConflict, gin.H{"message": "Email already registered"})
		return
	}
	s.addUserLocked(req.Name, req.Email, req.Password, model.RoleCustomer)
	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful"})
}

func (s *Server) authenticate(c *gin.Context) {
	raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing token"})
		return
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return
	}

	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	c.Set("user_id", model.ID(userID))
	c.Set("role", model.Role(role))
	c.Next()
}

func requireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.MustGet("role").(model.Role) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
			return
		}
		c.Next()
	}
}

func (s *Server) listOwnTransactions(c *gin.Context) {
	userID := model.ID(c.Param("userId"))
	if c.MustGet("user_id").(model.ID) != userID && c.MustGet("role").(model.Role) != model.RoleBanker {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}
	c.JSON(http.StatusOK, s.transactions(userID))
}

func (s *Server) listCustomerTransactions(c *gin.Context) {
	c.JSON(http.StatusOK, s.transactions(model.ID(c.Param("id"))))
}

// transactions returns the ledger oldest first, as the backend does.
func (s *Server) transactions(userID model.ID) []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]model.Transaction{}, s.ledger[userID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *Server) listCustomers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Customer{}
	for _, acc := range s.accounts {
		if acc.user.Role != model.RoleCustomer {
			continue
		}
		out = append(out, model.Customer{ID: acc.user.ID, Name: acc.user.Name, Email: acc.user.Email, CreatedAt: acc.createdAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *Server) mutate(kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			UserID model.ID `json:"userId"`
			Amount float64  `json:"amount"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
			return
		}
		if c.MustGet("user_id").(model.ID) != req.UserID {
			c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
			return
		}
		if req.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Amount must be positive"})
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if kind == model.KindWithdraw && req.Amount > s.balanceLocked(req.UserID) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Insufficient balance"})
			return
		}
		tx := s.appendLocked(req.UserID, kind, req.Amount, s.now())
		c.JSON(http.StatusOK, gin.H{
			"message":     fmt.Sprintf("%s successful", kind.Label()),
			"transaction": tx,
			"balance":     tx.Balance,
		})
	}
}

// ErrorBody builds the JSON error payload of the API.
func ErrorBody(msg string) gin.H {
	return gin.H{"message": msg}
}
