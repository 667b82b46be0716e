package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookingapp/internal/middleware"
	"bookingapp/internal/models"
	"bookingapp/internal/services"
)

func userTestRouter(repo *memUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	authService := services.NewAuthService()
	userService := services.NewUserService(repo, authService)
	userHandler := NewUserHandler(userService, authService)

	r := gin.New()
	account := r.Group("/api/v1/auth", middleware.AuthRequired(userService))
	account.GET("/profile", userHandler.Profile)
	account.PUT("/profile", userHandler.UpdateProfile)
	admin := account.Group("", middleware.AdminRequired())
	admin.PUT("/users/:id", userHandler.UpdateUser)
	return r
}

// seedAccount creates a user with a real bcrypt hash and a UUID id.
func seedAccount(t *testing.T, repo *memUserRepo, email, password string, isAdmin bool) *models.User {
	t.Helper()
	user := &models.User{
		ID:        uuid.NewString(),
		Email:     email,
		FirstName: "Ada",
		LastName:  "Lovelace",
		IsActive:  true,
		IsAdmin:   isAdmin,
	}
	svc := services.NewUserService(repo, services.NewAuthService())
	if err := svc.CreateUserWithPassword(user, password); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return user
}

func doAuthedJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("marshal request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func accessTokenFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := middleware.NewAccessToken(userID)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}
	return token
}

// The password policy holds on updates, not just registration.
func TestUpdateProfileRejectsWeakPassword(t *testing.T) {
	repo := newMemUserRepo()
	r := userTestRouter(repo)
	user := seedAccount(t, repo, "ada@example.com", "Secret99x", false)
	token := accessTokenFor(t, user.ID)
	originalHash := user.PasswordHash

	weak := []string{"password123", "abc", "abcdefg1", "Abc 123x"}
	for _, pw := range weak {
		w := doAuthedJSON(t, r, http.MethodPut, "/api/v1/auth/profile", token, gin.H{"password": pw})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("password %q: status = %d, want 400, body %s", pw, w.Code, w.Body.String())
		}
	}

	stored, _ := repo.GetByID(user.ID)
	if stored.PasswordHash != originalHash {
		t.Fatal("rejected update must not touch the stored hash")
	}
}

func TestUpdateProfilePassword(t *testing.T) {
	repo := newMemUserRepo()
	r := userTestRouter(repo)
	user := seedAccount(t, repo, "ada@example.com", "Secret99x", false)
	token := accessTokenFor(t, user.ID)
	originalHash := user.PasswordHash

	w := doAuthedJSON(t, r, http.MethodPut, "/api/v1/auth/profile", token, gin.H{"password": "Newpass7x"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	stored, _ := repo.GetByID(user.ID)
	if stored.PasswordHash == originalHash {
		t.Fatal("accepted update must replace the stored hash")
	}
	if stored.PasswordHash == "Newpass7x" {
		t.Fatal("password stored in plain text")
	}
	if err := services.NewAuthService().CheckPassword(stored.PasswordHash, "Newpass7x"); err != nil {
		t.Fatalf("new password does not verify: %v", err)
	}
}

func TestAdminUpdateUserRejectsWeakPassword(t *testing.T) {
	repo := newMemUserRepo()
	r := userTestRouter(repo)
	admin := seedAccount(t, repo, "admin@example.com", "Secret99x", true)
	target := seedAccount(t, repo, "ada@example.com", "Secret99x", false)
	token := accessTokenFor(t, admin.ID)
	originalHash := target.PasswordHash

	w := doAuthedJSON(t, r, http.MethodPut, "/api/v1/auth/users/"+target.ID, token, gin.H{"password": "password123"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}
	stored, _ := repo.GetByID(target.ID)
	if stored.PasswordHash != originalHash {
		t.Fatal("rejected update must not touch the stored hash")
	}

	w = doAuthedJSON(t, r, http.MethodPut, "/api/v1/auth/users/"+target.ID, token, gin.H{"password": "Newpass7x"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
}

func TestAdminUpdateUserForbiddenForNonAdmin(t *testing.T) {
	repo := newMemUserRepo()
	r := userTestRouter(repo)
	user := seedAccount(t, repo, "ada@example.com", "Secret99x", false)
	target := seedAccount(t, repo, "bob@example.com", "Secret99x", false)
	token := accessTokenFor(t, user.ID)

	w := doAuthedJSON(t, r, http.MethodPut, "/api/v1/auth/users/"+target.ID, token, gin.H{"first_name": "X"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403, body %s", w.Code, w.Body.String())
	}
}
