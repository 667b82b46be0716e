package handlers

import (
	"net/http"
	"testing"
)

func TestConfirmOTPFlow(t *testing.T) {
	repo := newMemUserRepo()
	r := authTestRouter(repo)
	registerAda(t, r)

	user, _ := repo.GetByEmail("ada@example.com")
	if user == nil || user.OTP == nil {
		t.Fatal("registration left no pending otp")
	}
	code := *user.OTP

	wrong := "0000"
	if wrong == code {
		wrong = "0001"
	}
	if w := postJSON(t, r, "/confirm_otp", map[string]string{"email": user.Email, "otp": wrong}); w.Code != http.StatusBadRequest {
		t.Fatalf("wrong code status = %d, want 400", w.Code)
	}

	w := postJSON(t, r, "/confirm_otp", map[string]string{"email": user.Email, "otp": code})
	if w.Code != http.StatusOK {
		t.Fatalf("confirm status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	stored, _ := repo.GetByID(user.ID)
	if !stored.IsVerified {
		t.Fatal("user not verified after confirm")
	}

	// the code is gone, replaying it fails
	if w := postJSON(t, r, "/confirm_otp", map[string]string{"email": user.Email, "otp": code}); w.Code != http.StatusBadRequest {
		t.Fatalf("replay status = %d, want 400", w.Code)
	}
}

func TestConfirmOTPUnknownEmail(t *testing.T) {
	r := authTestRouter(newMemUserRepo())
	if w := postJSON(t, r, "/confirm_otp", map[string]string{"email": "ghost@example.com", "otp": "1234"}); w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestConfirmOTPIncompleteBody(t *testing.T) {
	r := authTestRouter(newMemUserRepo())
	if w := postJSON(t, r, "/confirm_otp", map[string]string{"email": "a@b.com"}); w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestResendOTP(t *testing.T) {
	repo := newMemUserRepo()
	r := authTestRouter(repo)
	registerAda(t, r)

	user, _ := repo.GetByEmail("ada@example.com")
	first := *user.OTP

	w := postJSON(t, r, "/resend_otp", map[string]string{"email": user.Email})
	if w.Code != http.StatusOK {
		t.Fatalf("resend status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	stored, _ := repo.GetByID(user.ID)
	if stored.OTP == nil {
		t.Fatal("resend left no pending otp")
	}

	// the old code is only valid if the resend happened to pick it again
	if first != *stored.OTP {
		if w := postJSON(t, r, "/confirm_otp", map[string]string{"email": user.Email, "otp": first}); w.Code != http.StatusBadRequest {
			t.Fatalf("stale code status = %d, want 400", w.Code)
		}
	}
	if w := postJSON(t, r, "/confirm_otp", map[string]string{"email": user.Email, "otp": *stored.OTP}); w.Code != http.StatusOK {
		t.Fatalf("fresh code status = %d, want 200", w.Code)
	}
}

func TestResendOTPAlreadyConfirmed(t *testing.T) {
	repo := newMemUserRepo()
	r := authTestRouter(repo)
	registerAda(t, r)

	user, _ := repo.GetByEmail("ada@example.com")
	postJSON(t, r, "/confirm_otp", map[string]string{"email": user.Email, "otp": *user.OTP})

	if w := postJSON(t, r, "/resend_otp", map[string]string{"email": user.Email}); w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}
}
