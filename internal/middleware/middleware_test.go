package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hackmap/hackmap/internal/app/models"
	"github.com/hackmap/hackmap/internal/pkg/apperrors"
	"github.com/hackmap/hackmap/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(jwtService *auth.JWTService) *gin.Engine {
	router := gin.New()
	router.GET("/protected", AuthMiddleware(jwtService), func(c *gin.Context) {
		id, ok := GetUserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "no identity"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	return router
}

func doRequest(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body %q: %v", rec.Body.String(), err)
	}
	return body.Message
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "hackmap.app",
	})
	token, err := jwtService.GenerateToken(&models.User{ID: 42, Email: "a@b.c", Username: "ann"})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	rec := doRequest(newAuthRouter(jwtService), "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body struct {
		UserID int64 `json:"user_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.UserID != 42 {
		t.Errorf("user_id = %d, want 42", body.UserID)
	}
}

func TestAuthMiddlewareRejections(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "hackmap.app",
	})
	otherService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "other-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "hackmap.app",
	})
	foreignToken, err := otherService.GenerateToken(&models.User{ID: 1, Email: "a@b.c", Username: "ann"})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	expiredService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    -time.Hour,
		TokenIssuer: "hackmap.app",
	})
	expiredToken, err := expiredService.GenerateToken(&models.User{ID: 1, Email: "a@b.c", Username: "ann"})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	router := newAuthRouter(jwtService)

	tests := []struct {
		name          string
		authorization string
		wantMessage   string
	}{
		{"no header", "", "Authentication required"},
		{"wrong scheme", "Basic abc", "Authentication required"},
		{"garbage token", "Bearer not-a-jwt", "Invalid token"},
		{"wrong secret", "Bearer " + foreignToken, "Invalid token"},
		{"expired", "Bearer " + expiredToken, "Token has expired"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(router, tt.authorization)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
			if got := decodeMessage(t, rec); got != tt.wantMessage {
				t.Errorf("message = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			"validation",
			apperrors.NewValidationError("Title is required"),
			http.StatusBadRequest, "Title is required",
		},
		{
			"already responded",
			&apperrors.CustomError{Err: apperrors.ErrNotificationResponded, Message: "This notification has already been responded to"},
			http.StatusBadRequest, "This notification has already been responded to",
		},
		{
			"invalid credentials",
			&apperrors.CustomError{Err: apperrors.ErrInvalidCredentials, Message: "Invalid credentials"},
			http.StatusUnauthorized, "Invalid credentials",
		},
		{
			"forbidden",
			apperrors.NewForbiddenError("You are not authorized to update this hackathon"),
			http.StatusForbidden, "You are not authorized to update this hackathon",
		},
		{
			"team full",
			&apperrors.CustomError{Err: apperrors.ErrTeamFull, Message: "Team is full"},
			http.StatusForbidden, "Team is full",
		},
		{
			"not found",
			apperrors.NewResourceNotFoundError("Hackathon not found"),
			http.StatusNotFound, "Hackathon not found",
		},
		{
			"conflict",
			apperrors.NewConflictError("Already registered for this hackathon"),
			http.StatusConflict, "Already registered for this hackathon",
		},
		{
			"duplicate email",
			&apperrors.CustomError{Err: apperrors.ErrEmailAlreadyExists, Message: "Email already exists"},
			http.StatusConflict, "Email already exists",
		},
		{
			"unknown error is masked",
			errors.New("pq: connection refused"),
			http.StatusInternalServerError, "Server error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

			HandleAPIError(c, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := decodeMessage(t, rec); got != tt.wantMessage {
				t.Errorf("message = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}
