package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LindembergOli/producao-imac-sub000/domain"
	"github.com/LindembergOli/producao-imac-sub000/internal/mocks"
)

// performJSON runs a handler against a JSON body and returns the recorder
// and the decoded response.
func performJSON(t *testing.T, handler gin.HandlerFunc, method, path string, body interface{}, setupCtx func(c *gin.Context)) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if setupCtx != nil {
		setupCtx(c)
	}

	handler(c)
	c.Writer.WriteHeaderNow()

	var response map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("failed to unmarshal response body: %v", err)
		}
	}
	return w, response
}

func TestAuthHandlers_Register(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(authSvc *mocks.MockAuthService)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "successful registration",
			requestBody: RegisterRequest{
				Email:    "new@example.com",
				Password: "Str0ng!Pass",
				Name:     "New User",
				Role:     "supervisor",
			},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.RegisterFunc = func(ctx context.Context, email, password, name string, role domain.Role) (*domain.PublicUser, error) {
					if role != domain.RoleSupervisor {
						t.Errorf("expected parsed role supervisor, got %s", role)
					}
					return &domain.PublicUser{ID: 5, Email: email, Name: name, Role: role}, nil
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "missing email fails binding",
			requestBody: map[string]string{
				"password": "Str0ng!Pass",
				"name":     "New User",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "weak password",
			requestBody: RegisterRequest{
				Email:    "new@example.com",
				Password: "short",
				Name:     "New User",
			},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.RegisterFunc = func(ctx context.Context, email, password, name string, role domain.Role) (*domain.PublicUser, error) {
					return nil, domain.ErrWeakPassword
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			requestBody: RegisterRequest{
				Email:    "taken@example.com",
				Password: "Str0ng!Pass",
				Name:     "New User",
			},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.RegisterFunc = func(ctx context.Context, email, password, name string, role domain.Role) (*domain.PublicUser, error) {
					return nil, domain.ErrEmailTaken
				}
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "Email already registered",
		},
		{
			name: "infrastructure failure",
			requestBody: RegisterRequest{
				Email:    "new@example.com",
				Password: "Str0ng!Pass",
				Name:     "New User",
			},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.RegisterFunc = func(ctx context.Context, email, password, name string, role domain.Role) (*domain.PublicUser, error) {
					return nil, errors.New("database down")
				}
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Failed to register user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			if tt.setupMocks != nil {
				tt.setupMocks(authSvc)
			}
			handler := NewAuthHandlers(authSvc)

			w, response := performJSON(t, handler.Register, http.MethodPost, "/auth/register", tt.requestBody, nil)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedError != "" && response["error"] != tt.expectedError {
				t.Errorf("expected error %q, got %v", tt.expectedError, response["error"])
			}
		})
	}
}

func TestAuthHandlers_Login(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(authSvc *mocks.MockAuthService)
		expectedStatus int
		expectedError  string
	}{
		{
			name:        "successful login",
			requestBody: LoginRequest{Email: "maria@example.com", Password: "Str0ng!Pass"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.LoginFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
					return &domain.AuthResult{
						User:         &domain.User{ID: 1, Email: email, Role: domain.RoleViewer, CreatedAt: time.Now()},
						AccessToken:  "access_token",
						RefreshToken: "refresh_token",
						ExpiresIn:    900,
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong password",
			requestBody:    LoginRequest{Email: "maria@example.com", Password: "wrong"},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid credentials",
		},
		{
			name:        "locked account gets a generic message",
			requestBody: LoginRequest{Email: "maria@example.com", Password: "Str0ng!Pass"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.LoginFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
					return nil, domain.ErrAccountLocked
				}
			},
			expectedStatus: http.StatusForbidden,
			expectedError:  "Account temporarily locked",
		},
		{
			name:           "malformed email fails binding",
			requestBody:    map[string]string{"email": "not-an-email", "password": "x"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			if tt.setupMocks != nil {
				tt.setupMocks(authSvc)
			}
			handler := NewAuthHandlers(authSvc)

			w, response := performJSON(t, handler.Login, http.MethodPost, "/auth/login", tt.requestBody, nil)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedError != "" && response["error"] != tt.expectedError {
				t.Errorf("expected error %q, got %v", tt.expectedError, response["error"])
			}
		})
	}
}

func TestAuthHandlers_Login_ResponseShape(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.LoginFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
		return &domain.AuthResult{
			User:         &domain.User{ID: 1, Email: email, PasswordHash: "$2a$12$secret", Role: domain.RoleViewer},
			AccessToken:  "access_token",
			RefreshToken: "refresh_token",
			ExpiresIn:    900,
		}, nil
	}
	handler := NewAuthHandlers(authSvc)

	w, response := performJSON(t, handler.Login, http.MethodPost, "/auth/login",
		LoginRequest{Email: "maria@example.com", Password: "Str0ng!Pass"}, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	data, ok := response["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected data envelope, got %v", response)
	}
	if data["token_type"] != "Bearer" {
		t.Errorf("expected Bearer token type, got %v", data["token_type"])
	}
	if data["expires_in"] != float64(900) {
		t.Errorf("expected expires_in 900, got %v", data["expires_in"])
	}
	if bytes.Contains(w.Body.Bytes(), []byte("secret")) {
		t.Error("response leaked the password hash")
	}
}

func TestAuthHandlers_Refresh(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(authSvc *mocks.MockAuthService)
		expectedStatus int
		expectedError  string
	}{
		{
			name:        "successful rotation",
			requestBody: RefreshRequest{RefreshToken: "old_refresh"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.RefreshFunc = func(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
					return &domain.AuthResult{
						User:         &domain.User{ID: 1},
						AccessToken:  "new_access",
						RefreshToken: "new_refresh",
						ExpiresIn:    900,
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid token",
			requestBody:    RefreshRequest{RefreshToken: "bogus"},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid refresh token",
		},
		{
			name:        "expired token",
			requestBody: RefreshRequest{RefreshToken: "stale"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.RefreshFunc = func(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
					return nil, domain.ErrRefreshTokenExpired
				}
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Refresh token expired",
		},
		{
			name:           "missing token fails binding",
			requestBody:    map[string]string{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			if tt.setupMocks != nil {
				tt.setupMocks(authSvc)
			}
			handler := NewAuthHandlers(authSvc)

			w, response := performJSON(t, handler.Refresh, http.MethodPost, "/auth/refresh", tt.requestBody, nil)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedError != "" && response["error"] != tt.expectedError {
				t.Errorf("expected error %q, got %v", tt.expectedError, response["error"])
			}
		})
	}
}

func TestAuthHandlers_Logout(t *testing.T) {
	t.Run("with token", func(t *testing.T) {
		authSvc := mocks.NewMockAuthService()

		var revoked string
		authSvc.LogoutFunc = func(ctx context.Context, refreshToken string) error {
			revoked = refreshToken
			return nil
		}
		handler := NewAuthHandlers(authSvc)

		w, _ := performJSON(t, handler.Logout, http.MethodPost, "/auth/logout",
			LogoutRequest{RefreshToken: "some_refresh"}, nil)

		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
		if revoked != "some_refresh" {
			t.Errorf("expected token passed through, got %q", revoked)
		}
	})

	t.Run("without body still succeeds", func(t *testing.T) {
		authSvc := mocks.NewMockAuthService()
		handler := NewAuthHandlers(authSvc)

		w, _ := performJSON(t, handler.Logout, http.MethodPost, "/auth/logout", nil, nil)

		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})
}

func TestAuthHandlers_LogoutAll(t *testing.T) {
	t.Run("revokes all sessions of the authenticated user", func(t *testing.T) {
		authSvc := mocks.NewMockAuthService()
		authSvc.LogoutAllFunc = func(ctx context.Context, userID uint) (int64, error) {
			if userID != 7 {
				t.Errorf("expected user 7, got %d", userID)
			}
			return 4, nil
		}
		handler := NewAuthHandlers(authSvc)

		w, response := performJSON(t, handler.LogoutAll, http.MethodPost, "/auth/logout-all", nil, func(c *gin.Context) {
			c.Set("user_id", "7")
		})

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		data := response["data"].(map[string]interface{})
		if data["revoked_sessions"] != float64(4) {
			t.Errorf("expected revoked_sessions 4, got %v", data["revoked_sessions"])
		}
	})

	t.Run("missing identity is unauthorized", func(t *testing.T) {
		handler := NewAuthHandlers(mocks.NewMockAuthService())

		w, _ := performJSON(t, handler.LogoutAll, http.MethodPost, "/auth/logout-all", nil, nil)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})
}

func TestAuthHandlers_ForgotPassword(t *testing.T) {
	const neutralMessage = "If the email is registered, a reset link has been sent"

	t.Run("known and unknown emails get the same response", func(t *testing.T) {
		for _, email := range []string{"known@example.com", "ghost@example.com"} {
			authSvc := mocks.NewMockAuthService()
			handler := NewAuthHandlers(authSvc)

			w, response := performJSON(t, handler.ForgotPassword, http.MethodPost, "/auth/forgot-password",
				ForgotPasswordRequest{Email: email}, nil)

			if w.Code != http.StatusOK {
				t.Errorf("%s: expected 200, got %d", email, w.Code)
			}
			data := response["data"].(map[string]interface{})
			if data["message"] != neutralMessage {
				t.Errorf("%s: expected neutral message, got %v", email, data["message"])
			}
		}
	})

	t.Run("malformed email fails binding", func(t *testing.T) {
		handler := NewAuthHandlers(mocks.NewMockAuthService())

		w, _ := performJSON(t, handler.ForgotPassword, http.MethodPost, "/auth/forgot-password",
			map[string]string{"email": "not-an-email"}, nil)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func TestAuthHandlers_ResetPassword(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(authSvc *mocks.MockAuthService)
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "successful reset",
			requestBody:    ResetPasswordRequest{Token: "tok", NewPassword: "N3w!Password"},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "weak replacement password",
			requestBody: ResetPasswordRequest{Token: "tok", NewPassword: "weak"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.ResetPasswordFunc = func(ctx context.Context, token, newPassword string) error {
					return domain.ErrWeakPassword
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "invalid token",
			requestBody: ResetPasswordRequest{Token: "bogus", NewPassword: "N3w!Password"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.ResetPasswordFunc = func(ctx context.Context, token, newPassword string) error {
					return domain.ErrResetTokenInvalid
				}
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid or expired reset token",
		},
		{
			name:        "expired token",
			requestBody: ResetPasswordRequest{Token: "stale", NewPassword: "N3w!Password"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.ResetPasswordFunc = func(ctx context.Context, token, newPassword string) error {
					return domain.ErrResetTokenExpired
				}
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Reset token expired",
		},
		{
			name:           "missing fields fail binding",
			requestBody:    map[string]string{"token": "tok"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			if tt.setupMocks != nil {
				tt.setupMocks(authSvc)
			}
			handler := NewAuthHandlers(authSvc)

			w, response := performJSON(t, handler.ResetPassword, http.MethodPost, "/auth/reset-password", tt.requestBody, nil)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedError != "" && response["error"] != tt.expectedError {
				t.Errorf("expected error %q, got %v", tt.expectedError, response["error"])
			}
		})
	}
}

func TestAuthHandlers_Me(t *testing.T) {
	t.Run("returns the public profile", func(t *testing.T) {
		authSvc := mocks.NewMockAuthService()
		authSvc.GetUserByIDFunc = func(ctx context.Context, userID uint) (*domain.User, error) {
			return &domain.User{
				ID:           userID,
				Email:        "maria@example.com",
				Name:         "Maria",
				PasswordHash: "$2a$12$secret",
				Role:         domain.RoleSupervisor,
			}, nil
		}
		handler := NewAuthHandlers(authSvc)

		w, response := performJSON(t, handler.Me, http.MethodGet, "/auth/me", nil, func(c *gin.Context) {
			c.Set("user_id", "9")
		})

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		data := response["data"].(map[string]interface{})
		if data["email"] != "maria@example.com" {
			t.Errorf("unexpected profile: %v", data)
		}
		if bytes.Contains(w.Body.Bytes(), []byte("secret")) {
			t.Error("response leaked the password hash")
		}
	})

	t.Run("user deleted after token issue", func(t *testing.T) {
		handler := NewAuthHandlers(mocks.NewMockAuthService())

		w, _ := performJSON(t, handler.Me, http.MethodGet, "/auth/me", nil, func(c *gin.Context) {
			c.Set("user_id", "9")
		})

		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})

	t.Run("missing identity is unauthorized", func(t *testing.T) {
		handler := NewAuthHandlers(mocks.NewMockAuthService())

		w, _ := performJSON(t, handler.Me, http.MethodGet, "/auth/me", nil, nil)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})
}
