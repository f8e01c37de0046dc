package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the decoded identity carried by the session cookie.
type Session struct {
	EmployeeID int
	Role       string
}

type Claims struct {
	EmployeeID int    `json:"employee_id"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// SessionManager signs and verifies session tokens. The original scheme was
// an unsigned base64 JSON cookie; this replaces it with HMAC-signed claims
// while keeping the same payload fields and expiry.
type SessionManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewSessionManager(secret, issuer string, expirationHours int) *SessionManager {
	if expirationHours <= 0 {
		expirationHours = 8
	}
	return &SessionManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    time.Duration(expirationHours) * time.Hour,
	}
}

// TTL returns the session lifetime, used for the cookie Max-Age.
func (m *SessionManager) TTL() time.Duration { return m.ttl }

// Issue creates a signed session token for an employee.
func (m *SessionManager) Issue(employeeID int, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		EmployeeID: employeeID,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Decode verifies a session token and returns the identity it carries.
func (m *SessionManager) Decode(tokenString string) (*Session, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return &Session{EmployeeID: claims.EmployeeID, Role: claims.Role}, nil
}
