// internal/pkg/auth/jwt.go
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/your-org/retailops-backend/internal/config"
)

// Roles issued by the authentication collaborator.
const (
	RoleAdmin          = "admin"
	RoleStoreRep       = "store_rep"
	RoleProductionLead = "production_lead"
)

// Actor is the identity acting on the core: who they are and which
// store or production house they are associated with.
type Actor struct {
	UserID            uint   `json:"user_id"`
	Name              string `json:"name"`
	Role              string `json:"role"`
	StoreID           *uint  `json:"store_id,omitempty"`
	ProductionHouseID *uint  `json:"production_house_id,omitempty"`
}

// IsAdmin reports whether the actor has administrative privileges.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// AssociatedWithStore reports whether the actor may act on behalf of the store.
func (a Actor) AssociatedWithStore(storeID uint) bool {
	if a.IsAdmin() {
		return true
	}
	return a.StoreID != nil && *a.StoreID == storeID
}

// AssociatedWithHouse reports whether the actor may act on behalf of the production house.
func (a Actor) AssociatedWithHouse(houseID uint) bool {
	if a.IsAdmin() {
		return true
	}
	return a.ProductionHouseID != nil && *a.ProductionHouseID == houseID
}

// Claims represents the JWT claims
type Claims struct {
	UserID            uint   `json:"user_id"`
	Name              string `json:"name"`
	Role              string `json:"role"`
	StoreID           *uint  `json:"store_id,omitempty"`
	ProductionHouseID *uint  `json:"production_house_id,omitempty"`
	TokenType         string `json:"token_type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// Actor builds the acting identity from the claims.
func (c *Claims) Actor() Actor {
	return Actor{
		UserID:            c.UserID,
		Name:              c.Name,
		Role:              c.Role,
		StoreID:           c.StoreID,
		ProductionHouseID: c.ProductionHouseID,
	}
}

// JWTManager handles JWT operations
type JWTManager struct {
	config *config.Config
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(cfg *config.Config) *JWTManager {
	return &JWTManager{
		config: cfg,
	}
}

// GenerateAccessToken generates a new access token for the actor
func (j *JWTManager) GenerateAccessToken(actor Actor) (string, error) {
	now := time.Now().UTC()

	claims := &Claims{
		UserID:            actor.UserID,
		Name:              actor.Name,
		Role:              actor.Role,
		StoreID:           actor.StoreID,
		ProductionHouseID: actor.ProductionHouseID,
		TokenType:         "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.config.JWT.AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    j.config.App.Name,
			Subject:   fmt.Sprintf("user:%d", actor.UserID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.config.JWT.Secret))
}

// GenerateRefreshToken generates a new refresh token
func (j *JWTManager) GenerateRefreshToken(actor Actor) (string, error) {
	now := time.Now().UTC()

	claims := &Claims{
		UserID:    actor.UserID,
		Name:      actor.Name,
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.config.JWT.RefreshTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    j.config.App.Name,
			Subject:   fmt.Sprintf("user:%d", actor.UserID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.config.JWT.Secret))
}

// ValidateToken validates and parses a JWT token
func (j *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(j.config.JWT.Secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	// Additional validation
	if claims.TokenType == "" {
		return nil, fmt.Errorf("token type not specified")
	}

	return claims, nil
}

// ValidateAccessToken validates an access token specifically
func (j *JWTManager) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims, err := j.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != "access" {
		return nil, fmt.Errorf("invalid token type: expected access, got %s", claims.TokenType)
	}

	return claims, nil
}

// ExtractTokenFromHeader extracts JWT token from Authorization header
func ExtractTokenFromHeader(authHeader string) string {
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return ""
}
