package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/propdock/propdock-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	ActorID uuid.UUID
	OrgID   *uuid.UUID
	Role    enums.ActorRole
	JTI     string
}

// AccessTokenClaims represents the typed JWT issued to clients. Admin tokens
// carry no org; manager tokens are scoped to the organization they operate.
type AccessTokenClaims struct {
	ActorID uuid.UUID       `json:"actor_id"`
	OrgID   *uuid.UUID      `json:"org_id,omitempty"`
	Role    enums.ActorRole `json:"role"`
	jwt.RegisteredClaims
}
