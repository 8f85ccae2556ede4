package token

import (
	"fmt"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// HMACSigner mints and verifies HS256 tokens. The client never signs tokens
// itself; this backs the in-process test backend.
type HMACSigner struct {
	secret []byte
}

// NewHMACSigner creates a new HMAC signer with the given secret
func NewHMACSigner(secret string) *HMACSigner {
	return &HMACSigner{
		secret: []byte(secret),
	}
}

func (h *HMACSigner) Sign(claims jwtlib.MapClaims) (string, error) {
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(h.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token with HMAC: %w", err)
	}
	return signedToken, nil
}

// Verify parses rawToken, checking the signature and the exp claim.
func (h *HMACSigner) Verify(rawToken string) (jwtlib.MapClaims, error) {
	claims := jwtlib.MapClaims{}
	tok, err := jwtlib.ParseWithClaims(rawToken, claims, h.verificationKey,
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(NowTimeFunc),
	)
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, fmt.Errorf("token not valid")
	}
	return claims, nil
}

func (h *HMACSigner) verificationKey(token *jwtlib.Token) (any, error) {
	if _, ok := token.Method.(*jwtlib.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return h.secret, nil
}
