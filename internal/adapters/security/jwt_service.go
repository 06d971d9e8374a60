package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// sessionTokenTTL cobre uma sessão de jogo inteira com folga.
const sessionTokenTTL = 12 * time.Hour

// JWTService implementa a interface TokenService para tokens de sessão
// anônimos: o token identifica a sessão de jogo, não um usuário.
type JWTService struct {
	secretKey []byte
	issuer    string
}

// NewJWTService cria uma nova instância de JWTService.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secretKey: []byte(secret),
		issuer:    "stabsurvival-api",
	}
}

// GenerateToken gera um token JWT para a sessão.
func (s *JWTService) GenerateToken(sessionID string) (string, int64, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": sessionID,
		"iss": s.issuer,
		"exp": now.Add(sessionTokenTTL).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", 0, err
	}

	return signedToken, int64(sessionTokenTTL.Seconds()), nil
}

// ValidateToken valida o token JWT e retorna o ID da sessão.
func (s *JWTService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Valida o método de assinatura
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("método de assinatura inválido")
		}
		return s.secretKey, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("token inválido")
	}

	sessionID, ok := claims["sub"].(string)
	if !ok || sessionID == "" {
		return "", errors.New("token sem ID de sessão (sub)")
	}

	return sessionID, nil
}
