package security

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var ErrSenhaInvalida = errors.New("senha inválida")

// DevPasswordVerifier implementa a interface PasswordVerifier para a senha
// do modo desenvolvedor. A campanha pode trazer a senha como hash bcrypt
// (prefixo "$2") ou, em desenvolvimento, como texto plano — neste caso a
// comparação é case-sensitive e em tempo constante.
type DevPasswordVerifier struct{}

// NewDevPasswordVerifier cria uma nova instância de DevPasswordVerifier.
func NewDevPasswordVerifier() *DevPasswordVerifier {
	return &DevPasswordVerifier{}
}

// Verify compara a senha fornecida com a esperada.
// Retorna nil se forem iguais, ou erro se forem diferentes.
func (v *DevPasswordVerifier) Verify(expected, provided string) error {
	if expected == "" {
		return ErrSenhaInvalida
	}

	if strings.HasPrefix(expected, "$2") {
		if err := bcrypt.CompareHashAndPassword([]byte(expected), []byte(provided)); err != nil {
			return ErrSenhaInvalida
		}
		return nil
	}

	if subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) != 1 {
		return ErrSenhaInvalida
	}
	return nil
}
