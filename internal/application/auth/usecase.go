package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/autoparts-ledger/internal/application/dto"
	"github.com/jhoicas/autoparts-ledger/internal/domain"
	"github.com/jhoicas/autoparts-ledger/pkg/jwt"
)

// sessionSubject sujeto único: hay un solo negocio por instalación.
const sessionSubject = "owner"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SessionUseCase candado por código de acceso: un hash bcrypt configurado abre una sesión JWT.
// Sin hash configurado el candado está desactivado y toda petición pasa.
type SessionUseCase struct {
	passcodeHash string
	jwtCfg       JWTConfig
}

// NewSessionUseCase construye el caso de uso. passcodeHash vacío desactiva el candado.
func NewSessionUseCase(passcodeHash string, jwtCfg JWTConfig) *SessionUseCase {
	return &SessionUseCase{passcodeHash: strings.TrimSpace(passcodeHash), jwtCfg: jwtCfg}
}

// Enabled indica si las rutas requieren sesión.
func (uc *SessionUseCase) Enabled() bool {
	return uc.passcodeHash != ""
}

// Unlock verifica el código y emite el token. ErrUnauthorized si no coincide.
func (uc *SessionUseCase) Unlock(in dto.SessionRequest) (*dto.SessionResponse, error) {
	if !uc.Enabled() {
		return &dto.SessionResponse{Enabled: false}, nil
	}
	if in.Passcode == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.passcodeHash), []byte(in.Passcode)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, sessionSubject, jwt.ScopeLedger, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{Enabled: true, Token: token, ExpiresAt: exp}, nil
}
