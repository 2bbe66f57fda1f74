package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/autoparts-ledger/pkg/jwt"
)

func TestGenerateParse(t *testing.T) {
	tok, exp, err := pkgjwt.Generate("s3cret", "shop", pkgjwt.ScopeLedger, "autoparts-ledger", 30)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), exp, 5*time.Second)

	claims, err := pkgjwt.Parse("s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, "shop", claims.Subject)
	assert.Equal(t, pkgjwt.ScopeLedger, claims.Scope)
	assert.Equal(t, "autoparts-ledger", claims.Issuer)
}

func TestParse_Rechaza(t *testing.T) {
	tok, _, err := pkgjwt.Generate("s3cret", "shop", pkgjwt.ScopeLedger, "x", 30)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro", tok)
	assert.Error(t, err, "firma incorrecta")

	expired, _, err := pkgjwt.Generate("s3cret", "shop", pkgjwt.ScopeLedger, "x", -1)
	require.NoError(t, err)
	_, err = pkgjwt.Parse("s3cret", expired)
	assert.Error(t, err, "vencido")

	_, _, err = pkgjwt.Generate("", "shop", pkgjwt.ScopeLedger, "x", 30)
	assert.Error(t, err)
}
