package usuario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNovoUsuario(t *testing.T) {
	t.Run("cria usuário ativo com senha criptografada", func(t *testing.T) {
		u, err := NovoUsuario("Ana", "ana@loja.com", "segredo1", PerfilOperador)

		require.NoError(t, err)
		assert.True(t, u.Ativo)
		assert.NotEqual(t, "segredo1", u.SenhaHash)
		assert.True(t, u.VerificarSenha("segredo1"))
		assert.False(t, u.VerificarSenha("outra"))
	})

	t.Run("rejeita nome vazio", func(t *testing.T) {
		_, err := NovoUsuario("", "ana@loja.com", "segredo1", PerfilAdmin)
		assert.ErrorIs(t, err, ErrNomeVazio)
	})

	t.Run("rejeita email vazio", func(t *testing.T) {
		_, err := NovoUsuario("Ana", "", "segredo1", PerfilAdmin)
		assert.ErrorIs(t, err, ErrEmailVazio)
	})

	t.Run("rejeita senha curta", func(t *testing.T) {
		_, err := NovoUsuario("Ana", "ana@loja.com", "12345", PerfilAdmin)
		assert.ErrorIs(t, err, ErrSenhaCurta)
	})
}
