package usuario

import (
	"context"
	"errors"
	"time"

	usuariodomain "github.com/matheusprado/erp-suplementos/internal/domain/usuario"
	"github.com/matheusprado/erp-suplementos/pkg/jwt"
	"github.com/matheusprado/erp-suplementos/pkg/logger"
)

// tokenValidade é a validade padrão do token de acesso
const tokenValidade = 24 * time.Hour

var (
	// ErrUsuarioInativo é retornado quando um usuário desativado tenta entrar
	ErrUsuarioInativo = errors.New("usuário inativo")
)

// LoginOutput devolve o token e o usuário autenticado
type LoginOutput struct {
	Token   string                 `json:"token"`
	Usuario *usuariodomain.Usuario `json:"usuario"`
}

// AutenticarUsuarioUseCase concentra o login, o cadastro e a renovação de
// token dos operadores
type AutenticarUsuarioUseCase struct {
	usuarios usuariodomain.Repository
	logger   logger.Logger
}

// NovoAutenticarUsuarioUseCase cria uma nova instância do caso de uso
func NovoAutenticarUsuarioUseCase(usuarios usuariodomain.Repository, logger logger.Logger) *AutenticarUsuarioUseCase {
	return &AutenticarUsuarioUseCase{usuarios: usuarios, logger: logger}
}

// Login autentica o usuário e devolve um token JWT. Email desconhecido e
// senha errada retornam o mesmo erro, sem distinguir os casos.
func (uc *AutenticarUsuarioUseCase) Login(ctx context.Context, email, senha string) (*LoginOutput, error) {
	u, err := uc.usuarios.BuscarPorEmail(ctx, email)
	if err != nil {
		return nil, usuariodomain.ErrCredenciaisInvalidas
	}
	if !u.VerificarSenha(senha) {
		return nil, usuariodomain.ErrCredenciaisInvalidas
	}
	if !u.Ativo {
		return nil, ErrUsuarioInativo
	}

	token, err := jwt.GenerateToken(u.ID, string(u.Perfil), tokenValidade)
	if err != nil {
		uc.logger.Error("erro ao gerar token", "usuario_id", u.ID, "error", err)
		return nil, err
	}

	uc.logger.Info("usuário autenticado", "usuario_id", u.ID)
	return &LoginOutput{Token: token, Usuario: u}, nil
}

// Registrar cadastra um novo operador
func (uc *AutenticarUsuarioUseCase) Registrar(ctx context.Context, nome, email, senha string, perfil usuariodomain.Perfil) (*usuariodomain.Usuario, error) {
	u, err := usuariodomain.NovoUsuario(nome, email, senha, perfil)
	if err != nil {
		return nil, err
	}

	if err := uc.usuarios.Criar(ctx, u); err != nil {
		uc.logger.Error("erro ao criar usuário", "email", email, "error", err)
		return nil, err
	}

	uc.logger.Info("usuário criado", "usuario_id", u.ID, "perfil", u.Perfil)
	return u, nil
}

// Renovar gera um novo token a partir de um token existente
func (uc *AutenticarUsuarioUseCase) Renovar(ctx context.Context, token string) (string, error) {
	return jwt.RefreshToken(token)
}

// BuscarPorID devolve os dados do usuário autenticado
func (uc *AutenticarUsuarioUseCase) BuscarPorID(ctx context.Context, id string) (*usuariodomain.Usuario, error) {
	return uc.usuarios.BuscarPorID(ctx, id)
}
