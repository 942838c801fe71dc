package usuario

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNomeVazio            = errors.New("nome não pode ser vazio")
	ErrEmailVazio           = errors.New("email não pode ser vazio")
	ErrSenhaCurta           = errors.New("senha deve ter ao menos 6 caracteres")
	ErrCredenciaisInvalidas = errors.New("email ou senha inválidos")
)

// Perfil define o papel do usuário no sistema
type Perfil string

const (
	PerfilAdmin    Perfil = "ADMIN"
	PerfilOperador Perfil = "OPERADOR"
)

// Usuario representa um operador do sistema
type Usuario struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	Email     string    `json:"email"`
	SenhaHash string    `json:"-"`
	Perfil    Perfil    `json:"perfil"`
	Ativo     bool      `json:"ativo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NovoUsuario cria um novo usuário com a senha já criptografada
func NovoUsuario(nome, email, senha string, perfil Perfil) (*Usuario, error) {
	if nome == "" {
		return nil, ErrNomeVazio
	}
	if email == "" {
		return nil, ErrEmailVazio
	}

	now := time.Now()
	u := &Usuario{
		ID:        uuid.New().String(),
		Nome:      nome,
		Email:     email,
		Perfil:    perfil,
		Ativo:     true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.DefinirSenha(senha); err != nil {
		return nil, err
	}
	return u, nil
}

// DefinirSenha criptografa e armazena a senha do usuário
func (u *Usuario) DefinirSenha(senha string) error {
	if len(senha) < 6 {
		return ErrSenhaCurta
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.SenhaHash = string(hash)
	u.UpdatedAt = time.Now()
	return nil
}

// VerificarSenha compara a senha informada com o hash armazenado
func (u *Usuario) VerificarSenha(senha string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.SenhaHash), []byte(senha)) == nil
}

// Repository define a interface para operações de repositório de usuários
type Repository interface {
	Criar(ctx context.Context, u *Usuario) error
	BuscarPorID(ctx context.Context, id string) (*Usuario, error)
	BuscarPorEmail(ctx context.Context, email string) (*Usuario, error)
	Listar(ctx context.Context, limit, offset int) ([]*Usuario, error)
	Atualizar(ctx context.Context, u *Usuario) error
}
